package handler

import (
	"os"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/logger"
	internalWS "github.com/cleanaz-dev/hueline-sub000/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

type SessionWsHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewSessionWsHandler(hub *internalWS.Hub, log logger.ILogger) *SessionWsHandler {
	return &SessionWsHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *SessionWsHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/session/v1")
	g.Get("/:tenant/:room/ws", h.ServeWs)
}

// ServeWs upgrades a participant onto the room's control channel. The join
// credential rides in the query (browser standard) or the bearer header.
func (h *SessionWsHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("SESSION_TOKEN_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("SessionWsHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	tenant, _ := claims["tenant"].(string)
	room, _ := claims["room"].(string)
	identity, _ := claims["identity"].(string)
	role, _ := claims["role"].(string)

	if tenant != c.Params("tenant") || room != c.Params("room") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Token not valid for this room"})
	}
	if identity == "" || !constant.IsKnownRole(role) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing identity or role"})
	}

	roomID := internalWS.RoomID(tenant, room)

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SessionWsHandler", "Starting control channel session", map[string]interface{}{
				"room_id":  roomID,
				"identity": identity,
				"role":     role,
			})
			internalWS.ServeWs(h.hub, conn, roomID, identity, role)
			h.logger.Info("SessionWsHandler", "Control channel session ended", map[string]interface{}{
				"room_id":  roomID,
				"identity": identity,
			})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenMiddleware guards room-scoped routes with the walkthrough
// join credential. The token's tenant/room claims must match the route,
// so a credential minted for one session can't touch another's ledger.
func SessionTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Missing token"))
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("SESSION_TOKEN_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid claims"))
	}

	tenant, _ := claims["tenant"].(string)
	room, _ := claims["room"].(string)
	if tenant != ctx.Params("tenant") || room != ctx.Params("room") {
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse("Token not valid for this room"))
	}

	ctx.Locals("identity", claims["identity"])
	ctx.Locals("role", claims["role"])
	ctx.Locals("mode", claims["mode"])
	return ctx.Next()
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/dto"
	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/logger"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/mailer"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/specification"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/unitofwork"
	internalWS "github.com/cleanaz-dev/hueline-sub000/internal/websocket"
	"github.com/cleanaz-dev/hueline-sub000/pkg/events"
	pktNats "github.com/cleanaz-dev/hueline-sub000/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, tenantSlug string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Join(ctx context.Context, tenantSlug, roomKey string, req *dto.JoinSessionRequest) (*dto.JoinSessionResponse, error)
	Show(ctx context.Context, tenantSlug, roomKey string) (*dto.ShowSessionResponse, error)
	End(ctx context.Context, tenantSlug, roomKey string) (*dto.EndSessionResponse, error)
	UpdateRecording(ctx context.Context, tenantSlug, roomKey string, req *dto.UpdateRecordingRequest) (*dto.UpdateRecordingResponse, error)
}

type SessionTokenConfig struct {
	Secret    string
	TTL       time.Duration
	ClientURL string
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	tokenCfg   SessionTokenConfig
	natsPub    *pktNats.Publisher
	hub        *internalWS.Hub
	mailer     mailer.ISummaryMailer
	sysLogger  logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	tokenCfg SessionTokenConfig,
	natsPub *pktNats.Publisher,
	hub *internalWS.Hub,
	summaryMailer mailer.ISummaryMailer,
	sysLogger logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		tokenCfg:   tokenCfg,
		natsPub:    natsPub,
		hub:        hub,
		mailer:     summaryMailer,
		sysLogger:  sysLogger,
	}
}

func (s *sessionService) Create(ctx context.Context, tenantSlug string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SessionRepository().FindOne(ctx, specification.ByRoom{TenantSlug: tenantSlug, RoomKey: req.RoomKey})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoomExists
	}

	session := entity.Session{
		Id:         uuid.New(),
		TenantSlug: tenantSlug,
		RoomKey:    req.RoomKey,
		Mode:       req.Mode,
		Status:     constant.SessionStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		Id:      session.Id,
		RoomKey: session.RoomKey,
		Mode:    session.Mode,
		Status:  session.Status,
	}, nil
}

func (s *sessionService) Join(ctx context.Context, tenantSlug, roomKey string, req *dto.JoinSessionRequest) (*dto.JoinSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status == constant.SessionStatusEnded {
		return nil, ErrSessionEnded
	}

	role := req.Role
	if session.Mode == constant.SessionModeSelfServe {
		// Sole participant acts as an autonomous host
		role = constant.RoleHost
	}
	if role == "" {
		role = constant.RoleClient
	}
	if !constant.IsKnownRole(role) {
		return nil, ErrInvalidRole
	}

	// First host join activates the session
	if role == constant.RoleHost && session.Status == constant.SessionStatusPending {
		session.Status = constant.SessionStatusActive
		if err := uow.SessionRepository().Update(ctx, session); err != nil {
			return nil, err
		}
	}

	expiresAt := time.Now().Add(s.tokenCfg.TTL)
	claims := jwt.MapClaims{
		"tenant":   tenantSlug,
		"room":     roomKey,
		"identity": req.Identity,
		"role":     role,
		"mode":     session.Mode,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.tokenCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign join credential: %w", err)
	}

	res := &dto.JoinSessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		RoomKey:   roomKey,
		Mode:      session.Mode,
		Role:      role,
	}
	if role == constant.RoleHost && session.Mode != constant.SessionModeSelfServe {
		// Host gets the share link for the remote party
		res.InviteUrl = fmt.Sprintf("%s/%s/walkthrough/%s", s.tokenCfg.ClientURL, tenantSlug, roomKey)
	}
	return res, nil
}

func (s *sessionService) Show(ctx context.Context, tenantSlug, roomKey string) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	hosts, clients := s.hub.RoomPresence(internalWS.RoomID(tenantSlug, roomKey))

	return &dto.ShowSessionResponse{
		Id:           session.Id,
		RoomKey:      session.RoomKey,
		Mode:         session.Mode,
		Status:       session.Status,
		RecordingUrl: session.RecordingUrl,
		Participants: hosts + clients,
		StreamOpen:   hosts > 0,
		CreatedAt:    session.CreatedAt,
		EndedAt:      session.EndedAt,
	}, nil
}

func (s *sessionService) End(ctx context.Context, tenantSlug, roomKey string) (*dto.EndSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status == constant.SessionStatusEnded {
		return nil, ErrSessionEnded
	}

	now := time.Now()
	session.Status = constant.SessionStatusEnded
	session.EndedAt = &now
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	// Tell anyone still connected, fire-and-forget
	if frame, err := internalWS.Encode(internalWS.TypeSessionEnded, struct{}{}); err == nil {
		s.hub.BroadcastToRoom(internalWS.RoomID(tenantSlug, roomKey), frame, nil)
	}

	if s.natsPub != nil {
		err = s.natsPub.Publish(ctx, events.BaseEvent{
			Type: "walkthrough.session.ended",
			Data: map[string]interface{}{
				"tenant_slug": tenantSlug,
				"room_key":    roomKey,
				"ended_at":    now.Format(time.RFC3339),
			},
			OccurredAt: now,
		})
		if err != nil {
			s.sysLogger.Warn("SessionService", "Failed to publish session ended event", map[string]interface{}{"error": err.Error()})
		}
	}

	// Summary email is best effort and must never block teardown
	go s.sendSummary(context.Background(), tenantSlug, roomKey)

	return &dto.EndSessionResponse{
		RoomKey: roomKey,
		Status:  session.Status,
		EndedAt: session.EndedAt,
	}, nil
}

func (s *sessionService) sendSummary(ctx context.Context, tenantSlug, roomKey string) {
	if s.mailer == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, err := uow.ScopeItemRepository().FindAll(ctx,
		specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey},
		specification.InsertionOrder{},
	)
	if err != nil {
		s.sysLogger.Warn("SessionService", "Summary fetch failed", map[string]interface{}{"error": err.Error()})
		return
	}

	body := RenderSummary(roomKey, GroupByArea(items))
	if err := s.mailer.SendScopeSummary(tenantSlug, roomKey, body); err != nil {
		s.sysLogger.Warn("SessionService", "Summary email failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *sessionService) UpdateRecording(ctx context.Context, tenantSlug, roomKey string, req *dto.UpdateRecordingRequest) (*dto.UpdateRecordingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	// Reference only. The media itself lives with the transport vendor.
	session.RecordingUrl = req.RecordingUrl
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.UpdateRecordingResponse{
		RoomKey:      roomKey,
		RecordingUrl: session.RecordingUrl,
	}, nil
}

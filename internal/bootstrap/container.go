package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/config"
	"github.com/cleanaz-dev/hueline-sub000/internal/controller"
	"github.com/cleanaz-dev/hueline-sub000/internal/handler"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/logger"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/mailer"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/unitofwork"
	"github.com/cleanaz-dev/hueline-sub000/internal/service"
	"github.com/cleanaz-dev/hueline-sub000/internal/websocket"
	pktNats "github.com/cleanaz-dev/hueline-sub000/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	LedgerController  controller.ILedgerController

	// Background Services (Exposed for main.go to run)
	ExtractionService     service.IExtractionService
	StreamConsumerService service.IStreamConsumerService

	// WebSockets
	SessionWsHandler *handler.SessionWsHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.Session.SummaryEmail,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/session.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.ScopeStreamTopic, pubSub)
	extractionService := service.NewExtractionService(natsSub, publisherService, sysLogger)
	streamConsumerService := service.NewStreamConsumerService(
		pubSub,
		cfg.App.ScopeStreamTopic,
		wsHub,
	)

	sessionService := service.NewSessionService(
		uowFactory,
		service.SessionTokenConfig{
			Secret:    cfg.Session.TokenSecret,
			TTL:       time.Duration(cfg.Session.TokenTTLMinutes) * time.Minute,
			ClientURL: cfg.App.ClientURL,
		},
		natsPub,
		wsHub,
		emailService,
		sysLogger,
	)
	ledgerService := service.NewLedgerService(uowFactory)

	// 4. Controllers and WS Handler
	sessionController := controller.NewSessionController(sessionService)
	ledgerController := controller.NewLedgerController(ledgerService)
	sessionWsHandler := handler.NewSessionWsHandler(wsHub, wsLogger)

	return &Container{
		SessionController:     sessionController,
		LedgerController:      ledgerController,
		ExtractionService:     extractionService,
		StreamConsumerService: streamConsumerService,
		SessionWsHandler:      sessionWsHandler,
		WebSocketHub:          wsHub,
	}
}

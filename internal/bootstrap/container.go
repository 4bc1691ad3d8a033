package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"ergo-assist-be/internal/config"
	"ergo-assist-be/internal/controller"
	"ergo-assist-be/internal/pkg/logger"
	"ergo-assist-be/internal/pkg/mailer"
	"ergo-assist-be/internal/repository/memory"
	"ergo-assist-be/internal/repository/unitofwork"
	"ergo-assist-be/internal/service"
	"ergo-assist-be/internal/websocket"
	"ergo-assist-be/pkg/assess"
	pktNats "ergo-assist-be/pkg/nats"
	"ergo-assist-be/pkg/storage"
	"ergo-assist-be/pkg/taskdesc"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	ChatController  controller.IChatController
	StatsController controller.IStatsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Reports are optional: without SMTP config the consumer simply
	// skips the email step.
	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	}

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
	wsLogger := logger.NewIsolatedLogger("logs/ws.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Assessment Engine
	scanStore, err := storage.NewLocalStorage(cfg.App.UploadsDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize upload storage: %v", err)
	}
	extractor := taskdesc.NewStubExtractor(scanStore, "task-record.json")

	engine := assess.NewEngine(assess.Config{
		DefaultVideoSource:      cfg.Assess.DefaultVideoSource,
		MotionAssetBaseDir:      cfg.Assess.MotionAssetBaseDir,
		RecommendedMotionSource: cfg.Assess.RecommendedMotionSource,
		BigImageSource:          cfg.Assess.BigImageSource,
		SmallImageSource:        cfg.Assess.SmallImageSource,
		ScoreFilePath:           cfg.Assess.ScoreFilePath,
		SubjectIndex:            cfg.Assess.SubjectIndex,
		ScanKey:                 cfg.Assess.ScanKey,
		DemoTrigger:             cfg.Assess.DemoTrigger,
		ReEvaluate:              cfg.Assess.ReEvaluate,
		ReplyDelay:              cfg.Assess.ReplyDelay,
		VerdictDelay:            cfg.Assess.VerdictDelay,
	}, scanStore, extractor, initEngineLogger())

	// In-memory live session state
	sessionRepo := memory.NewSessionRepository()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Assess.VerdictTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Assess.VerdictTopic,
		uowFactory,
		wsHub,
		emailService,
		natsPub,
	)

	authService := service.NewAuthService(uowFactory, natsPub)
	chatService := service.NewChatService(uowFactory, sessionRepo, engine, publisherService, wsHub)
	statsService := service.NewStatsService(uowFactory, cfg.Assess)

	return &Container{
		AuthController:  controller.NewAuthController(authService),
		ChatController:  controller.NewChatController(chatService, wsHub, sysLogger),
		StatsController: controller.NewStatsController(statsService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}

func initEngineLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "engine.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[ENGINE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

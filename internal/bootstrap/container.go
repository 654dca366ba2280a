package bootstrap

import (
	"context"
	"log"

	"study-stream-be/internal/config"
	"study-stream-be/internal/controller"
	"study-stream-be/internal/handler"
	"study-stream-be/internal/pkg/logger"
	"study-stream-be/internal/repository/unitofwork"
	"study-stream-be/internal/service"
	"study-stream-be/internal/websocket"
	"study-stream-be/pkg/llm/factory"
	"study-stream-be/pkg/storage"
	"study-stream-be/pkg/summarizer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	ChatController  controller.IChatController
	PaperController controller.IPaperController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ChatWsHandler *handler.ChatWsHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:          cfg.Ai.Provider,
		Model:             cfg.Ai.Model,
		OpenRouterAPIKey:  cfg.Ai.OpenRouterAPIKey,
		OpenRouterBaseURL: cfg.Ai.OpenRouterBaseURL,
		OllamaBaseURL:     cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// Object storage
	objectStore, err := storage.NewMinioStore(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
		cfg.Storage.PublicBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
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
		rdb = nil
	}

	// 4. Services
	engine := summarizer.NewEngine(llmProvider, sysLogger)

	publisherService := service.NewPublisherService(cfg.Events.RoomEndedTopic, pubSub)
	chatService := service.NewChatService(uowFactory, engine, publisherService, sysLogger)
	summaryService := service.NewSummaryService(uowFactory, sysLogger)
	authService := service.NewAuthService(uowFactory, sysLogger)
	uploadService := service.NewUploadService(objectStore, sysLogger)
	paperService := service.NewPaperService(uowFactory, uploadService, sysLogger)

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat.log")
	wsHub := websocket.NewHub(rdb, chatService, wsLogger)
	go wsHub.Run()

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.RoomEndedTopic,
		wsHub,
		summaryService,
	)

	// 6. Handlers & Controllers
	wsHandler := handler.NewChatWsHandler(wsHub, wsLogger)

	return &Container{
		AuthController:  controller.NewAuthController(authService),
		ChatController:  controller.NewChatController(chatService, summaryService, uploadService),
		PaperController: controller.NewPaperController(paperService),
		ConsumerService: consumerService,
		ChatWsHandler:   wsHandler,
		WebSocketHub:    wsHub,
	}
}

package bootstrap

import (
	"context"
	"log"
	"time"

	"groupchat-be/internal/config"
	"groupchat-be/internal/controller"
	"groupchat-be/internal/handler"
	"groupchat-be/internal/pkg/logger"
	"groupchat-be/internal/repository/unitofwork"
	"groupchat-be/internal/service"
	"groupchat-be/internal/websocket"

	pktNats "groupchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RoomController controller.IRoomController

	// Background Services (Exposed for main.go to run)
	RetentionService service.IRetentionService

	// WebSockets & Fan-out
	ChatHandler  *handler.ChatHandler
	WebSocketHub *websocket.Hub
	Relay        *websocket.Relay
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus (in-process, retention sweeps)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS carries the cross-process fan-out. A missing broker degrades
	// to single-process delivery, it never blocks startup.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis (presence). Nil client falls back to in-memory presence.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub + Relay
	chatLogger := logger.NewIsolatedLogger("logs/chat.log")
	wsHub := websocket.NewHub(chatLogger)

	publishTimeout := time.Duration(cfg.Chat.PublishTimeoutMs) * time.Millisecond
	relay := websocket.NewRelay(wsHub, natsPub, natsSub, publishTimeout, chatLogger)
	if err := relay.Start(); err != nil {
		log.Printf("[WARN] Relay subscription failed, running in local-only mode: %v", err)
	}

	// 3. Services
	chatService := service.NewChatService(uowFactory, relay, cfg.Chat.MaxBodyLength, chatLogger)
	roomService := service.NewRoomService(uowFactory, chatService)
	historyService := service.NewHistoryService(uowFactory)
	reactionService := service.NewReactionService(uowFactory, relay)

	presenceTTL := time.Duration(cfg.Chat.PresenceTTLSeconds) * time.Second
	presenceService := service.NewPresenceService(rdb, presenceTTL, chatLogger)

	retentionService := service.NewRetentionService(pubSub, uowFactory, chatService, sysLogger)

	gateway := service.NewChatGateway(wsHub, roomService, chatService, presenceService, chatLogger)

	// 4. Handlers & Controllers
	chatHandler := handler.NewChatHandler(
		wsHub,
		gateway,
		roomService,
		historyService,
		reactionService,
		presenceService,
		retentionService,
		chatLogger,
	)

	return &Container{
		RoomController: controller.NewRoomController(roomService),

		RetentionService: retentionService,

		ChatHandler:  chatHandler,
		WebSocketHub: wsHub,
		Relay:        relay,
	}
}

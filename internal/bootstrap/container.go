package bootstrap

import (
	"context"
	"log"

	"notevault-be/internal/autosave"
	"notevault-be/internal/config"
	"notevault-be/internal/controller"
	"notevault-be/internal/dto"
	"notevault-be/internal/handler"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/pkg/mailer"
	"notevault-be/internal/pkg/serverutils"
	"notevault-be/internal/repository/memory"
	"notevault-be/internal/repository/unitofwork"
	"notevault-be/internal/service"
	"notevault-be/internal/websocket"

	pktNats "notevault-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NotebookController controller.INotebookController
	NoteController     controller.INoteController
	UserController     controller.IUserController
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController

	// Background services, run from main.go
	ConsumerService service.IConsumerService
	Debouncer       *autosave.Debouncer

	// WebSockets
	EventHandler *handler.EventHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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

	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.LifecycleTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.LifecycleTopic,
		wsHub,
		natsPub,
	)

	stateRepo := memory.NewStateRepository()

	authService := service.NewAuthService(uowFactory, emailService, cfg.App.JWTSecret)
	oauthService := service.NewOAuthService(
		uowFactory,
		stateRepo,
		cfg.OAuth.GoogleClientID,
		cfg.OAuth.GoogleClientSecret,
		cfg.OAuth.GoogleRedirectURL,
		cfg.App.JWTSecret,
	)
	userService := service.NewUserService(uowFactory)

	notebookService := service.NewNotebookService(uowFactory, publisherService, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)

	// The editor's content writes funnel through one debouncer so bursts of
	// keystrokes become a single save per quiet period.
	debouncer := autosave.NewDebouncer(autosave.DefaultQuietPeriod, func(ctx context.Context, userId uuid.UUID, req *dto.AutosaveNoteRequest) error {
		_, saveErr := noteService.Autosave(ctx, userId, req)
		return saveErr
	})

	// Durable audit trail of every lifecycle transition.
	if natsSub != nil {
		auditLogger := logger.NewIsolatedLogger("logs/audit.log")
		go service.NewAuditService(natsSub, auditLogger).Start()
	}

	eventHandler := handler.NewEventHandler(wsHub, cfg.App.JWTSecret, wsLogger)

	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.App.JWTSecret)

	return &Container{
		NotebookController: controller.NewNotebookController(notebookService, jwtMiddleware),
		NoteController:     controller.NewNoteController(noteService, debouncer, jwtMiddleware),
		UserController:     controller.NewUserController(userService, jwtMiddleware),
		AuthController:     controller.NewAuthController(authService),
		OAuthController:    controller.NewOAuthController(oauthService, cfg.App.ClientURL),

		ConsumerService: consumerService,
		Debouncer:       debouncer,

		EventHandler: eventHandler,
		WebSocketHub: wsHub,
	}
}

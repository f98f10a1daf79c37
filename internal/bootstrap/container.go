package bootstrap

import (
	"context"
	"log"

	"facility-services-be/internal/config"
	"facility-services-be/internal/controller"
	"facility-services-be/internal/handler"
	"facility-services-be/internal/pkg/logger"
	"facility-services-be/internal/pkg/mailer"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/repository/implementation"
	"facility-services-be/internal/repository/memory"
	"facility-services-be/internal/repository/unitofwork"
	"facility-services-be/internal/service"
	"facility-services-be/internal/websocket"
	"facility-services-be/pkg/pdf"

	pktNats "facility-services-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// serviceCompletedTopic carries completed-schedule messages from the
// schedule service to the invoice drafting consumer.
const serviceCompletedTopic = "service_completed"

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	UserController         controller.IUserController
	RequestController      controller.IRequestController
	ScheduleController     controller.IScheduleController
	ClientPortalController controller.IClientPortalController
	CatalogController      controller.ICatalogController
	AdminController        controller.IAdminController

	// Shared auth middleware, injected into every protected route group.
	AuthMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	authMiddleware := serverutils.NewAuthMiddleware(uowFactory)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(serviceCompletedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, serviceCompletedTopic, uowFactory)

	catalogCache := memory.NewCatalogCache()
	invoiceRenderer := pdf.NewInvoiceRenderer(cfg.SMTP.SenderName)

	authService := service.NewAuthService(uowFactory, natsPub)
	userService := service.NewUserService(uowFactory)
	requestService := service.NewRequestService(uowFactory, natsPub)
	scheduleService := service.NewScheduleService(uowFactory, publisherService, natsPub, rdb)
	confirmationService := service.NewConfirmationService(uowFactory, emailService, natsPub)
	invoiceService := service.NewInvoiceService(uowFactory, invoiceRenderer)
	conversationService := service.NewConversationService(uowFactory)
	catalogService := service.NewCatalogService(uowFactory, catalogCache)
	companyService := service.NewCompanyService(uowFactory)

	// 3.5 Notification System Infrastructure
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		UserController:     controller.NewUserController(userService),
		RequestController:  controller.NewRequestController(requestService),
		ScheduleController: controller.NewScheduleController(scheduleService, confirmationService, cfg.App.UploadDir),
		ClientPortalController: controller.NewClientPortalController(
			confirmationService,
			invoiceService,
			conversationService,
		),
		CatalogController: controller.NewCatalogController(catalogService),
		AdminController: controller.NewAdminController(
			userService,
			companyService,
			catalogService,
			invoiceService,
		),

		AuthMiddleware: authMiddleware,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		ConsumerService: consumerService,
	}
}

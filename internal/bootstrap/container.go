package bootstrap

import (
	"context"
	"log"

	"teletherapy-be/internal/config"
	"teletherapy-be/internal/controller"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/pkg/mailer"
	"teletherapy-be/internal/repository/memory"
	"teletherapy-be/internal/repository/unitofwork"
	"teletherapy-be/internal/service"
	"teletherapy-be/pkg/admin/compliance"
	"teletherapy-be/pkg/admin/credential"
	"teletherapy-be/pkg/admin/dashboard"
	adminEvents "teletherapy-be/pkg/admin/events"
	"teletherapy-be/pkg/admin/pricing"
	"teletherapy-be/pkg/admin/user"
	"teletherapy-be/pkg/gateway"

	pktNats "teletherapy-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// notificationTopic is the in-process bus topic carrying outbound mail work.
const notificationTopic = "notifications"

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	SessionController      controller.ISessionController
	SubscriptionController controller.ISubscriptionController
	TherapistController    controller.ITherapistController
	AdminController        controller.IAdminController

	// Background services (exposed for main.go to run)
	NotificationService service.INotificationService
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
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Payment gateway
	chargeGateway := gateway.NewMidtransGateway(
		cfg.Payment.MidtransServerKey,
		cfg.Payment.MidtransEnv == "production",
	)

	// 3. Services
	policyCache := memory.NewPolicyCache()
	policyService := service.NewPolicyService(uowFactory, policyCache)

	publisherService := service.NewPublisherService(pubSub, notificationTopic)
	notificationService := service.NewNotificationService(pubSub, notificationTopic, emailService, sysLogger)

	authService := service.NewAuthService(uowFactory, cfg.App.JWTSecret)
	sessionService := service.NewSessionService(
		uowFactory,
		policyService,
		chargeGateway,
		publisherService,
		natsPub,
		sysLogger,
	)
	subscriptionService := service.NewSubscriptionService(uowFactory, natsPub, sysLogger)
	therapistService := service.NewTherapistService(
		uowFactory,
		policyService,
		publisherService,
		natsPub,
		sysLogger,
	)

	// Admin domain components
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	userManager := user.NewManager(sysLogger, adminEventPublisher)
	credentialManager := credential.NewManager(sysLogger, adminEventPublisher)
	complianceManager := compliance.NewManager(sysLogger)
	pricingManager := pricing.NewManager(sysLogger, adminEventPublisher)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	adminService := service.NewAdminService(
		uowFactory,
		policyService,
		sysLogger,
		userManager,
		credentialManager,
		complianceManager,
		pricingManager,
		dashboardAggregator,
	)

	// Start the notification consumer
	if err := notificationService.Consume(context.Background()); err != nil {
		log.Printf("[WARN] Failed to start notification consumer: %v", err)
	}

	// 4. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		SessionController:      controller.NewSessionController(sessionService),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService),
		TherapistController:    controller.NewTherapistController(therapistService),
		AdminController:        controller.NewAdminController(adminService),

		NotificationService: notificationService,
	}
}

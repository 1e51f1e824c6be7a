package main

import (
	"context"
	"log"
	"time"

	"centavo/internal/domain/backup"
	"centavo/internal/domain/notification"
	"centavo/internal/domain/payment"
	"centavo/internal/domain/pin"
	"centavo/internal/domain/settings"
	"centavo/internal/domain/statistics"
	"centavo/internal/domain/transaction"
	"centavo/internal/infrastructure/firebase"
	"centavo/internal/infrastructure/postgres"
	"centavo/internal/infrastructure/postgres/listener"
	httphandlers "centavo/internal/interfaces/http"
	"centavo/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB       *postgres.DB
	Listener *listener.PaymentListener

	// Handlers
	PaymentHandler      *httphandlers.PaymentHandler
	TransactionHandler  *httphandlers.TransactionHandler
	StatisticsHandler   *httphandlers.StatisticsHandler
	SettingsHandler     *httphandlers.SettingsHandler
	BackupHandler       *httphandlers.BackupHandler
	PinHandler          *httphandlers.PinHandler
	NotificationHandler *httphandlers.NotificationHandler
	WatchHandler        *httphandlers.OccurrenceWatchHandler

	// Services used by the scheduler jobs
	Materializer        *payment.Materializer
	NotificationService *notification.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := db.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	paymentRepo := postgres.NewPaymentRepository(db)
	ruleRepo := postgres.NewRuleRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	pinRepo := postgres.NewPinRepository(db)
	deviceTokenRepo := postgres.NewDeviceTokenRepository(db)

	// Initialize domain services
	paymentService := payment.NewService(paymentRepo, ruleRepo)
	transactionService := transaction.NewService(transactionRepo)
	lifecycle := payment.NewLifecycle(paymentRepo, ruleRepo, transactionRepo)
	materializer := payment.NewMaterializer(paymentRepo, ruleRepo, transactionRepo, time.Now)
	statisticsService := statistics.NewService(transactionRepo, paymentService, transactionService, settingsRepo, time.Now)
	settingsService := settings.NewService(settingsRepo)
	backupService := backup.NewService(paymentRepo, ruleRepo, transactionRepo, settingsRepo, time.Now)
	pinService := pin.NewService(pinRepo, time.Now)

	// Initialize the push messenger. Without Firebase credentials the
	// notification service still registers tokens; nothing gets delivered.
	var messenger notification.Messenger = notification.NopMessenger{}
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, deviceTokenRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase: %v", err)
		} else {
			messenger = fcm
			log.Println("Firebase messaging initialized")
		}
	}

	notificationService := notification.NewService(deviceTokenRepo, messenger, paymentService, transactionRepo, settingsRepo, time.Now)

	// Listener for the payments change feed; watchers re-derive their
	// occurrence projection on each signal.
	paymentListener := listener.NewPaymentListener(cfg.Database.ConnectionString())
	aggregator := payment.NewAggregator(paymentService)

	return &Dependencies{
		DB:                  db,
		Listener:            paymentListener,
		PaymentHandler:      httphandlers.NewPaymentHandler(paymentService, lifecycle),
		TransactionHandler:  httphandlers.NewTransactionHandler(transactionService),
		StatisticsHandler:   httphandlers.NewStatisticsHandler(statisticsService),
		SettingsHandler:     httphandlers.NewSettingsHandler(settingsService),
		BackupHandler:       httphandlers.NewBackupHandler(backupService),
		PinHandler:          httphandlers.NewPinHandler(pinService),
		NotificationHandler: httphandlers.NewNotificationHandler(notificationService),
		WatchHandler:        httphandlers.NewOccurrenceWatchHandler(aggregator, paymentListener.Subscribe),
		Materializer:        materializer,
		NotificationService: notificationService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

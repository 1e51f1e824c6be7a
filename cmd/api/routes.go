package main

import (
	"net/http"

	"centavo/internal/scheduler"
	"centavo/internal/shared/config"
	"centavo/internal/shared/middleware"

	httphandlers "centavo/internal/interfaces/http"
)

// SetupRoutes configures all HTTP routes and returns the final handler with
// middleware. sched may be nil when the scheduler is disabled.
func SetupRoutes(deps *Dependencies, cfg *config.Config, sched *scheduler.Scheduler) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", handleHealth)

	// Scheduled payments and their recurrence
	mux.HandleFunc("/api/payments", deps.PaymentHandler.HandlePayments)
	mux.HandleFunc("/api/payments/occurrences", deps.PaymentHandler.HandleOccurrences)
	mux.HandleFunc("/api/payments/occurrences/watch", deps.WatchHandler.HandleWatch)
	mux.HandleFunc("/api/payments/{id}", deps.PaymentHandler.HandlePaymentByID)
	mux.HandleFunc("/api/payments/{id}/rules", deps.PaymentHandler.HandleRules)
	mux.HandleFunc("/api/payments/{id}/rules/{ruleID}", deps.PaymentHandler.HandleRuleByID)
	mux.HandleFunc("/api/payments/{id}/occurrences", deps.PaymentHandler.HandlePaymentOccurrences)
	mux.HandleFunc("/api/payments/{id}/paid", deps.PaymentHandler.HandleMarkPaid)
	mux.HandleFunc("/api/payments/{id}/unpaid", deps.PaymentHandler.HandleMarkUnpaid)

	// Transactions
	mux.HandleFunc("/api/transactions", deps.TransactionHandler.HandleTransactions)
	mux.HandleFunc("/api/transactions/balance", deps.TransactionHandler.HandleBalance)
	mux.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.HandleTransactionByID)

	// Statistics
	mux.HandleFunc("/api/statistics", deps.StatisticsHandler.HandleStatistics)

	// Settings
	mux.HandleFunc("/api/settings", deps.SettingsHandler.HandleSettings)

	// Backup
	mux.HandleFunc("/api/backup/export", deps.BackupHandler.HandleExport)
	mux.HandleFunc("/api/backup/import", deps.BackupHandler.HandleImport)

	// App lock PIN
	mux.HandleFunc("/api/pin", deps.PinHandler.HandlePin)
	mux.HandleFunc("/api/pin/verify", deps.PinHandler.HandleVerify)

	// Push notifications
	mux.HandleFunc("/api/notifications/register-device", deps.NotificationHandler.HandleRegisterDevice)

	// Scheduler admin surface
	var trigger httphandlers.JobTrigger
	if sched != nil {
		trigger = sched
	}
	schedulerHandler := httphandlers.NewSchedulerHandler(trigger)
	mux.HandleFunc("/api/admin/scheduler", schedulerHandler.HandleStatus)
	mux.HandleFunc("/api/admin/scheduler/trigger", schedulerHandler.HandleTrigger)

	// Apply global middleware
	var handler http.Handler = mux
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}
	return middleware.Logging(middleware.CORS(middleware.SecurityHeaders(handler)))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

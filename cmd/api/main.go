package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"centavo/internal/scheduler"
	"centavo/internal/shared/config"
	"centavo/internal/shared/messages"
	"centavo/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load .env if present; real environment wins
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := messages.Load(cfg.Messages.TemplatesFile); err != nil {
		log.Printf("Warning: %v (using default messages)", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize telemetry (if enabled)
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Telemetry.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
		log.Println("Telemetry initialized")
	}

	deps, err := NewDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Start the payments change feed listener
	deps.Listener.Start(ctx)
	defer deps.Listener.Stop()

	// Initialize scheduler (if enabled)
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		times := make([]scheduler.ScheduleTime, 0, len(cfg.Scheduler.ScheduleTimes))
		for _, raw := range cfg.Scheduler.ScheduleTimes {
			st, err := scheduler.ParseScheduleTime(raw)
			if err != nil {
				return err
			}
			times = append(times, st)
		}

		pool := scheduler.NewWorkerPool(cfg.Scheduler.WorkerCount, cfg.Scheduler.JobDelay, cfg.Scheduler.QueueSize)
		sched = scheduler.NewScheduler(pool, times, func() []scheduler.Job {
			return []scheduler.Job{
				scheduler.NewMaterializeJob(deps.Materializer),
				scheduler.NewReminderJob(deps.NotificationService, cfg.Reminder.DaysAhead),
				scheduler.NewBudgetAlertJob(deps.NotificationService),
			}
		})
		sched.Start(cfg.Scheduler.RunOnStartup)
	} else {
		log.Println("Scheduler is disabled")
	}

	// Create server
	handler := SetupRoutes(deps, cfg, sched)
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if sched != nil {
		sched.Shutdown(30 * time.Second)
	}

	log.Println("Server stopped")
	return nil
}

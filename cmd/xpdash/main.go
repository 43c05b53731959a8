package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"xpdash/internal/amqp"
	"xpdash/internal/config"
	apphttp "xpdash/internal/http"
	applog "xpdash/internal/log"
	"xpdash/internal/metrics"
	"xpdash/internal/provider"
	"xpdash/internal/services"
	"xpdash/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	sessions, err := storage.NewSessionRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open session store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer sessions.Close()

	// Activity events are optional: without a broker the dashboard runs
	// the same, it just publishes nothing.
	var activity services.ActivityPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, activity events disabled", "error", err)
		} else {
			defer client.Close()
			activity = client
		}
	}

	identity := provider.NewClient(provider.Config{
		AuthURL:    cfg.AuthURL,
		GraphQLURL: cfg.GraphQLURL,
		EventID:    cfg.EventID,
	})

	dashboard := services.NewDashboardService(identity, sessions, activity, metrics.New())

	srv := apphttp.NewServer(":"+cfg.Port, dashboard)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting xpdash server", "port", cfg.Port, "event_id", cfg.EventID)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

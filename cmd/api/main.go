package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/fitcheck/internal/analysis"
	"github.com/your-org/fitcheck/internal/api"
	"github.com/your-org/fitcheck/internal/api/handlers"
	"github.com/your-org/fitcheck/internal/api/ws"
	"github.com/your-org/fitcheck/internal/app"
	"github.com/your-org/fitcheck/internal/config"
	"github.com/your-org/fitcheck/internal/observability"
	"github.com/your-org/fitcheck/internal/queue"
	"github.com/your-org/fitcheck/internal/storage"
	"github.com/your-org/fitcheck/internal/stylemetrics"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanups finish first.
func run() int {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting fitcheck API service",
		"port", cfg.Server.Port,
		"metrics_store", cfg.MetricsStore.Driver,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics history
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("open metrics store", "driver", cfg.MetricsStore.Driver, "error", err)
		return 1
	}
	defer store.Close()
	history := storage.NewHistory(store, cfg.MetricsStore.Capacity)

	checks := []handlers.Check{{Name: "metrics_store", Ping: history.Ping}}

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run(ctx)

	// Without NATS the hub receives results directly.
	var publisher queue.Publisher = hub
	if cfg.NATS.URL != "" {
		producer, err := queue.NewProducer(cfg.NATS.URL)
		if err != nil {
			slog.Error("connect to nats", "error", err)
			return 1
		}
		defer producer.Close()

		if err := producer.EnsureStreams(ctx); err != nil {
			slog.Warn("ensure nats streams", "error", err)
		}

		consumer, err := queue.NewConsumer(cfg.NATS.URL)
		if err != nil {
			slog.Error("create result consumer", "error", err)
			return 1
		}
		defer consumer.Close()

		if err := consumer.ConsumeResults(ctx, "api-results", hub.HandleResult); err != nil {
			slog.Warn("start result consumer", "error", err)
		}

		publisher = producer
		checks = append(checks, handlers.Check{
			Name: "nats",
			Ping: func(context.Context) error { return producer.Ping() },
		})
	}

	classifier, closeClassifier := app.NewClassifier(cfg, app.ClassifierOptions{})
	defer closeClassifier()

	svc := analysis.NewService(
		classifier,
		app.NewRater(cfg.OpenAI, false),
		stylemetrics.New(),
		history,
		publisher,
	)

	router := api.NewRouter(api.RouterConfig{
		Analyzer:       svc,
		History:        history,
		Hub:            hub,
		MaxUploadBytes: cfg.Server.MaxUploadBytes(),
		ReadyChecks:    checks,
	})

	// Rating calls can take up to the OpenAI timeout.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.OpenAI.Timeout + cfg.HuggingFace.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	code := 0
	select {
	case <-quit:
		slog.Info("shutting down API server...")
	case err := <-serveErr:
		slog.Error("server error", "error", err)
		code = 1
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	cancel()

	slog.Info("API server stopped")
	return code
}

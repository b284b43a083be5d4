package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/sy-number-bot/internal/api/router"
	"github.com/wolfman30/sy-number-bot/internal/app/bootstrap"
	appconfig "github.com/wolfman30/sy-number-bot/internal/config"
	"github.com/wolfman30/sy-number-bot/internal/contacts"
	"github.com/wolfman30/sy-number-bot/internal/http/handlers"
	"github.com/wolfman30/sy-number-bot/internal/lookup"
	"github.com/wolfman30/sy-number-bot/internal/messaging/telegramclient"
	observemetrics "github.com/wolfman30/sy-number-bot/internal/observability/metrics"
	"github.com/wolfman30/sy-number-bot/internal/phone"
	"github.com/wolfman30/sy-number-bot/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting number bot API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"region", cfg.PhoneRegion,
	)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeDB, err := setupContacts(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise contacts store", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	metricsHandler, metrics := setupMetrics()

	telegram, err := telegramclient.New(telegramclient.Config{
		BaseURL: cfg.TelegramAPIBaseURL,
		Token:   cfg.TelegramBotToken,
		Timeout: cfg.TelegramTimeout,
		Logger:  logger.Logger,
	})
	if err != nil {
		logger.Error("failed to create telegram client", "error", err)
		os.Exit(1)
	}
	registerWebhook(ctx, telegram, cfg, logger)

	service := newLookupService(cfg, repo, metrics, logger)
	webhook := handlers.NewTelegramWebhookHandler(handlers.TelegramWebhookConfig{
		BotToken:    cfg.TelegramBotToken,
		Telegram:    telegram,
		Answers:     service,
		Logger:      logger,
		Metrics:     metrics,
		SendTimeout: cfg.TelegramTimeout,
	})

	r := router.New(&router.Config{
		Logger:          logger,
		TelegramWebhook: webhook,
		MetricsHandler:  metricsHandler,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// setupContacts connects to Postgres, applies migrations and seeds an empty
// table. Without DATABASE_URL an in-memory repository is returned.
func setupContacts(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (contacts.Repository, func(), error) {
	noop := func() {}
	if cfg.DatabaseURL != "" && cfg.AutoMigrate {
		if err := bootstrap.RunMigrations(cfg.DatabaseURL, -1); err != nil {
			return nil, noop, err
		}
		logger.Info("migrations complete")
	}
	pool, err := bootstrap.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, noop, err
	}
	if pool == nil {
		return bootstrap.BuildContactsRepository(nil, logger), noop, nil
	}
	if cfg.SeedOnStart {
		if err := bootstrap.SeedContacts(ctx, contacts.NewStore(pool), logger); err != nil {
			pool.Close()
			return nil, noop, err
		}
	}
	return bootstrap.BuildContactsRepository(pool, logger), pool.Close, nil
}

// newLookupService scopes both the normalizer prefix and the classifier to
// the configured region.
func newLookupService(cfg *appconfig.Config, repo contacts.Repository, metrics *observemetrics.LookupMetrics, logger *logging.Logger) *lookup.Service {
	return lookup.NewService(lookup.Config{
		Normalizer: phone.NewNormalizerForRegion(cfg.PhoneRegion),
		Classifier: phone.NewClassifier(cfg.PhoneRegion),
		Contacts:   repo,
		Metrics:    metrics,
		Logger:     logger,
	})
}

func setupMetrics() (http.Handler, *observemetrics.LookupMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observemetrics.NewLookupMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics
}

type webhookRegistrar interface {
	SetWebhook(ctx context.Context, req telegramclient.SetWebhookRequest) error
}

// registerWebhook points Telegram at this server when PUBLIC_BASE_URL is set.
// Failure is logged; an already registered webhook keeps working.
func registerWebhook(ctx context.Context, client webhookRegistrar, cfg *appconfig.Config, logger *logging.Logger) {
	if cfg.PublicBaseURL == "" {
		return
	}
	callCtx, cancel := context.WithTimeout(ctx, cfg.TelegramTimeout)
	defer cancel()
	err := client.SetWebhook(callCtx, telegramclient.SetWebhookRequest{
		URL:            webhookURL(cfg.PublicBaseURL, cfg.TelegramBotToken),
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		logger.Warn("failed to register telegram webhook", "error", err)
		return
	}
	logger.Info("telegram webhook registered", "base_url", cfg.PublicBaseURL)
}

func webhookURL(baseURL, token string) string {
	return fmt.Sprintf("%s/webhook/%s", baseURL, token)
}

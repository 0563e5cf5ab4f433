// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shopmate-api/internal/assistant"
	"shopmate-api/internal/common/config"
	"shopmate-api/internal/common/database"
	apperrors "shopmate-api/internal/common/errors"
	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/common/observability"
	"shopmate-api/internal/conversation"
	"shopmate-api/internal/geofilter"
	"shopmate-api/internal/location"
	"shopmate-api/internal/products"
	"shopmate-api/internal/server"
	"shopmate-api/internal/speech"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zapLog := logger.New("info", "console")
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting shopmate-api...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Product store, driver-selected ---
	var store products.Store
	var readyCheck func(ctx context.Context) error

	switch cfg.Database.Driver {
	case "elasticsearch":
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch initialization")
		if err != nil {
			zapLog.Fatal("elasticsearch unavailable", zap.Error(apperrors.NewDatabaseConnectionFailedError(err)))
		}
		store = products.NewElasticStore(esClient.Client, cfg.Database.Elasticsearch.Index, log)
		readyCheck = func(ctx context.Context) error { return esClient.Ping() }

	default:
		var pgClient *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pgClient, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pgClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "PostgreSQL initialization")
		if err != nil {
			zapLog.Fatal("postgres unavailable", zap.Error(apperrors.NewDatabaseConnectionFailedError(err)))
		}
		defer pgClient.Close()
		store = products.NewPostgresStore(pgClient.DB, log)
		readyCheck = pgClient.Ping
	}

	// --- Optional Redis read-through cache ---
	if cfg.Database.Cache.Enabled {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis initialization")
		if err != nil {
			zapLog.Fatal("redis unavailable", zap.Error(apperrors.NewDatabaseConnectionFailedError(err)))
		}
		defer redisClient.Close()
		store = products.NewCachedStore(store, redisClient.Client,
			time.Duration(cfg.Database.Cache.TTL)*time.Second, log)
	}

	// --- Assistant ---
	var genai *assistant.GenAIClient
	if cfg.APIs.GenAI.Enabled {
		genai = assistant.NewGenAIClient(&assistant.GenAIConfig{
			BaseURL: cfg.APIs.GenAI.BaseURL,
			APIKey:  cfg.APIs.GenAI.APIKey,
			Model:   cfg.APIs.GenAI.Model,
			Timeout: config.GetDuration(cfg.APIs.GenAI.Timeout),
		})
	}
	router := assistant.NewRouter(&assistant.Config{
		Currency:     cfg.Assistant.Currency,
		ListLimit:    cfg.Assistant.ListLimit,
		QueryTimeout: config.GetDuration(cfg.Assistant.QueryTimeout),
	}, store, genai, log)

	// --- Sessions ---
	sessions := conversation.NewManager(
		time.Duration(cfg.Server.SessionIdleTTL)*time.Minute, log)
	reapCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	go sessions.Run(reapCtx, time.Minute)

	// --- Location & speech ---
	var provider location.Provider
	if cfg.Location.ProviderURL != "" {
		provider = location.NewHTTPProvider(cfg.Location.ProviderURL,
			config.GetDuration(cfg.Location.Timeout))
	}
	resolver := location.NewResolver(provider, log)

	var transcriber speech.Transcriber = speech.Unsupported{}
	if cfg.Speech.ProviderURL != "" {
		transcriber = speech.NewHTTPTranscriber(cfg.Speech.ProviderURL,
			cfg.Speech.Locale, config.GetDuration(cfg.Speech.Timeout), log)
	}

	// --- HTTP server ---
	srv := server.New(&cfg.Server, &server.Dependencies{
		Router:   router,
		Sessions: sessions,
		Geo: &geofilter.Config{
			MaxDistanceKm:   cfg.Geo.MaxDistanceKm,
			MaxTimeMinutes:  cfg.Geo.MaxTimeMinutes,
			AssumedSpeedKmh: cfg.Geo.AssumedSpeedKmh,
		},
		Resolver:    resolver,
		Transcriber: transcriber,
		Obs:         obs,
		ReadyCheck:  readyCheck,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, stopping server...", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zapLog.Error("server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}

	zapLog.Info("shopmate-api stopped")
}

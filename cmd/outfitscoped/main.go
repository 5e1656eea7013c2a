// Command outfitscoped is the Outfitscope API service.
// It serves the REST API, the catalog upload webhook, metrics and a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/outfitscope/outfitscope/internal/api"
	"github.com/outfitscope/outfitscope/internal/closet"
	"github.com/outfitscope/outfitscope/internal/ingestion"
	"github.com/outfitscope/outfitscope/internal/logging"
	"github.com/outfitscope/outfitscope/internal/platform"
	"github.com/outfitscope/outfitscope/internal/webhook"
	"github.com/outfitscope/outfitscope/pkg/config"
)

type serverConfig struct {
	Port           string
	DatabaseURL    string
	ConfigFile     string
	WebhookSecret  string
	APIKey         string
	RateLimit      int
	MaxBodyBytes   int64
	StorageBackend string
	LogLevel       string
	LogFormat      string
	LogFile        string
}

func loadServerConfig() serverConfig {
	return serverConfig{
		Port:           envOrDefault("PORT", "8080"),
		DatabaseURL:    envOrDefault("DATABASE_URL", "postgres://localhost:5432/outfitscope?sslmode=disable"),
		ConfigFile:     os.Getenv("OUTFITSCOPE_CONFIG"),
		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		APIKey:         os.Getenv("API_KEY"),
		RateLimit:      envInt("RATE_LIMIT_PER_MIN", 120),
		MaxBodyBytes:   int64(envInt("MAX_BODY_BYTES", int(api.DefaultMaxBodyBytes))),
		StorageBackend: envOrDefault("STORAGE_BACKEND", "local"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		LogFile:        os.Getenv("LOG_FILE"),
	}
}

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := loadServerConfig()
	log, closer := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	defer closer.Close()

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("outfitscoped exited")
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg serverConfig, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engineCfg, err := loadEngineConfig(cfg.ConfigFile)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if err := platform.AutoMigrate(db); err != nil {
		return err
	}

	blobs, closeBlobs, err := openBlobs(ctx, cfg.StorageBackend)
	if err != nil {
		return err
	}
	defer closeBlobs()

	// Initialize services
	closetSvc := closet.NewService(db)
	importer := ingestion.NewService(closetSvc, blobs, logging.Component(log, "ingestion"))

	r := engineCfg.Recipe
	h := api.NewHandler(api.Deps{
		Store:    closetSvc,
		Importer: importer,
		Blobs:    blobs,
		Engine:   engineCfg.Engine(),
		Matcher:  engineCfg.Matcher(),
		Recipe:   &r,
		Boxes:    engineCfg.Boxes(),
		Cache:    api.NewCatalogCacheFromEnv(),
		Log:      logging.Component(log, "api"),
	})
	importer.OnImported(h.InvalidateCatalog)

	hook := newWebhook(cfg.WebhookSecret, importer, logging.Component(log, "webhook"))
	if hook == nil {
		log.Warn().Msg("WEBHOOK_SECRET is empty; webhook endpoint disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(h, routerOptions(cfg, healthHandler(db), hook)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.StorageBackend).Msg("starting outfitscoped")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	if hook != nil {
		hook.Wait()
	}
	return nil
}

// newWebhook returns nil when secret is empty: anyone can sign with an
// empty key, so the endpoint must stay unmounted.
func newWebhook(secret string, importer webhook.Importer, log zerolog.Logger) *webhook.Handler {
	if secret == "" {
		return nil
	}
	return webhook.NewHandler([]byte(secret), importer, log)
}

func routerOptions(cfg serverConfig, health http.HandlerFunc, hook *webhook.Handler) api.RouterOptions {
	opts := api.RouterOptions{
		APIKey:       cfg.APIKey,
		RateLimit:    cfg.RateLimit,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Health:       health,
	}
	if hook != nil {
		opts.Webhook = hook
	}
	return opts
}

// loadEngineConfig reads the scoring/matching config file, or returns the
// defaults when path is empty.
func loadEngineConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "database unreachable"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"kookboek/internal/api"
	"kookboek/internal/config"
	"kookboek/internal/logger"
	"kookboek/internal/metrics"
	"kookboek/internal/platform/gemini"
	"kookboek/internal/platform/imagestore"
	"kookboek/internal/platform/localllm"
	"kookboek/internal/recipe"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (json or yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(run(ctx, cfg, log), log)
	stop()
	os.Exit(code)
}

// exitCode logs a failed run and flushes the logger before the process
// exits, since os.Exit skips deferred calls.
func exitCode(err error, log *zap.Logger) int {
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Error("server stopped", zap.Error(err))
		return 1
	}
	log.Info("server stopped")
	return 0
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	dbStore, err := recipe.NewPostgresStore(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error creating postgres store: %w", err)
	}
	defer dbStore.Close()

	parser, closeParser, err := newParser(ctx, cfg.AI)
	if err != nil {
		return err
	}
	defer closeParser()

	images, imagesDir, err := newImageStore(cfg.Storage)
	if err != nil {
		return err
	}

	collector := metrics.New()
	handler := api.NewHandler(dbStore, parser, images, collector, log)
	router := api.NewRouter(handler, collector, log, api.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ImagesDir:      imagesDir,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	srv := &http.Server{Addr: cfg.Addr(), Handler: router}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr),
			zap.String("ai_provider", cfg.AI.Provider), zap.String("storage", cfg.Storage.Driver))
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

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newParser(ctx context.Context, cfg config.AIConfig) (api.RecipeParser, func(), error) {
	if cfg.Provider == config.ProviderLocal {
		return localllm.NewClient(cfg.LocalURL, cfg.LocalModel), func() {}, nil
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// newImageStore also returns the directory to serve under /images, which is
// empty for remote storage.
func newImageStore(cfg config.StorageConfig) (api.ImageStore, string, error) {
	if cfg.Driver == config.StorageS3 {
		s3Store, err := imagestore.NewS3Store(imagestore.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	}
	local, err := imagestore.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/vbonduro/spotshare/internal/auth"
	"github.com/vbonduro/spotshare/internal/config"
	"github.com/vbonduro/spotshare/internal/db"
	"github.com/vbonduro/spotshare/internal/images"
	"github.com/vbonduro/spotshare/internal/logging"
	"github.com/vbonduro/spotshare/internal/photostore/local"
	"github.com/vbonduro/spotshare/internal/service"
	"github.com/vbonduro/spotshare/internal/store"
	"github.com/vbonduro/spotshare/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if err := run(cfg, logger); err != nil {
		logger.Error("spotshare stopped", "error", err)
		cleanup()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	backend, database, err := newBackend(cfg, logger)
	if err != nil {
		return err
	}
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}()
	}

	policy, err := store.ParseLockPolicy(cfg.LockPolicy)
	if err != nil {
		return err
	}
	locks := store.NewLocks(policy)

	photoStg, err := local.NewLocalPhotoStore(cfg.ImagePath)
	if err != nil {
		return fmt.Errorf("failed to initialize image store: %w", err)
	}
	imageManager := images.NewManager(photoStg, logger)

	newID, err := service.NewIDGenerator(cfg.IDScheme)
	if err != nil {
		return err
	}

	spotService := service.NewSpotService(
		store.NewSpotStore(backend, locks, logger),
		store.NewCategoryStore(backend, locks, logger),
		store.NewAreaStore(backend, locks, logger),
		imageManager,
		service.Options{NewID: newID, PruneImages: cfg.PruneImages},
		logger,
	)

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		logger.Warn("no admin credential configured, admin routes are unreachable")
	}
	sessions := auth.NewSessions(cfg.AdminPassword, cfg.AdminPasswordHash, cfg.SessionTTL)

	server := web.NewServer(spotService, imageManager, sessions, logger)

	logger.Info("spotshare configured",
		"storage_backend", cfg.StorageBackend,
		"lock_policy", string(policy),
		"id_scheme", cfg.IDScheme,
		"prune_images", cfg.PruneImages,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newBackend returns the document backend named by cfg. The database is
// non-nil only for the sqlite backend and must be closed by the caller.
func newBackend(cfg *config.Config, logger *slog.Logger) (store.Backend, *sql.DB, error) {
	switch cfg.StorageBackend {
	case "", "file":
		logger.Info("using file storage", "data_dir", cfg.DataDir)
		return store.NewFileBackend(cfg.DataDir), nil, nil
	case "sqlite":
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Info("using sqlite storage", "db_path", cfg.DBPath)
		return store.NewSQLBackend(database), database, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

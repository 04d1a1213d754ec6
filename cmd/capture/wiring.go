package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/capture/internal/actions"
	"github.com/Veraticus/capture/internal/activity"
	"github.com/Veraticus/capture/internal/classifier"
	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/config"
	"github.com/Veraticus/capture/internal/google"
	"github.com/Veraticus/capture/internal/llm"
	"github.com/Veraticus/capture/internal/pipeline"
	"github.com/Veraticus/capture/internal/registry"
	"github.com/Veraticus/capture/internal/service"
	"github.com/Veraticus/capture/internal/storage"
)

// backend is an opened store plus how to read from it and release it.
type backend struct {
	store service.Store
	close func() error
	retry service.RetryOptions
	name  string
}

func (b *backend) Close() {
	if err := b.close(); err != nil {
		slog.Warn("Failed to close store", "backend", b.name, "error", err)
	}
}

func openBackend(ctx context.Context, cfg config.Capture, logger *slog.Logger) (*backend, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		store, err := openLocalStore(ctx, cfg.DatabasePath, logger)
		if err != nil {
			return nil, err
		}
		return &backend{
			store: store,
			close: store.Close,
			retry: service.RetryOptions{MaxAttempts: 1},
			name:  cfg.Backend,
		}, nil

	case config.BackendGoogle:
		gcfg, err := config.LoadGoogleConfig()
		if err != nil {
			return nil, fmt.Errorf("google credentials: %w", err)
		}
		client, err := google.NewClient(ctx, *gcfg, logger)
		if err != nil {
			return nil, err
		}
		return &backend{
			store: client,
			close: func() error { return nil },
			retry: gcfg.RetryOptions(),
			name:  cfg.Backend,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown store backend %q (want %s or %s)",
			common.ErrInvalidConfig, cfg.Backend, config.BackendGoogle, config.BackendLocal)
	}
}

func openLocalStore(ctx context.Context, dbPath string, logger *slog.Logger) (*storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return store, nil
}

// app is the fully wired capture pipeline.
type app struct {
	cfg        config.Capture
	backend    *backend
	classifier *classifier.Classifier
	runner     *pipeline.Runner
}

func newApp(ctx context.Context, logger *slog.Logger) (*app, error) {
	cfg := config.LoadCaptureConfig()

	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, fmt.Errorf("llm configuration: %w", err)
	}
	completer, err := llm.NewClient(ctx, llmCfg)
	if err != nil {
		return nil, err
	}

	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var now actions.Clock = time.Now
	store := be.store
	loader := registry.NewLoader(store, cfg.ConfigSheetID, be.retry, logger)
	cl := classifier.New(loader, completer, llmCfg.Timeout, logger)

	dispatcher := actions.NewDispatcher(
		actions.NewSaveLink(store, cfg.LinksSheetID, now),
		actions.NewNewIdea(store, store, cfg.IdeasFolderID, cfg.ConfigSheetID, now, logger),
		actions.NewAppendToProject(store, loader, now),
		actions.NewInbox(store, cfg.InboxDocID, now),
		logger,
	)
	recorder := activity.NewRecorder(store, cfg.ActivityLogSheetID, now, logger)

	logger.Debug("pipeline wired",
		"backend", be.name,
		"provider", llmCfg.Provider,
		"model", llmCfg.Model)

	return &app{
		cfg:        cfg,
		backend:    be,
		classifier: cl,
		runner:     pipeline.NewRunner(cl, dispatcher, recorder, logger),
	}, nil
}

func (a *app) Close() {
	a.backend.Close()
}

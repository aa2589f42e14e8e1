package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"polargrow-server/internal/config"
	"polargrow-server/internal/dataset"
	"polargrow-server/internal/httpapi"
	"polargrow-server/internal/modules/study"
	studyviews "polargrow-server/internal/modules/study/views"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dataDir", cfg.DataDir,
		"ecTargets", len(cfg.ECTargets),
	)

	if err := studyviews.LoadTemplates(); err != nil {
		return err
	}

	store := dataset.NewStore(cfg.ECTargets)

	// Warm the cache once at startup. A load failure is not fatal here:
	// the server still answers, every page shows the data-unavailable
	// notice and /healthz reports the condition.
	if _, err := store.Load(cfg.DataDir); err != nil {
		slog.Warn("dataset load failed (serving unavailable notice)", "dir", cfg.DataDir, "error", err)
	}

	mux := httpapi.NewMux(store, cfg.DataDir)
	study.RegisterFeature(mux, store, cfg.DataDir)

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err := <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

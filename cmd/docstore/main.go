package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/checklists/internal/config"
	"github.com/mmynk/checklists/internal/docstore"
	"github.com/mmynk/checklists/pkg/logging"
)

// main serves the checklist document for the HTTP remote store.
func main() {
	logging.Setup()
	cfg := config.DocStoreFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := docstore.NewFileStore(cfg.Path)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           docstore.NewRouter(docstore.New(store)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Document server starting", "address", cfg.Addr, "path", cfg.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Document server failed", "error", err)
		os.Exit(1)
	}
}

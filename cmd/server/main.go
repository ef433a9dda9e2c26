package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/checklists/internal/app"
	"github.com/mmynk/checklists/internal/config"
	"github.com/mmynk/checklists/internal/gateway"
	"github.com/mmynk/checklists/internal/metrics"
	"github.com/mmynk/checklists/internal/middleware"
	"github.com/mmynk/checklists/internal/service"
	"github.com/mmynk/checklists/internal/storage/remote"
	"github.com/mmynk/checklists/internal/storage/sqlite"
	"github.com/mmynk/checklists/pkg/api/apiconnect"
	"github.com/mmynk/checklists/pkg/logging"
)

const (
	// maxMessageSize leaves room for a full imported document inside a JSON string.
	maxMessageSize  = 16 << 20
	shutdownTimeout = 10 * time.Second
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	remoteStore, closeRemote := newRemoteStore(ctx, cfg.Remote)
	defer closeRemote()

	gw := gateway.New(store, remoteStore, gateway.Options{
		DefaultPath:   cfg.DefaultDocumentPath,
		RemoteTimeout: cfg.Remote.Timeout,
	}, m)
	defer gw.Close()

	a := app.Open(ctx, cfg.Roster, gw, store, m)
	slog.Info("Checklists ready", "roster", cfg.Roster.Users(), "acting_user", a.ActingUser(ctx))

	mux := http.NewServeMux()

	// Register Connect service
	path, handler := apiconnect.NewChecklistServiceHandler(
		service.NewChecklistService(a),
		connect.WithInterceptors(middleware.ActingUser(), middleware.LoggingInterceptor()),
		connect.WithReadMaxBytes(maxMessageSize),
	)
	mux.Handle(path, handler)
	mux.Handle("/export", service.ExportHandler(a))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	var remoteHealth service.HealthChecker
	if hc, ok := remoteStore.(service.HealthChecker); ok {
		remoteHealth = hc
	}
	mux.Handle("/healthz", service.HealthHandler(remoteHealth, cfg.Remote.Timeout))

	if cfg.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.StaticPath)
		if err != nil {
			return fmt.Errorf("failed to resolve static path: %w", err)
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(middleware.Logging(middleware.CORS(mux)), &http2.Server{})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newRemoteStore builds the configured remote mirror. An unreachable remote
// never prevents startup: the service then runs on the local cache alone.
func newRemoteStore(ctx context.Context, cfg config.Remote) (gateway.Store, func()) {
	noop := func() {}

	switch cfg.Backend {
	case config.RemoteHTTP:
		slog.Info("Mirroring document over HTTP", "url", cfg.URL)
		return remote.NewHTTPStore(cfg.URL, cfg.Timeout), noop
	case config.RemoteRedis:
		client, err := remote.NewRedisClient(ctx, cfg.RedisURL, cfg.Timeout)
		if err != nil {
			slog.Warn("Redis unavailable, running on local cache only", "error", err)
			return nil, noop
		}
		slog.Info("Mirroring document to redis", "key", cfg.RedisKey)
		return remote.NewRedisStore(client, cfg.RedisKey), func() {
			if err := client.Close(); err != nil {
				slog.Warn("Failed to close redis client", "error", err)
			}
		}
	default:
		slog.Info("No remote store configured")
		return nil, noop
	}
}

// staticHandler serves the frontend, falling back to index.html.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown RPCs must not fall through to the frontend
		if strings.HasPrefix(r.URL.Path, "/"+apiconnect.ChecklistServiceName) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

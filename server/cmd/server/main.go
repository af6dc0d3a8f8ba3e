package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/launchdash/launchdash/server/internal/api"
	"github.com/launchdash/launchdash/server/internal/auth"
	"github.com/launchdash/launchdash/server/internal/config"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/reactive"
	"github.com/launchdash/launchdash/server/internal/render"
	"github.com/launchdash/launchdash/server/internal/store"
	"github.com/launchdash/launchdash/server/internal/ui"
	"github.com/launchdash/launchdash/server/internal/ws"
)

const streamPath = "/ws/stream"

func main() {
	configPath := flag.String("config", "", "path to config file; leave empty to use built-in defaults")
	dataPath := flag.String("data", "", "launch CSV to load; overrides data.path from the config")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("launchdash-server starting", "config", *configPath)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"data_path", cfg.Data.Path,
		"data_watch", cfg.Data.Watch,
	)

	cols := columns(cfg.Data.Columns)
	ds, err := dataset.Load(cfg.Data.Path, cols)
	if err != nil {
		slog.Error("failed to load dataset", "err", err)
		os.Exit(1)
	}
	slog.Info("dataset loaded", "records", ds.Len(), "sites", len(ds.Sites()))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st := store.New(ds)
	m := metrics.NewServer()
	chart := render.Options{Width: cfg.Dashboard.Chart.Width, Height: cfg.Dashboard.Chart.Height}

	// WebSocket hub: per-client selection, pushes callback updates.
	hub := ws.New(st, reactive.Dashboard(chart), cfg.Dashboard, m)

	m.GaugeFunc("launchdash_dataset_records", "Launch records in the active dataset.", func() float64 {
		return float64(st.Current().Dataset.Len())
	})
	m.GaugeFunc("launchdash_dataset_version", "Version of the active dataset; bumps on every reload.", func() float64 {
		return float64(st.Current().Version)
	})
	m.GaugeFunc("launchdash_ws_clients", "Connected WebSocket clients.", func() float64 {
		return float64(hub.Count())
	})

	requireKey := auth.APIKey(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
	)

	// Combined HTTP server: UI, REST API, WebSocket hub and metrics on HTTPPort.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", requireKey(api.New(st, cfg.Dashboard, chart, m)))
	httpMux.Handle(streamPath, requireKey(hub))
	httpMux.Handle("/metrics", m.Handler())

	// Usage:  ./bin/launchdash-server -config config/config.yaml
	// Set server.ui_dir to serve a page from disk instead of the embedded one.
	if cfg.Server.UIDir != "" {
		httpMux.Handle("/", ui.Dir(cfg.Server.UIDir))
		slog.Info("serving UI static files", "dir", cfg.Server.UIDir)
	} else {
		httpMux.Handle("/", ui.Handler(cfg.Dashboard.Title, streamPath))
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	if cfg.Data.Watch {
		g.Go(func() error {
			err := dataset.Watch(gctx, cfg.Data.Path, cols,
				func(ds *dataset.Dataset) {
					m.Reloads.WithLabelValues("ok").Inc()
					st.Swap(ds)
				},
				func(error) { m.Reloads.WithLabelValues("error").Inc() },
			)
			if err != nil {
				return fmt.Errorf("dataset watch: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("launchdash-server shutting down")
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads path, or returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func columns(c config.ColumnsConfig) dataset.Columns {
	return dataset.Columns{
		LaunchSite:      c.LaunchSite,
		PayloadMass:     c.PayloadMass,
		Class:           c.Class,
		BoosterCategory: c.BoosterCategory,
	}
}

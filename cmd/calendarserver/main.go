// Command calendarserver is the edge HTTP collaborator (spec.md §6): it
// discovers the university's semester calendar catalog, fetches and
// extracts the PDF for a requested semester, and serves the result as CSV
// with cache-status reporting.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ctlin/chihlee-calendar/edgestore"
	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := DefaultConfig()
	flag.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")
	flag.StringVar(&cfg.CatalogURL, "catalog-url", cfg.CatalogURL, "URL of the semester catalog page")
	flag.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the SQLite durable store")
	flag.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis connection URL (empty uses an in-process cache)")
	flag.IntVar(&cfg.LRUSize, "lru-size", cfg.LRUSize, "in-process cache capacity when Redis is not configured")
	flag.DurationVar(&cfg.RefreshInterval, "refresh-interval", cfg.RefreshInterval, "catalog refresh interval")
	flag.StringVar(&cfg.CORSOrigins, "cors-origins", cfg.CORSOrigins, "allowed CORS origin (empty disables CORS)")
	flag.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "timeout for upstream catalog/PDF fetches")
	flag.Parse()

	if url := os.Getenv("CHIHLEE_CATALOG_URL"); url != "" {
		cfg.CatalogURL = url
	}
	if url := os.Getenv("CHIHLEE_REDIS_URL"); url != "" {
		cfg.RedisURL = url
	}

	store, err := edgestore.New(cfg.DBPath)
	if err != nil {
		slog.Error("opening durable store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	cache := NewCache(cfg.RedisURL, cfg.LRUSize)
	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	srv := &server{cfg: cfg, cache: cache, store: store, client: httpClient}

	sched := NewScheduler()
	if cfg.CatalogURL != "" {
		if err := sched.ScheduleRefresh(cfg.RefreshInterval, func(ctx context.Context) error {
			return refreshCatalog(ctx, httpClient, store, cfg.CatalogURL)
		}); err != nil {
			slog.Error("scheduling catalog refresh", "error", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		slog.Warn("catalog-url not set; cal_link/csv will only see entries already in the durable store")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(recoveryMiddleware, logMiddleware, corsMiddleware(cfg.CORSOrigins))
	registerRoutes(router, srv)

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		slog.Info("calendarserver listening", "addr", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	<-done

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// refreshCatalog polls the catalog page and durably records every entry
// found, the scheduled tick behind the periodic refresh.
func refreshCatalog(ctx context.Context, client *http.Client, store *edgestore.Store, catalogURL string) error {
	entries, err := FetchCatalog(ctx, client, catalogURL)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := store.UpsertCatalogEntry(ctx, e.Semester, e.PDFURL); err != nil {
			return err
		}
	}
	slog.Info("catalog refreshed", "entries", len(entries))
	return nil
}

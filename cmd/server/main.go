package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"sertec/internal/lookup"
	"sertec/internal/platform/config"
	"sertec/internal/platform/httpserver"
	"sertec/internal/platform/logger"
	"sertec/internal/platform/metrics"
	"sertec/internal/solicitud"
	httptransport "sertec/internal/transport/http"
	"sertec/internal/warranty"
	"sertec/pkg/dates"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Normalization rules live in the internal and pkg packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sertec:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	tables, err := lookup.LoadTables(cfg.CodeTablesPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	evaluator, err := warranty.New(cfg.CacheSize, warranty.WithLocation(cfg.Location), warranty.WithMetrics(m))
	if err != nil {
		return err
	}
	formatter, err := dates.NewFormatter(cfg.Location, cfg.CacheSize, dates.WithMetrics(m))
	if err != nil {
		return err
	}
	classifier := lookup.NewClassifier(tables)

	svc := solicitud.New(classifier, evaluator, formatter, solicitud.WithMetrics(m))
	handler := httptransport.New(svc, classifier, evaluator, formatter, log, m)
	router := httptransport.NewRouter(handler, log, m, reg)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting sertec",
		"addr", cfg.Addr,
		"timezone", cfg.Location.String(),
		"cache_size", cfg.CacheSize,
		"code_tables", cfg.CodeTablesPath,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(ctx, srv, log, cfg.ShutdownTimeout)
	})
	g.Go(func() error {
		reportCacheSizes(ctx, m, evaluator, formatter)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

const cacheReportInterval = 15 * time.Second

// reportCacheSizes samples cache occupancy until ctx is done.
func reportCacheSizes(ctx context.Context, m *metrics.Metrics, evaluator *warranty.Evaluator, formatter *dates.Formatter) {
	ticker := time.NewTicker(cacheReportInterval)
	defer ticker.Stop()
	for {
		m.SetCacheEntries("warranty", evaluator.Len())
		m.SetCacheEntries("date_display", formatter.Len())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

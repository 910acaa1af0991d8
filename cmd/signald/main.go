// Command signald is the long-running signal service. On a cron
// schedule it loads the stored daily history, runs the multi-timeframe
// analysis, and publishes the result to Redis. Prometheus metrics and a
// health endpoint are served alongside.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"backtest-systemv1/config"
	"backtest-systemv1/internal/logger"
	"backtest-systemv1/internal/metrics"
	"backtest-systemv1/internal/store/redis"
	"backtest-systemv1/internal/store/sqlite"
	"backtest-systemv1/internal/strategy"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init("signald", logger.ParseLevel(*logLevel))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config invalid", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.Data.SQLitePath)
	if err != nil {
		slog.Error("sqlite open failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher, err := redis.NewPublisher(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	health := metrics.NewHealthStatus()
	health.Register("sqlite", func(ctx context.Context) error { return store.Ping() })
	health.Register("redis", publisher.Ping)
	srv := metrics.NewServer(cfg.MetricsAddr, health)
	srv.Start()

	svc := &service{cfg: cfg, store: store, publisher: publisher}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Schedule.AnalyzeCron, svc.analyzeOnce); err != nil {
		slog.Error("cron schedule invalid", "spec", cfg.Schedule.AnalyzeCron, "error", err)
		os.Exit(1)
	}
	c.Start()
	slog.Info("signald started",
		"symbol", cfg.Symbol,
		"schedule", cfg.Schedule.AnalyzeCron,
		"metrics_addr", cfg.MetricsAddr)

	// Run one cycle immediately so a fresh deploy publishes without
	// waiting for the next cron tick.
	svc.analyzeOnce()

	<-ctx.Done()
	slog.Info("shutting down")

	cronCtx := c.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Warn("metrics server shutdown", "error", err)
	}
	log.Println("[signald] stopped")
}

type service struct {
	cfg       *config.Config
	store     *sqlite.Store
	publisher *redis.Publisher
}

// analyzeOnce runs one full load→analyze→publish cycle. Failures are
// logged and counted, never fatal — the next tick retries.
func (s *service) analyzeOnce() {
	started := time.Now()
	defer func() {
		metrics.AnalyzeDuration.Observe(time.Since(started).Seconds())
		metrics.BreakerState.Set(float64(s.publisher.BreakerState()))
	}()

	bars, err := s.store.ReadBars(s.cfg.Symbol, time.Time{})
	if err != nil {
		slog.Error("bar load failed", "symbol", s.cfg.Symbol, "error", err)
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.BarsLoaded.Add(float64(len(bars)))

	analysis, err := strategy.Analyze(bars, s.cfg.Weights, s.cfg.Strategy)
	if err != nil {
		slog.Error("analysis failed", "symbol", s.cfg.Symbol, "error", err)
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.CompositeScore.WithLabelValues(s.cfg.Symbol).Set(float64(analysis.Score.Net))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.publisher.PublishAnalysis(ctx, s.cfg.Symbol, analysis); err != nil {
		slog.Error("publish failed", "symbol", s.cfg.Symbol, "error", err)
		metrics.PublishErrors.Inc()
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return
	}

	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	slog.Info("analysis published",
		"symbol", s.cfg.Symbol,
		"action", string(analysis.Score.Action),
		"net", analysis.Score.Net,
		"bars", len(bars),
		"took", time.Since(started).Round(time.Millisecond).String())
}

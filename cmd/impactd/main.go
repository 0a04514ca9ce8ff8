// Command impactd serves NEO impact simulations over HTTP and, when enabled,
// from a Kafka request topic.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	httpadapter "github.com/couchcryptid/neo-impact-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/neo-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/neo-impact-service/internal/adapter/mapbox"
	"github.com/couchcryptid/neo-impact-service/internal/adapter/resolver"
	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/effects"
	"github.com/couchcryptid/neo-impact-service/internal/engine"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/couchcryptid/neo-impact-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
)

// alwaysReady backs /readyz when the Kafka pipeline is disabled.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	tuning := effects.DefaultTuning()
	if cfg.TuningFile != "" {
		tuning, err = effects.LoadTuning(cfg.TuningFile)
		if err != nil {
			logger.Error("failed to load tuning", "path", cfg.TuningFile, "error", err)
			os.Exit(1)
		}
		logger.Info("tuning overlay loaded", "path", cfg.TuningFile)
	}

	// Geocoder is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var trajectories domain.TrajectoryResolver
	if cfg.ResolverURL != "" {
		client := resolver.NewClient(cfg.ResolverURL, cfg.ResolverTimeout, logger, metrics)
		trajectories = resolver.NewCachedResolver(client, cfg.ResolverCacheSize, metrics)
		logger.Info("trajectory resolver enabled", "url", cfg.ResolverURL, "cache_size", cfg.ResolverCacheSize)
	} else {
		logger.Info("trajectory resolver disabled; orbital requests will fail")
	}

	clock := clockwork.NewRealClock()
	eng := engine.New(engine.Options{
		Resolver: trajectories,
		Tuning:   &tuning,
		Logger:   logger,
		Clock:    clock,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		ready   sharedobs.ReadinessChecker = alwaysReady{}
		reader  *kafkaadapter.Reader
		writer  *kafkaadapter.Writer
		running sync.WaitGroup
	)
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(eng, geocoder, metrics, logger, clock)
		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		ready = p

		running.Add(1)
		go func() {
			defer running.Done()
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka pipeline disabled")
	}

	simulate := httpadapter.NewSimulateHandler(eng, geocoder, metrics, logger, clock)
	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, simulate, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	running.Wait()
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

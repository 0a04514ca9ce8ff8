package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Simulator runs one simulation. *engine.Engine satisfies it.
type Simulator interface {
	Run(ctx context.Context, p domain.SimulationParameters) domain.Outcome
}

// SimulationTransformer implements Transformer: decode, geocode, simulate,
// describe the site, and serialize.
type SimulationTransformer struct {
	sim      Simulator
	geocoder domain.Geocoder
	metrics  *observability.Metrics
	logger   *slog.Logger
	clock    clockwork.Clock
}

// NewTransformer creates a SimulationTransformer. Pass a nil geocoder to
// disable site enrichment. clock stamps processed_at; nil means real time.
func NewTransformer(sim Simulator, geocoder domain.Geocoder, metrics *observability.Metrics, logger *slog.Logger, clock clockwork.Clock) *SimulationTransformer {
	return &SimulationTransformer{
		sim:      sim,
		geocoder: geocoder,
		metrics:  metrics,
		logger:   logger,
		clock:    clock,
	}
}

// Transform returns an error only for undecodable messages. Simulation
// failures are published as failure outcomes.
func (t *SimulationTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	params, site := domain.ResolveLocation(ctx, req.SimulationParameters, t.geocoder, t.logger)
	req.SimulationParameters = params

	start := time.Now()
	outcome := t.sim.Run(ctx, params)
	t.metrics.ObserveSimulation("pipeline", outcome, time.Since(start))

	if !outcome.OK {
		t.logger.Warn("simulation failed",
			"request_id", req.RequestID,
			"error_kind", outcome.ErrorKind,
			"error", outcome.Error,
		)
	}

	// A forward lookup already names ground zero for direct requests.
	if gz, ok := outcome.GroundZero(); ok && site == nil {
		site = domain.DescribeSite(ctx, gz, t.geocoder, t.logger)
	}

	return domain.SerializeRecord(domain.NewRecord(req, outcome, site, domain.Now(t.clock)))
}

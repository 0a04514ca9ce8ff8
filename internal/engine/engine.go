// Package engine runs one NEO simulation: it resolves the entry geometry,
// integrates the descent, composes the effect calculators in a fixed order
// and derives the damage assessment, timeline and visualization payload.
//
// Stages:
//
//	validate → resolve → (near miss | entry → effects → assessment →
//	timeline → visualization) → done
//
// Any failure, including a recovered panic or a non-finite value, ends the
// run with a failure outcome and no partial results.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/effects"
	"github.com/couchcryptid/neo-impact-service/internal/entry"
	"github.com/couchcryptid/neo-impact-service/internal/geo"
	"github.com/jonboulle/clockwork"
)

// Options configures an Engine. Zero values select the built-in defaults.
type Options struct {
	Resolver   domain.TrajectoryResolver
	Atmosphere effects.AtmosphereModel
	Tuning     *effects.Tuning
	Logger     *slog.Logger

	// Clock stamps outcome metadata. Nil means the real clock.
	Clock clockwork.Clock
}

// Engine is safe for concurrent use; each Run allocates its own state.
type Engine struct {
	resolver   domain.TrajectoryResolver
	atmosphere effects.AtmosphereModel
	tuning     effects.Tuning
	logger     *slog.Logger
	clock      clockwork.Clock
}

// New creates an Engine.
func New(opts Options) *Engine {
	tuning := effects.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	atmosphere := opts.Atmosphere
	if atmosphere == nil {
		atmosphere = effects.NewOpacityModel(tuning.Atmosphere)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		resolver:   opts.Resolver,
		atmosphere: atmosphere,
		tuning:     tuning,
		logger:     logger,
		clock:      clock,
	}
}

// Clock returns the engine's time source.
func (e *Engine) Clock() clockwork.Clock {
	return e.clock
}

// Tuning returns the effective calculator tuning.
func (e *Engine) Tuning() effects.Tuning {
	return e.tuning
}

// Run executes one simulation. It always returns a well-formed outcome.
func (e *Engine) Run(ctx context.Context, p domain.SimulationParameters) (out domain.Outcome) {
	stage := "validate"
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("simulation panicked", "stage", stage, "panic", r)
			out = domain.Failure(&domain.ComputationError{Stage: stage, Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	src, err := p.Validate()
	if err != nil {
		return domain.Failure(err)
	}

	stage = "resolve"
	geometry, miss, err := e.resolve(ctx, src)
	if err != nil {
		return domain.Failure(err)
	}
	meta := metadata(p, src, domain.Now(e.clock))

	if miss != nil {
		stage = "near_miss"
		nm := nearMiss(p, *miss)
		if err := checkEncodable(stage, nm); err != nil {
			return domain.Failure(err)
		}
		e.logger.Debug("near miss", "run_id", meta.RunID, "miss_distance_km", nm.MissDistanceKm)
		return domain.Outcome{OK: true, NearMissOutcome: &nm, Metadata: &meta}
	}

	stage = "entry"
	state := entry.Simulate(entry.Input{
		DiameterM:   p.DiameterM,
		DensityKgM3: p.DensityKgM3,
		VelocityKms: geometry.VelocityKms,
		AngleDeg:    geometry.AngleDeg,
		StrengthMPa: p.Strength(),
	})
	e.logger.Debug("entry integrated",
		"run_id", meta.RunID,
		"kind", state.Kind,
		"samples", len(state.Track),
	)

	stage = "effects"
	results := e.compose(p, geometry, state)

	stage = "assessment"
	rings := buildRings(results)
	assessment := assess(results, geometry.VelocityKms)

	stage = "timeline"
	groundZero := geo.Point{Lat: geometry.Lat, Lng: geometry.Lng}
	track := placeTrack(state, groundZero, geometry.AzimuthDeg)
	timeline := buildTimeline(results, groundZero, geometry)

	stage = "visualization"
	vis := buildVisualization(results, groundZero, track)

	impact := &domain.ImpactOutcome{
		Results:       results,
		Rings:         rings,
		EntryTrack:    track,
		Timeline:      timeline,
		Assessment:    assessment,
		Visualization: vis,
	}
	if err := checkEncodable("encode", impact); err != nil {
		return domain.Failure(err)
	}

	e.logger.Debug("simulation complete",
		"run_id", meta.RunID,
		"mode", results.Mode,
		"energy_mt", results.EnergyMt,
		"threat_level", assessment.ThreatLevel,
	)
	return domain.Outcome{OK: true, ImpactOutcome: impact, Metadata: &meta}
}

// resolve returns the entry geometry for src, or the resolver's verdict when
// the trajectory misses.
func (e *Engine) resolve(ctx context.Context, src domain.Source) (domain.DirectSource, *domain.TrajectoryResolution, error) {
	switch s := src.(type) {
	case domain.DirectSource:
		return s, nil, nil
	case domain.OrbitalSource:
		if e.resolver == nil {
			return domain.DirectSource{}, nil, &domain.ResolutionError{Err: domain.ErrNoResolver}
		}
		res, err := e.resolver.Resolve(ctx, s.Elements, s.EncounterTime)
		if err != nil {
			var rerr *domain.ResolutionError
			if errors.As(err, &rerr) {
				return domain.DirectSource{}, nil, err
			}
			return domain.DirectSource{}, nil, &domain.ResolutionError{Err: err}
		}
		if err := res.Check(); err != nil {
			return domain.DirectSource{}, nil, err
		}
		if res.EncounterTime.IsZero() {
			res.EncounterTime = s.EncounterTime
		}
		if !res.Impact {
			return domain.DirectSource{}, &res, nil
		}
		return res.Direct(), nil, nil
	default:
		return domain.DirectSource{}, nil, &domain.ComputationError{Stage: "resolve", Err: fmt.Errorf("unknown source %T", src)}
	}
}

func metadata(p domain.SimulationParameters, src domain.Source, now time.Time) domain.Metadata {
	return domain.Metadata{
		Version:    domain.Version,
		RunID:      domain.RunID(p),
		Source:     domain.SourceKind(src),
		Timestamp:  now,
		Parameters: p,
	}
}

// checkEncodable rejects payloads carrying NaN or infinite values.
func checkEncodable(stage string, v any) error {
	if _, err := json.Marshal(v); err != nil {
		return &domain.ComputationError{Stage: stage, Err: err}
	}
	return nil
}

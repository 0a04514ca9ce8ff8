package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/effects"
	"github.com/couchcryptid/neo-impact-service/internal/geo"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// maxBodyBytes bounds a simulation request body.
const maxBodyBytes = 1 << 20

// Simulator runs one simulation. *engine.Engine satisfies it.
type Simulator interface {
	Run(ctx context.Context, p domain.SimulationParameters) domain.Outcome
}

// SimulateHandler serves /api/v1/simulate. POST takes a SimulationRequest
// body; GET takes direct parameters as query values. The response is the
// SimulationRecord the pipeline would publish for it.
type SimulateHandler struct {
	sim      Simulator
	geocoder domain.Geocoder
	metrics  *observability.Metrics
	logger   *slog.Logger
	clock    clockwork.Clock
}

// NewSimulateHandler wires the handler. geocoder may be nil; a nil clock
// stamps records with real time.
func NewSimulateHandler(sim Simulator, geocoder domain.Geocoder, metrics *observability.Metrics, logger *slog.Logger, clock clockwork.Clock) *SimulateHandler {
	return &SimulateHandler{sim: sim, geocoder: geocoder, metrics: metrics, logger: logger, clock: clock}
}

func (h *SimulateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Failure(err))
		return
	}

	ctx := r.Context()
	params, site := domain.ResolveLocation(ctx, req.SimulationParameters, h.geocoder, h.logger)
	req.SimulationParameters = params

	start := time.Now()
	outcome := h.sim.Run(ctx, params)
	h.metrics.ObserveSimulation("http", outcome, time.Since(start))

	if !outcome.OK {
		h.logger.Info("simulation rejected",
			"request_id", req.RequestID,
			"error_kind", outcome.ErrorKind,
			"error", outcome.Error,
		)
	}
	if gz, ok := outcome.GroundZero(); ok && site == nil {
		site = domain.DescribeSite(ctx, gz, h.geocoder, h.logger)
	}

	writeJSON(w, statusFor(outcome), domain.NewRecord(req, outcome, site, domain.Now(h.clock)))
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (domain.SimulationRequest, error) {
	if r.Method == http.MethodGet {
		return requestFromQuery(r.URL.Query()), nil
	}

	var req domain.SimulationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return req, &domain.ValidationError{Field: "body", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return req, nil
}

// requestFromQuery reads a direct-mode request from query values. Numbers
// that are missing or unparseable become NaN so validation reports the
// offending field; optional fields stay unset when absent.
func requestFromQuery(q url.Values) domain.SimulationRequest {
	number := func(key string) float64 {
		return geo.ParseFloatOr(q.Get(key), math.NaN())
	}
	optional := func(key string) *float64 {
		if !q.Has(key) {
			return nil
		}
		v := number(key)
		return &v
	}
	zeroed := func(key string) float64 {
		if !q.Has(key) {
			return 0
		}
		return number(key)
	}

	return domain.SimulationRequest{
		RequestID: q.Get("request_id"),
		SimulationParameters: domain.SimulationParameters{
			DiameterM:      number("diameter_m"),
			DensityKgM3:    number("density_kg_m3"),
			VelocityKms:    optional("velocity_kms"),
			ImpactAngleDeg: optional("impact_angle_deg"),
			AzimuthDeg:     optional("azimuth_deg"),
			Lat:            optional("lat"),
			Lng:            optional("lng"),
			Location:       q.Get("location"),
			StrengthMPa:    optional("strength_mpa"),
			OceanDepthM:    zeroed("ocean_depth_m"),
			MitigationType: effects.MitigationType(q.Get("mitigation_type")),
			MitigationParams: effects.MitigationParams{
				LeadTimeDays: zeroed("lead_time_days"),
				DeltaVMs:     zeroed("delta_v_ms"),
				YieldMt:      zeroed("yield_mt"),
				Efficiency:   optional("efficiency"),
			},
		},
	}
}

// statusFor maps an outcome to its HTTP status: 422 for bad input, 502 when
// the trajectory resolver failed, 500 for internal faults.
func statusFor(o domain.Outcome) int {
	if o.OK {
		return http.StatusOK
	}
	switch o.ErrorKind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindResolution:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}

package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("simulation complete", "run_id", "abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "simulation complete", line["msg"])
	assert.Equal(t, "abc", line["run_id"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "debug", "text")

	logger.Debug("entry integrated", "samples", 12)
	assert.Contains(t, buf.String(), "samples=12")
}

func TestObserveSimulation(t *testing.T) {
	m := NewMetricsForTesting()

	impact := domain.Outcome{OK: true, ImpactOutcome: &domain.ImpactOutcome{
		Assessment: domain.DamageAssessment{ThreatLevel: domain.ThreatLocal},
	}}
	m.ObserveSimulation("http", impact, 3*time.Millisecond)
	m.ObserveSimulation("http", domain.Failure(&domain.ValidationError{Field: "diameter_m", Reason: "bad"}), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Simulations.WithLabelValues("http", "impact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Simulations.WithLabelValues("http", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ThreatLevels.WithLabelValues("LOCAL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimulationErrors.WithLabelValues("validation")))
}

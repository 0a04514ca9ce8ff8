package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawEvent(t *testing.T) {
	t.Run("direct request", func(t *testing.T) {
		data := []byte(`{"request_id":"req-7","diameter_m":17,"density_kg_m3":3300,"velocity_kms":19,"impact_angle_deg":20,"lat":54.8,"lng":61.1}`)
		req, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		assert.Equal(t, "req-7", req.RequestID)
		assert.Equal(t, 17.0, req.DiameterM)
		require.NotNil(t, req.VelocityKms)
		assert.Equal(t, 19.0, *req.VelocityKms)
		assert.Nil(t, req.StrengthMPa)
		assert.Nil(t, req.MitigationParams.Efficiency)
	})

	t.Run("explicit zero efficiency survives decoding", func(t *testing.T) {
		data := []byte(`{"diameter_m":200,"density_kg_m3":7800,"mitigation_type":"nuclear","mitigation_params":{"yield_mt":100,"efficiency":0}}`)
		req, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		require.NotNil(t, req.MitigationParams.Efficiency)
		assert.Equal(t, 0.0, *req.MitigationParams.Efficiency)
	})

	t.Run("request id from header", func(t *testing.T) {
		data := []byte(`{"diameter_m":17,"density_kg_m3":3300}`)
		req, err := ParseRawEvent(RawEvent{Value: data, Headers: map[string]string{"request_id": "hdr-1"}})

		require.NoError(t, err)
		assert.Equal(t, "hdr-1", req.RequestID)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{not json`)})
		assert.Error(t, err)
	})
}

func TestRunID_Deterministic(t *testing.T) {
	a := RunID(directParams())
	b := RunID(directParams())
	assert.Equal(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())

	other := directParams()
	other.DiameterM = 51
	assert.NotEqual(t, a, RunID(other))
}

func TestNewRecordAndSerialize(t *testing.T) {
	fixed := time.Date(2026, 2, 15, 3, 20, 0, 0, time.UTC)

	outcome := Outcome{OK: true, ImpactOutcome: &ImpactOutcome{Assessment: DamageAssessment{ThreatLevel: ThreatMinimal}}}

	t.Run("falls back to run id", func(t *testing.T) {
		rec := NewRecord(SimulationRequest{SimulationParameters: directParams()}, outcome, nil, fixed)
		assert.Equal(t, RunID(directParams()), rec.ID)
		assert.Equal(t, fixed, rec.ProcessedAt)
	})

	t.Run("headers", func(t *testing.T) {
		rec := NewRecord(SimulationRequest{RequestID: "req-1", SimulationParameters: directParams()}, outcome, &Site{Source: SiteReverse}, fixed)
		out, err := SerializeRecord(rec)
		require.NoError(t, err)

		assert.Equal(t, []byte("req-1"), out.Key)
		assert.Equal(t, "impact", out.Headers["outcome"])
		assert.Equal(t, "true", out.Headers["ok"])
		assert.Equal(t, "MINIMAL", out.Headers["threat_level"])
		assert.Equal(t, "2026-02-15T03:20:00Z", out.Headers["processed_at"])
		assert.NotContains(t, out.Headers, "error_kind")

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out.Value, &decoded))
		assert.Equal(t, "req-1", decoded["id"])
		assert.Contains(t, decoded, "outcome")
		assert.Contains(t, decoded, "site")
	})

	t.Run("failure headers", func(t *testing.T) {
		rec := NewRecord(SimulationRequest{RequestID: "req-2"}, Failure(&ValidationError{Field: "diameter_m", Reason: "bad"}), nil, fixed)
		out, err := SerializeRecord(rec)
		require.NoError(t, err)

		assert.Equal(t, "error", out.Headers["outcome"])
		assert.Equal(t, "validation", out.Headers["error_kind"])
		assert.NotContains(t, out.Headers, "threat_level")
	})
}

package scenario

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScenario(t *testing.T, s Scenario) domain.Outcome {
	t.Helper()
	eng := engine.New(engine.Options{
		Resolver: s.Resolver(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return eng.Run(context.Background(), s.Parameters)
}

func TestLoad_Scenarios(t *testing.T) {
	tests := []string{"chelyabinsk.yaml", "iron_ground.yaml", "apophis_flyby.yaml"}
	for _, file := range tests {
		t.Run(file, func(t *testing.T) {
			s, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)

			out := runScenario(t, s)
			assert.Empty(t, s.Check(out))
		})
	}
}

func TestLoad_DecodesFields(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "apophis_flyby.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "apophis-2029", s.Name)
	require.NotNil(t, s.Parameters.OrbitalElements)
	assert.Equal(t, 0.191, s.Parameters.OrbitalElements.Eccentricity)
	require.NotNil(t, s.Parameters.EncounterTime)
	assert.True(t, s.Parameters.EncounterTime.Equal(time.Date(2029, 4, 13, 21, 46, 0, 0, time.UTC)))
	require.NotNil(t, s.Resolution)
	assert.Equal(t, 38017.0, s.Resolution.MissDistanceKm)
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "bad_angle.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "impact_angle_deg")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing name",
			doc:  "parameters: {diameter_m: 10, density_kg_m3: 3000}\n",
		},
		{
			name: "unknown field",
			doc:  "name: x\nparameters: {diameter_m: 10, density_kg_m3: 3000, colour: red}\n",
		},
		{
			name: "bad mitigation type",
			doc:  "name: x\nparameters: {diameter_m: 10, density_kg_m3: 3000, mitigation_type: laser}\n",
		},
		{
			name: "bad encounter time",
			doc:  "name: x\nparameters: {diameter_m: 10, density_kg_m3: 3000, encounter_time: \"next tuesday\"}\n",
		},
		{
			name: "not yaml",
			doc:  "name: [unclosed\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("inline.yaml", []byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
}

func TestResolver_NilWithoutResolution(t *testing.T) {
	assert.Nil(t, Scenario{}.Resolver())
}

func TestCheck_ReportsMismatches(t *testing.T) {
	s := Scenario{Expect: Expect{Outcome: "impact", ErrorKind: "computation"}}
	out := domain.Failure(&domain.ValidationError{Field: "diameter_m", Reason: "too small"})

	problems := s.Check(out)
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "outcome")
	assert.Contains(t, problems[1], "error_kind")
}

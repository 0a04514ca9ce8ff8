package entry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMass(t *testing.T) {
	assert.InDelta(t, math.Pi/6*3000*125000, Mass(50, 3000), 1e-3)
	assert.Zero(t, Mass(0, 3000))
}

func TestAirDensity(t *testing.T) {
	assert.InDelta(t, SeaLevelDensity, AirDensity(0), 1e-12)
	assert.InDelta(t, SeaLevelDensity/math.E, AirDensity(ScaleHeight), 1e-12)
}

func TestSimulate_ChelyabinskLikeAirburst(t *testing.T) {
	state := Simulate(Input{
		DiameterM:   17,
		DensityKgM3: 3300,
		VelocityKms: 19,
		AngleDeg:    20,
		StrengthMPa: 1,
	})

	require.Equal(t, KindAirburst, state.Kind)
	require.NotNil(t, state.Airburst)
	assert.Nil(t, state.Impact)
	assert.True(t, state.IsAirburst())

	// q = 1 MPa at ~19 km/s is reached near 43 km.
	assert.InDelta(t, 43000, state.Airburst.AltitudeM, 2000)
	assert.Greater(t, state.Airburst.VelocityMs, 18000.0)
	assert.InDelta(t, Mass(17, 3300), state.Airburst.MassKg, 1e-6)
	assert.Greater(t, state.Airburst.DownrangeM, 0.0)

	q := 0.5 * AirDensity(state.Airburst.AltitudeM) * state.Airburst.VelocityMs * state.Airburst.VelocityMs
	assert.GreaterOrEqual(t, q, 1e6)
}

func TestSimulate_StrongBodyReachesGround(t *testing.T) {
	state := Simulate(Input{
		DiameterM:   200,
		DensityKgM3: 7800,
		VelocityKms: 15,
		AngleDeg:    60,
		StrengthMPa: 1000,
	})

	require.Equal(t, KindImpact, state.Kind)
	require.NotNil(t, state.Impact)
	assert.Nil(t, state.Airburst)
	assert.False(t, state.Impact.FromLastSample)

	last := state.Track[len(state.Track)-1]
	assert.Zero(t, last.HeightM)
	assert.Equal(t, state.Impact.VelocityMs, last.VelocityMs)
	assert.InDelta(t, KineticEnergy(state.Impact.MassKg, state.Impact.VelocityMs), state.Impact.KineticEnergyJ, 1)
	assert.Zero(t, state.TerminalAltitudeM())
}

func TestSimulate_TrackIsMonotonic(t *testing.T) {
	state := Simulate(Input{DiameterM: 100, DensityKgM3: 3000, VelocityKms: 20, AngleDeg: 45, StrengthMPa: 500})

	require.NotEmpty(t, state.Track)
	assert.Equal(t, StartAltitude, state.Track[0].HeightM)
	for i := 1; i < len(state.Track); i++ {
		prev, cur := state.Track[i-1], state.Track[i]
		assert.LessOrEqual(t, cur.HeightM, prev.HeightM)
		assert.GreaterOrEqual(t, cur.DownrangeM, prev.DownrangeM)
		assert.LessOrEqual(t, cur.VelocityMs, prev.VelocityMs)
		assert.InDelta(t, prev.TimeS+TimeStep, cur.TimeS, 1e-9)
		assert.Equal(t, prev.MassKg, cur.MassKg)
	}
}

func TestSimulate_ExhaustedLoopFallsBackToLastSample(t *testing.T) {
	// A grazing, slow, very strong body cannot descend 80 km in 600 steps.
	state := Simulate(Input{DiameterM: 10, DensityKgM3: 3000, VelocityKms: 1, AngleDeg: 5, StrengthMPa: 1000})

	require.Equal(t, KindImpact, state.Kind)
	require.NotNil(t, state.Impact)
	assert.True(t, state.Impact.FromLastSample)
	assert.Len(t, state.Track, MaxSteps+1)

	last := state.Track[len(state.Track)-1]
	assert.Greater(t, last.HeightM, 0.0)
	assert.Equal(t, last.VelocityMs, state.Impact.VelocityMs)
	assert.Equal(t, last.DownrangeM, state.Impact.DownrangeM)
}

func TestState_Terminal(t *testing.T) {
	s := State{Kind: KindAirburst, Airburst: &Airburst{AltitudeM: 30000, VelocityMs: 15000, MassKg: 10, DownrangeM: 5}}
	v, m := s.Terminal()
	assert.Equal(t, 15000.0, v)
	assert.Equal(t, 10.0, m)
	assert.Equal(t, 30000.0, s.TerminalAltitudeM())
	assert.Equal(t, 5.0, s.DownrangeM())

	v, m = State{}.Terminal()
	assert.Zero(t, v)
	assert.Zero(t, m)
}

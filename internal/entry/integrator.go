// Package entry integrates a body's descent through an exponential
// atmosphere and decides whether it bursts in the air or reaches the ground.
//
// Mass is held constant for the whole descent; ablation is not modeled.
package entry

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Atmosphere and stepping constants.
const (
	SeaLevelDensity = 1.225   // kg/m³
	ScaleHeight     = 8000.0  // m
	StartAltitude   = 80000.0 // m
	TimeStep        = 0.25    // s
	MaxSteps        = 600
	DragCoefficient = 1.0
)

// Input describes the body at the top of the atmosphere.
type Input struct {
	DiameterM   float64
	DensityKgM3 float64
	VelocityKms float64
	AngleDeg    float64 // entry angle measured from the horizontal
	StrengthMPa float64
}

// Sample is one integration step.
type Sample struct {
	TimeS      float64 `json:"time_s"`
	HeightM    float64 `json:"height_m"`
	VelocityMs float64 `json:"velocity_ms"`
	MassKg     float64 `json:"mass_kg"`
	DownrangeM float64 `json:"downrange_distance_m"`
}

// Kind tags the terminal state.
type Kind string

const (
	KindAirburst Kind = "airburst"
	KindImpact   Kind = "impact"
)

// Airburst is the state captured when dynamic pressure first reaches the
// body's strength above the ground.
type Airburst struct {
	AltitudeM  float64
	VelocityMs float64
	MassKg     float64
	DownrangeM float64
}

// Impact is the state at ground contact.
type Impact struct {
	VelocityMs     float64
	MassKg         float64
	KineticEnergyJ float64
	DownrangeM     float64
	FromLastSample bool // loop exhausted before reaching the ground
}

// State is the tagged result of Simulate. Exactly one of Airburst or Impact
// is non-nil, matching Kind. Track is always populated.
type State struct {
	Kind     Kind
	Airburst *Airburst
	Impact   *Impact
	Track    []Sample
}

// IsAirburst reports whether the body detonated in the air.
func (s State) IsAirburst() bool { return s.Kind == KindAirburst }

// Terminal returns the velocity and mass at the end of the descent.
func (s State) Terminal() (velocityMs, massKg float64) {
	if s.Airburst != nil {
		return s.Airburst.VelocityMs, s.Airburst.MassKg
	}
	if s.Impact != nil {
		return s.Impact.VelocityMs, s.Impact.MassKg
	}
	return 0, 0
}

// TerminalAltitudeM is the burst altitude, or 0 for ground impacts.
func (s State) TerminalAltitudeM() float64 {
	if s.Airburst != nil {
		return s.Airburst.AltitudeM
	}
	return 0
}

// DownrangeM is the horizontal distance covered from the start of the
// integration to the terminal point.
func (s State) DownrangeM() float64 {
	if s.Airburst != nil {
		return s.Airburst.DownrangeM
	}
	if s.Impact != nil {
		return s.Impact.DownrangeM
	}
	return 0
}

// Mass returns the spherical mass (π/6)·ρ·d³.
func Mass(diameterM, densityKgM3 float64) float64 {
	return math.Pi / 6 * densityKgM3 * diameterM * diameterM * diameterM
}

// KineticEnergy returns ½·m·v² in joules.
func KineticEnergy(massKg, velocityMs float64) float64 {
	return 0.5 * massKg * velocityMs * velocityMs
}

// AirDensity returns the exponential-model density at altitude h (m).
func AirDensity(h float64) float64 {
	return SeaLevelDensity * math.Exp(-h/ScaleHeight)
}

// Simulate steps the body from StartAltitude until it bursts, lands, or the
// step budget runs out.
func Simulate(in Input) State {
	mass := Mass(in.DiameterM, in.DensityKgM3)
	area := math.Pi * (in.DiameterM / 2) * (in.DiameterM / 2)
	strengthPa := in.StrengthMPa * 1e6
	angle := geo.DegToRad(in.AngleDeg)
	sinA, cosA := math.Sin(angle), math.Cos(angle)

	h := StartAltitude
	v := in.VelocityKms * 1000
	x := 0.0
	t := 0.0

	track := make([]Sample, 0, MaxSteps+1)
	track = append(track, Sample{TimeS: t, HeightM: h, VelocityMs: v, MassKg: mass, DownrangeM: x})

	for step := 0; step < MaxSteps; step++ {
		q := 0.5 * AirDensity(h) * v * v
		if q >= strengthPa && h > 0 {
			return State{
				Kind: KindAirburst,
				Airburst: &Airburst{
					AltitudeM:  h,
					VelocityMs: v,
					MassKg:     mass,
					DownrangeM: x,
				},
				Track: track,
			}
		}

		if mass > 0 {
			v = math.Max(v-DragCoefficient*q*area/mass*TimeStep, 0)
		}
		h -= v * sinA * TimeStep
		x += v * cosA * TimeStep
		t += TimeStep

		if h <= 0 {
			track = append(track, Sample{TimeS: t, HeightM: 0, VelocityMs: v, MassKg: mass, DownrangeM: x})
			return State{
				Kind: KindImpact,
				Impact: &Impact{
					VelocityMs:     v,
					MassKg:         mass,
					KineticEnergyJ: KineticEnergy(mass, v),
					DownrangeM:     x,
				},
				Track: track,
			}
		}
		track = append(track, Sample{TimeS: t, HeightM: h, VelocityMs: v, MassKg: mass, DownrangeM: x})
	}

	last := track[len(track)-1]
	return State{
		Kind: KindImpact,
		Impact: &Impact{
			VelocityMs:     last.VelocityMs,
			MassKg:         last.MassKg,
			KineticEnergyJ: KineticEnergy(last.MassKg, last.VelocityMs),
			DownrangeM:     last.DownrangeM,
			FromLastSample: true,
		},
		Track: track,
	}
}

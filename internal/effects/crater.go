package effects

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// CraterInput is the impactor state at ground contact.
type CraterInput struct {
	MassKg          float64
	VelocityMs      float64
	AngleDeg        float64
	ImpactorDensity float64
	TargetDensity   float64
}

// Crater describes the excavated crater in meters.
type Crater struct {
	TransientDiameterM float64 `json:"transient_crater_d_m"`
	FinalDiameterM     float64 `json:"final_crater_d_m"`
	DepthM             float64 `json:"crater_depth_m"`
	RimHeightM         float64 `json:"rim_height_m"`
	CentralPeakM       float64 `json:"central_peak_m"`
}

// TargetDensity picks the target material density for the crater scaling.
func TargetDensity(ocean bool, t CraterTuning) float64 {
	if ocean {
		return t.WaterDensity
	}
	return t.RockDensity
}

// ComputeCrater applies π-group scaling to estimate the transient crater and
// derives the collapsed final crater from it.
func ComputeCrater(in CraterInput, t CraterTuning) Crater {
	if in.MassKg <= 0 || in.VelocityMs <= 0 || in.ImpactorDensity <= 0 || in.TargetDensity <= 0 || in.AngleDeg <= 0 {
		return Crater{}
	}

	diameter := math.Cbrt(6 * in.MassKg / (math.Pi * in.ImpactorDensity))
	transient := t.ScalingCoefficient *
		math.Cbrt(in.ImpactorDensity/in.TargetDensity) *
		math.Pow(diameter, t.DiameterExponent) *
		math.Pow(in.VelocityMs, t.VelocityExponent) *
		math.Pow(geo.StandardGravity, t.GravityExponent) *
		math.Cbrt(math.Sin(geo.DegToRad(in.AngleDeg)))

	final := t.CollapseFactor * transient
	return Crater{
		TransientDiameterM: transient,
		FinalDiameterM:     final,
		DepthM:             final * t.DepthRatio,
		RimHeightM:         final * t.RimHeightRatio,
		CentralPeakM:       final * t.CentralPeakRatio,
	}
}

// Scale multiplies every crater dimension by f.
func (c Crater) Scale(f float64) Crater {
	return Crater{
		TransientDiameterM: c.TransientDiameterM * f,
		FinalDiameterM:     c.FinalDiameterM * f,
		DepthM:             c.DepthM * f,
		RimHeightM:         c.RimHeightM * f,
		CentralPeakM:       c.CentralPeakM * f,
	}
}

// VolumeKm3 approximates the excavated volume as a cylinder of the final
// crater's radius and depth.
func (c Crater) VolumeKm3() float64 {
	r := c.FinalDiameterM / 2
	return math.Pi * r * r * math.Max(c.DepthM, 0) / 1e9
}

package effects

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// JoulesPerMegaton is the TNT-equivalent conversion factor.
const JoulesPerMegaton = 4.184e15

// ToMegatons converts joules to megatons of TNT.
func ToMegatons(energyJ float64) float64 {
	return energyJ / JoulesPerMegaton
}

// Blast holds the overpressure damage bands in km, innermost first.
type Blast struct {
	EnergyMt             float64 `json:"-"`
	VaporizationRadiusKm float64 `json:"vaporization_radius_km"`
	SevereRadiusKm       float64 `json:"severe_blast_radius_km"`
	ModerateRadiusKm     float64 `json:"moderate_blast_radius_km"`
	WindowRadiusKm       float64 `json:"window_damage_radius_km"`
	MinorRadiusKm        float64 `json:"minor_damage_radius_km"`
	PeakOverpressurePSI  float64 `json:"peak_overpressure_psi"`
	AltitudeFactor       float64 `json:"blast_altitude_factor"`
}

// ComputeBlast scales the five blast bands with the cube root of the yield.
// Bursts above the ground shrink the vaporization, severe and moderate bands
// by a linear altitude factor; window and minor bands are unaffected.
func ComputeBlast(energyJ, burstAltitudeKm float64, t BlastTuning) Blast {
	if energyJ <= 0 {
		return Blast{}
	}

	mt := ToMegatons(energyJ)
	cube := math.Cbrt(mt)
	factor := geo.Clamp(1-t.AltitudeFalloffPerKm*math.Max(burstAltitudeKm, 0), t.MinAltitudeFactor, 1.0)

	return Blast{
		EnergyMt:             mt,
		VaporizationRadiusKm: t.Vaporization * cube * factor,
		SevereRadiusKm:       t.Severe * cube * factor,
		ModerateRadiusKm:     t.Moderate * cube * factor,
		WindowRadiusKm:       t.Window * cube,
		MinorRadiusKm:        t.Minor * cube,
		PeakOverpressurePSI:  t.PeakOverpressurePSI,
		AltitudeFactor:       factor,
	}
}

// Scale multiplies every radius by f.
func (b Blast) Scale(f float64) Blast {
	b.VaporizationRadiusKm *= f
	b.SevereRadiusKm *= f
	b.ModerateRadiusKm *= f
	b.WindowRadiusKm *= f
	b.MinorRadiusKm *= f
	return b
}

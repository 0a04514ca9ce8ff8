package effects

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Tsunami holds wave-height proxies for an ocean impact.
type Tsunami struct {
	Active      bool    `json:"-"`
	NearHeightM float64 `json:"tsunami_near_height_m"`
	FarHeightM  float64 `json:"tsunami_far_height_m"`
	RadiusKm    float64 `json:"tsunami_radius_km"`
}

// ComputeTsunami estimates near-field and far-field wave heights. Shallow
// water (at or below the minimum depth) and non-positive energy produce no
// tsunami.
func ComputeTsunami(energyMt, oceanDepthM, angleDeg float64, t TsunamiTuning) Tsunami {
	if oceanDepthM <= t.MinDepthM || energyMt <= 0 {
		return Tsunami{}
	}

	depthFactor := geo.Clamp(oceanDepthM/t.ReferenceDepthM, 0.2, 1.2)
	directionFactor := geo.Clamp(math.Cos(geo.DegToRad(angleDeg)), 0.2, 1.0)
	base := math.Sqrt(energyMt) * depthFactor * directionFactor

	return Tsunami{
		Active:      true,
		NearHeightM: t.NearCoefficient * base,
		FarHeightM:  t.FarCoefficient * base,
		RadiusKm:    t.ExtentKm,
	}
}

package effects

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Thermal is the third-degree burn footprint.
type Thermal struct {
	RadiusKm     float64 `json:"thermal_radius_km"`
	HeightFactor float64 `json:"thermal_height_factor"`
}

// ComputeThermal returns the burn radius for a burst of energyMt at
// burstHeightKm.
func ComputeThermal(energyMt, burstHeightKm float64, t ThermalTuning) Thermal {
	if energyMt <= 0 {
		return Thermal{}
	}
	factor := geo.Clamp(t.SurfaceFactor-t.FalloffPerKm*math.Max(burstHeightKm, 0), t.MinHeightFactor, t.MaxHeightFactor)
	return Thermal{
		RadiusKm:     t.Coefficient * math.Pow(energyMt, t.Exponent) * factor,
		HeightFactor: factor,
	}
}

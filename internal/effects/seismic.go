package effects

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Seismic is the ground-shaking estimate for a surface impact.
type Seismic struct {
	Magnitude float64   `json:"seismic_magnitude"`
	RadiusKm  float64   `json:"seismic_radius_km"`
	EnergyJ   float64   `json:"seismic_energy_j"`
	Epicenter geo.Point `json:"-"`
}

// ComputeSeismic couples a fixed fraction of the impact energy into the
// ground and converts it to a Richter-like magnitude.
func ComputeSeismic(energyJ float64, epicenter geo.Point, t SeismicTuning) Seismic {
	coupled := energyJ * t.CouplingFraction
	if coupled <= 0 {
		return Seismic{Epicenter: epicenter}
	}

	mag := geo.Clamp(t.MagnitudeSlope*math.Log10(coupled)+t.MagnitudeOffset, 0, t.MaxMagnitude)
	radius := 0.0
	if mag > 0 {
		radius = t.ReferenceRadius * math.Pow(10, t.RadiusGrowth*(mag-t.ReferenceMag))
	}
	return Seismic{
		Magnitude: mag,
		RadiusKm:  radius,
		EnergyJ:   coupled,
		Epicenter: epicenter,
	}
}

package effects

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Ejecta describes material thrown out of the crater.
type Ejecta struct {
	BlanketRadiusKm float64 `json:"ejecta_blanket_radius_km"`
	VolumeKm3       float64 `json:"ejecta_volume_km3"`
	VelocityKms     float64 `json:"ejecta_velocity_kms"`
}

// ComputeEjecta derives the ejecta blanket from the final crater. The volume
// treats the crater as a cylinder of the crater's radius and depth.
func ComputeEjecta(craterDiameterM, craterDepthM, energyJ, angleDeg float64, t EjectaTuning) Ejecta {
	if craterDiameterM <= 0 {
		return Ejecta{}
	}

	radiusM := craterDiameterM / 2
	blanket := radiusM * (t.BlanketFactor + math.Sin(geo.DegToRad(angleDeg))) / 1000
	volume := math.Pi * radiusM * radiusM * math.Max(craterDepthM, 0) / 1e9
	velocity := geo.Clamp(t.VelocityScale*math.Pow(math.Max(energyJ, 0), t.VelocityExponent), t.MinVelocityKms, t.MaxVelocityKms)

	return Ejecta{
		BlanketRadiusKm: blanket,
		VolumeKm3:       volume,
		VelocityKms:     velocity,
	}
}

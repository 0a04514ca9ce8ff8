package effects

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Atmospheric holds the opacity and chemistry consequences of an event.
type Atmospheric struct {
	DustMassTg        float64 `json:"dust_mass_tg"`
	OzoneDepletionPct float64 `json:"ozone_depletion_pct"`
	CoolingC          float64 `json:"surface_cooling_c"`
}

// AtmosphereModel computes atmospheric effects from the event energy, the
// burst altitude (0 for ground impacts) and the ejected volume.
type AtmosphereModel interface {
	Compute(energyMt, burstAltitudeKm, ejectaVolumeKm3 float64) Atmospheric
}

// OpacityModel is the built-in AtmosphereModel: lofted ejecta becomes dust,
// dust drives surface cooling, and shock-heated NOx scales ozone loss with
// the logarithm of energy.
type OpacityModel struct {
	Tuning AtmosphereTuning
}

// NewOpacityModel returns an OpacityModel using t.
func NewOpacityModel(t AtmosphereTuning) *OpacityModel {
	return &OpacityModel{Tuning: t}
}

// Compute implements AtmosphereModel.
func (m *OpacityModel) Compute(energyMt, burstAltitudeKm, ejectaVolumeKm3 float64) Atmospheric {
	t := m.Tuning
	if energyMt <= 0 {
		return Atmospheric{}
	}

	dust := math.Max(ejectaVolumeKm3, 0) * t.RockDensityTgKm3 * t.LoftedFraction

	ozone := 0.0
	if burstAltitudeKm >= t.MinOzoneAltitudeKm {
		ozone = geo.Clamp(t.OzoneCoefficient*math.Log10(1+energyMt/t.OzoneReferenceMt), 0, 100)
	}

	return Atmospheric{
		DustMassTg:        dust,
		OzoneDepletionPct: ozone,
		CoolingC:          geo.Clamp(t.CoolingCoefficient*math.Log10(1+dust/t.CoolingReferenceTg), 0, t.MaxCoolingC),
	}
}

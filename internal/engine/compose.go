package engine

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/effects"
	"github.com/couchcryptid/neo-impact-service/internal/entry"
	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// compose merges the calculators into one Results record. Order matters:
// blast and crater, thermal, seismic, atmosphere, ejecta, tsunami, then the
// mitigation rescale.
func (e *Engine) compose(p domain.SimulationParameters, g domain.DirectSource, state entry.State) domain.Results {
	t := e.tuning
	velocityMs, massKg := state.Terminal()
	energyJ := entry.KineticEnergy(massKg, velocityMs)

	r := domain.Results{
		MassKg:           massKg,
		EntryVelocityKms: g.VelocityKms,
		VelocityKms:      velocityMs / 1000,
		ImpactAngleDeg:   g.AngleDeg,
		EnergyJ:          energyJ,
		EnergyMt:         effects.ToMegatons(energyJ),
		BurstAltitudeKm:  state.TerminalAltitudeM() / 1000,
		DownrangeKm:      state.DownrangeM() / 1000,
		OceanImpact:      p.OceanImpact(),
		OceanDepthM:      p.OceanDepthM,
	}

	if state.IsAirburst() {
		r.Mode = domain.ModeAirburst
		r.Blast = effects.ComputeBlast(energyJ, r.BurstAltitudeKm, t.Blast)
	} else {
		r.Mode = domain.ModeGround
		r.Crater = effects.ComputeCrater(effects.CraterInput{
			MassKg:          massKg,
			VelocityMs:      velocityMs,
			AngleDeg:        g.AngleDeg,
			ImpactorDensity: p.DensityKgM3,
			TargetDensity:   effects.TargetDensity(r.OceanImpact, t.Crater),
		}, t.Crater)
		r.Blast = effects.ComputeBlast(energyJ, 0, t.Blast)
	}
	ground := r.Mode == domain.ModeGround

	r.Thermal = effects.ComputeThermal(r.EnergyMt, r.BurstAltitudeKm, t.Thermal)
	if ground {
		r.Seismic = effects.ComputeSeismic(energyJ, geo.Point{Lat: g.Lat, Lng: g.Lng}, t.Seismic)
	}
	r.Atmospheric = e.atmosphere.Compute(r.EnergyMt, r.BurstAltitudeKm, r.Crater.VolumeKm3())
	if ground && r.Crater.FinalDiameterM > 0 {
		r.Ejecta = effects.ComputeEjecta(r.Crater.FinalDiameterM, r.Crater.DepthM, energyJ, g.AngleDeg, t.Ejecta)
	}
	if r.OceanImpact {
		r.Tsunami = effects.ComputeTsunami(r.EnergyMt, p.OceanDepthM, g.AngleDeg, t.Tsunami)
	}

	if kind := p.MitigationType; kind != "" && kind != effects.MitigationNone {
		m := effects.ComputeMitigation(kind, p.MitigationParams, energyJ, t.Mitigation)
		if m.Warning != "" {
			e.logger.Warn("mitigation ignored", "type", kind, "warning", m.Warning)
		}
		if m.Applied {
			rescale(&r, m.ScaleFactor())
		}
		r.Mitigation = &m
	}
	return r
}

// rescale shrinks every radius and crater dimension by f.
func rescale(r *domain.Results, f float64) {
	r.Crater = r.Crater.Scale(f)
	r.Blast = r.Blast.Scale(f)
	r.Thermal.RadiusKm *= f
	r.Seismic.RadiusKm *= f
	r.Ejecta.BlanketRadiusKm *= f
	r.Tsunami.RadiusKm *= f
}

type ringSpec struct {
	label    string
	radiusKm float64
	color    string
	kind     domain.RingType
}

// buildRings lists every non-empty effect band, innermost first.
func buildRings(r domain.Results) []domain.DamageRing {
	specs := []ringSpec{
		{"Crater rim", r.Crater.FinalDiameterM / 2000, "#4a2c1a", domain.RingCrater},
		{"Vaporization", r.Blast.VaporizationRadiusKm, "#ffffff", domain.RingBlast},
		{"Severe blast damage", r.Blast.SevereRadiusKm, "#b3001b", domain.RingBlast},
		{"Moderate blast damage", r.Blast.ModerateRadiusKm, "#e4572e", domain.RingBlast},
		{"Window breakage", r.Blast.WindowRadiusKm, "#f3a712", domain.RingBlast},
		{"Minor damage", r.Blast.MinorRadiusKm, "#f6e27f", domain.RingBlast},
		{"Third-degree burns", r.Thermal.RadiusKm, "#ff7b00", domain.RingThermal},
		{"Seismic damage", r.Seismic.RadiusKm, "#7d5ba6", domain.RingSeismic},
		{"Ejecta blanket", r.Ejecta.BlanketRadiusKm, "#8d6e63", domain.RingEjecta},
	}
	if r.Tsunami.Active {
		specs = append(specs, ringSpec{"Tsunami inundation", r.Tsunami.RadiusKm, "#1e88e5", domain.RingTsunami})
	}

	rings := make([]domain.DamageRing, 0, len(specs))
	for _, s := range specs {
		if s.radiusKm <= 0 {
			continue
		}
		rings = append(rings, domain.DamageRing{Label: s.label, RadiusKm: s.radiusKm, Color: s.color, Type: s.kind})
	}
	slices.SortStableFunc(rings, func(a, b domain.DamageRing) int {
		return cmp.Compare(a.RadiusKm, b.RadiusKm)
	})
	return rings
}

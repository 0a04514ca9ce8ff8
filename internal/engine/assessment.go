package engine

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
)

// Assessment constants.
const (
	AUKm              = 149_597_870.7
	DetectionRangeAU  = 0.05
	EvacuationFactor  = 1.5
	RegionalClimateMt = 100.0
	GlobalCoolingMt   = 1_000.0
	MassExtinctionMt  = 10_000.0
	OceanWideTsunamiM = 1.0
	OzoneThresholdPct = 5.0
	CoolingThresholdC = 1.0
)

// assess derives the damage assessment. The threat level follows the
// unmitigated energy; the affected areas follow the (possibly rescaled)
// radii.
func assess(r domain.Results, approachKms float64) domain.DamageAssessment {
	warning := 0.0
	if approachKms > 0 {
		warning = DetectionRangeAU * AUKm / approachKms / 3600
	}

	return domain.DamageAssessment{
		ThreatLevel:           domain.ClassifyEnergy(r.EnergyMt),
		EnergyMt:              r.EnergyMt,
		TotalAffectedAreaKm2:  math.Pi * r.Blast.MinorRadiusKm * r.Blast.MinorRadiusKm,
		SevereAffectedAreaKm2: math.Pi * r.Blast.SevereRadiusKm * r.Blast.SevereRadiusKm,
		EvacuationRadiusKm:    r.Blast.SevereRadiusKm * EvacuationFactor,
		WarningTimeHours:      warning,
		GlobalEffects:         globalEffects(r),
	}
}

func globalEffects(r domain.Results) []string {
	out := []string{}
	if r.EnergyMt >= RegionalClimateMt {
		out = append(out, "Regional climate disruption")
	}
	if r.EnergyMt >= GlobalCoolingMt {
		out = append(out, "Global cooling")
	}
	if r.EnergyMt >= MassExtinctionMt {
		out = append(out, "Mass extinction risk")
	}
	if r.Tsunami.Active {
		if r.Tsunami.FarHeightM >= OceanWideTsunamiM {
			out = append(out, "Ocean-wide tsunami")
		} else {
			out = append(out, "Coastal tsunami")
		}
	}
	if r.OzoneDepletionPct >= OzoneThresholdPct {
		out = append(out, "Ozone layer depletion")
	}
	if r.CoolingC >= CoolingThresholdC {
		out = append(out, "Measurable surface cooling")
	}
	return out
}

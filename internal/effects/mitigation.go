package effects

import (
	"fmt"
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// MitigationType names a planetary-defense strategy.
type MitigationType string

const (
	MitigationNone       MitigationType = "none"
	MitigationDeflection MitigationType = "deflection"
	MitigationAblation   MitigationType = "ablation"
	MitigationNuclear    MitigationType = "nuclear"
)

// MitigationParams are the strategy knobs. A nil Efficiency means the
// tuned default; an explicit 0 is a strategy that delivers nothing.
type MitigationParams struct {
	LeadTimeDays float64  `json:"lead_time_days,omitempty" yaml:"lead_time_days"`
	DeltaVMs     float64  `json:"delta_v_ms,omitempty" yaml:"delta_v_ms"`
	YieldMt      float64  `json:"yield_mt,omitempty" yaml:"yield_mt"`
	Efficiency   *float64 `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
}

// EfficiencyOr returns the explicit efficiency, or def when unset.
func (p MitigationParams) EfficiencyOr(def float64) float64 {
	if p.Efficiency == nil {
		return def
	}
	return *p.Efficiency
}

// Mitigation is the outcome of a defense attempt.
type Mitigation struct {
	Type               MitigationType `json:"mitigation_type"`
	SuccessProbability float64        `json:"mitigation_success_probability"`
	EnergyReduction    float64        `json:"mitigation_energy_reduction"`
	ResidualEnergyJ    float64        `json:"mitigation_residual_energy_j"`
	Applied            bool           `json:"mitigation_applied"`
	Warning            string         `json:"mitigation_warning,omitempty"`
}

// ComputeMitigation scores a strategy with its heuristic and reports the
// energy left once the expected reduction is taken off energyJ.
func ComputeMitigation(kind MitigationType, p MitigationParams, energyJ float64, t MitigationTuning) Mitigation {
	eff := p.EfficiencyOr(t.DefaultEfficiency)

	m := Mitigation{Type: kind}
	switch kind {
	case MitigationNone, "":
		m.Type = MitigationNone
	case MitigationDeflection:
		score := (p.LeadTimeDays / t.DeflectionLeadDays) * p.DeltaVMs
		m.SuccessProbability = geo.Clamp(0.1+0.08*score, 0, 0.95)
		m.EnergyReduction = geo.Clamp(0.02*score*eff, 0, 0.6)
	case MitigationAblation:
		score := (p.LeadTimeDays / t.AblationLeadDays) * eff
		m.SuccessProbability = geo.Clamp(0.05+0.07*score, 0, 0.8)
		m.EnergyReduction = geo.Clamp(0.3*score, 0, 0.5)
	case MitigationNuclear:
		m.SuccessProbability = geo.Clamp(0.5+0.05*math.Log10(p.YieldMt+1), 0.2, 0.98)
		m.EnergyReduction = geo.Clamp(0.15*math.Log10(p.YieldMt*eff+1), 0, 0.75)
	default:
		m.Warning = fmt.Sprintf("unknown mitigation type %q ignored", kind)
	}

	m.Applied = m.SuccessProbability > t.FavorableProbability && m.EnergyReduction > 0
	m.ResidualEnergyJ = energyJ
	if m.Applied {
		m.ResidualEnergyJ = energyJ * (1 - m.EnergyReduction)
	}
	return m
}

// ScaleFactor is the volumetric radius multiplier (1 − reduction)^(1/3), or
// 1 when the attempt is not applied.
func (m Mitigation) ScaleFactor() float64 {
	if !m.Applied {
		return 1
	}
	return math.Cbrt(1 - m.EnergyReduction)
}

package effects

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning gathers every calculator's constants in one place. The defaults are
// tuned for visual plausibility in interactive what-if exploration, not for
// engineering-grade accuracy; override them with LoadTuning when a scenario
// calls for different scaling.
type Tuning struct {
	Crater     CraterTuning     `yaml:"crater"`
	Blast      BlastTuning      `yaml:"blast"`
	Thermal    ThermalTuning    `yaml:"thermal"`
	Seismic    SeismicTuning    `yaml:"seismic"`
	Tsunami    TsunamiTuning    `yaml:"tsunami"`
	Ejecta     EjectaTuning     `yaml:"ejecta"`
	Mitigation MitigationTuning `yaml:"mitigation"`
	Atmosphere AtmosphereTuning `yaml:"atmosphere"`
}

// CraterTuning holds the π-scaling constants and the morphology ratios.
type CraterTuning struct {
	ScalingCoefficient float64 `yaml:"scaling_coefficient"`
	DiameterExponent   float64 `yaml:"diameter_exponent"`
	VelocityExponent   float64 `yaml:"velocity_exponent"`
	GravityExponent    float64 `yaml:"gravity_exponent"`
	CollapseFactor     float64 `yaml:"collapse_factor"`
	DepthRatio         float64 `yaml:"depth_ratio"`
	RimHeightRatio     float64 `yaml:"rim_height_ratio"`
	CentralPeakRatio   float64 `yaml:"central_peak_ratio"`
	RockDensity        float64 `yaml:"rock_density"`
	WaterDensity       float64 `yaml:"water_density"`
}

// BlastTuning holds the cube-root scaling coefficients in km/Mt^(1/3).
type BlastTuning struct {
	Vaporization         float64 `yaml:"vaporization"`
	Severe               float64 `yaml:"severe"`
	Moderate             float64 `yaml:"moderate"`
	Window               float64 `yaml:"window"`
	Minor                float64 `yaml:"minor"`
	AltitudeFalloffPerKm float64 `yaml:"altitude_falloff_per_km"`
	MinAltitudeFactor    float64 `yaml:"min_altitude_factor"`
	PeakOverpressurePSI  float64 `yaml:"peak_overpressure_psi"`
}

// ThermalTuning scales the third-degree burn radius.
type ThermalTuning struct {
	Coefficient     float64 `yaml:"coefficient"`
	Exponent        float64 `yaml:"exponent"`
	SurfaceFactor   float64 `yaml:"surface_factor"`
	FalloffPerKm    float64 `yaml:"falloff_per_km"`
	MinHeightFactor float64 `yaml:"min_height_factor"`
	MaxHeightFactor float64 `yaml:"max_height_factor"`
}

// SeismicTuning holds the energy-magnitude relation and damage radius growth.
type SeismicTuning struct {
	CouplingFraction float64 `yaml:"coupling_fraction"`
	MagnitudeSlope   float64 `yaml:"magnitude_slope"`
	MagnitudeOffset  float64 `yaml:"magnitude_offset"`
	MaxMagnitude     float64 `yaml:"max_magnitude"`
	ReferenceRadius  float64 `yaml:"reference_radius_km"`
	ReferenceMag     float64 `yaml:"reference_magnitude"`
	RadiusGrowth     float64 `yaml:"radius_growth_per_magnitude"`
}

// TsunamiTuning holds wave-height coefficients in m per sqrt(Mt).
type TsunamiTuning struct {
	MinDepthM       float64 `yaml:"min_depth_m"`
	NearCoefficient float64 `yaml:"near_coefficient"`
	FarCoefficient  float64 `yaml:"far_coefficient"`
	ReferenceDepthM float64 `yaml:"reference_depth_m"`
	NearFieldKm     float64 `yaml:"near_field_km"`
	FarFieldKm      float64 `yaml:"far_field_km"`
	ExtentKm        float64 `yaml:"extent_km"`
}

// EjectaTuning shapes the ejecta blanket and launch velocity.
type EjectaTuning struct {
	BlanketFactor    float64 `yaml:"blanket_factor"`
	VelocityScale    float64 `yaml:"velocity_scale"`
	VelocityExponent float64 `yaml:"velocity_exponent"`
	MinVelocityKms   float64 `yaml:"min_velocity_kms"`
	MaxVelocityKms   float64 `yaml:"max_velocity_kms"`
}

// MitigationTuning holds the per-strategy heuristic weights.
type MitigationTuning struct {
	DeflectionLeadDays   float64 `yaml:"deflection_lead_days"`
	AblationLeadDays     float64 `yaml:"ablation_lead_days"`
	DefaultEfficiency    float64 `yaml:"default_efficiency"`
	FavorableProbability float64 `yaml:"favorable_probability"`
}

// AtmosphereTuning drives the built-in opacity model.
type AtmosphereTuning struct {
	LoftedFraction     float64 `yaml:"lofted_fraction"`
	RockDensityTgKm3   float64 `yaml:"rock_density_tg_per_km3"`
	OzoneCoefficient   float64 `yaml:"ozone_coefficient"`
	OzoneReferenceMt   float64 `yaml:"ozone_reference_mt"`
	MinOzoneAltitudeKm float64 `yaml:"min_ozone_altitude_km"`
	CoolingCoefficient float64 `yaml:"cooling_coefficient"`
	CoolingReferenceTg float64 `yaml:"cooling_reference_tg"`
	MaxCoolingC        float64 `yaml:"max_cooling_c"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		Crater: CraterTuning{
			ScalingCoefficient: 1.161,
			DiameterExponent:   0.78,
			VelocityExponent:   0.44,
			GravityExponent:    -0.22,
			CollapseFactor:     1.3,
			DepthRatio:         0.2,
			RimHeightRatio:     0.04,
			CentralPeakRatio:   0.02,
			RockDensity:        2650,
			WaterDensity:       1030,
		},
		Blast: BlastTuning{
			Vaporization:         0.3,
			Severe:               1.1,
			Moderate:             2.2,
			Window:               4.4,
			Minor:                8.0,
			AltitudeFalloffPerKm: 0.01,
			MinAltitudeFactor:    0.5,
			PeakOverpressurePSI:  20,
		},
		Thermal: ThermalTuning{
			Coefficient:     10,
			Exponent:        0.4,
			SurfaceFactor:   1.2,
			FalloffPerKm:    0.015,
			MinHeightFactor: 0.6,
			MaxHeightFactor: 1.2,
		},
		Seismic: SeismicTuning{
			CouplingFraction: 0.5,
			MagnitudeSlope:   2.0 / 3.0,
			MagnitudeOffset:  -3.2,
			MaxMagnitude:     9.5,
			ReferenceRadius:  10,
			ReferenceMag:     5,
			RadiusGrowth:     0.375,
		},
		Tsunami: TsunamiTuning{
			MinDepthM:       50,
			NearCoefficient: 5.0,
			FarCoefficient:  0.5,
			ReferenceDepthM: 4000,
			NearFieldKm:     100,
			FarFieldKm:      1000,
			ExtentKm:        500,
		},
		Ejecta: EjectaTuning{
			BlanketFactor:    2.5,
			VelocityScale:    0.1,
			VelocityExponent: 0.05,
			MinVelocityKms:   0.1,
			MaxVelocityKms:   2.5,
		},
		Mitigation: MitigationTuning{
			DeflectionLeadDays:   30,
			AblationLeadDays:     60,
			DefaultEfficiency:    1.0,
			FavorableProbability: 0.5,
		},
		Atmosphere: AtmosphereTuning{
			LoftedFraction:     0.01,
			RockDensityTgKm3:   2650,
			OzoneCoefficient:   10,
			OzoneReferenceMt:   1000,
			MinOzoneAltitudeKm: 0,
			CoolingCoefficient: 0.5,
			CoolingReferenceTg: 10,
			MaxCoolingC:        15,
		},
	}
}

// LoadTuning overlays the YAML file at path on DefaultTuning. Keys absent
// from the file keep their default values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning file: %w", err)
	}
	return t, nil
}

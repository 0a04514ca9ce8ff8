package domain

import (
	"math"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/effects"
)

// Accepted ranges for request fields.
const (
	MinDiameterM    = 1.0
	MaxDiameterM    = 100_000.0
	MinDensityKgM3  = 100.0
	MaxDensityKgM3  = 10_000.0
	MinVelocityKms  = 1.0
	MaxVelocityKms  = 100.0
	MinAngleDeg     = 5.0
	MaxAngleDeg     = 90.0
	MaxStrengthMPa  = 1_000.0
	MaxOceanDepthM  = 11_000.0
	DefaultStrength = 1.0
)

// OrbitalElements are the Keplerian elements handed to the trajectory
// resolver. Angles are in degrees.
type OrbitalElements struct {
	Eccentricity     float64   `json:"eccentricity" yaml:"eccentricity"`
	SemiMajorAxisAU  float64   `json:"semi_major_axis_au" yaml:"semi_major_axis_au"`
	InclinationDeg   float64   `json:"inclination_deg" yaml:"inclination_deg"`
	AscendingNodeDeg float64   `json:"ascending_node_deg" yaml:"ascending_node_deg"`
	ArgPerihelionDeg float64   `json:"arg_perihelion_deg" yaml:"arg_perihelion_deg"`
	MeanAnomalyDeg   float64   `json:"mean_anomaly_deg" yaml:"mean_anomaly_deg"`
	Epoch            time.Time `json:"epoch" yaml:"epoch"`
}

// SimulationParameters is one simulation request. Pointer fields are
// optional; which of them are required depends on whether OrbitalElements
// is set.
type SimulationParameters struct {
	DiameterM   float64 `json:"diameter_m" yaml:"diameter_m"`
	DensityKgM3 float64 `json:"density_kg_m3" yaml:"density_kg_m3"`

	VelocityKms    *float64 `json:"velocity_kms,omitempty" yaml:"velocity_kms,omitempty"`
	ImpactAngleDeg *float64 `json:"impact_angle_deg,omitempty" yaml:"impact_angle_deg,omitempty"`
	AzimuthDeg     *float64 `json:"azimuth_deg,omitempty" yaml:"azimuth_deg,omitempty"`
	Lat            *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`

	// Location is a place name forward-geocoded into Lat/Lng when the
	// coordinates are absent.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	OrbitalElements *OrbitalElements `json:"orbital_elements,omitempty" yaml:"orbital_elements,omitempty"`
	EncounterTime   *time.Time       `json:"encounter_time,omitempty" yaml:"encounter_time,omitempty"`

	StrengthMPa *float64 `json:"strength_mpa,omitempty" yaml:"strength_mpa,omitempty"`
	OceanDepthM float64  `json:"ocean_depth_m,omitempty" yaml:"ocean_depth_m,omitempty"`

	MitigationType   effects.MitigationType   `json:"mitigation_type,omitempty" yaml:"mitigation_type,omitempty"`
	MitigationParams effects.MitigationParams `json:"mitigation_params,omitempty" yaml:"mitigation_params,omitempty"`
}

// Source is the resolved origin of the entry geometry: either a
// DirectSource or an OrbitalSource.
type Source interface {
	sourceKind() string
}

// DirectSource carries a caller-supplied entry geometry.
type DirectSource struct {
	Lat         float64
	Lng         float64
	VelocityKms float64
	AngleDeg    float64
	AzimuthDeg  float64
}

func (DirectSource) sourceKind() string { return "direct" }

// OrbitalSource defers the entry geometry to a TrajectoryResolver.
type OrbitalSource struct {
	Elements      OrbitalElements
	EncounterTime time.Time
}

func (OrbitalSource) sourceKind() string { return "orbital" }

// SourceKind returns "direct" or "orbital".
func SourceKind(s Source) string {
	if s == nil {
		return ""
	}
	return s.sourceKind()
}

// Strength returns the material strength in MPa, defaulting to 1.
func (p SimulationParameters) Strength() float64 {
	if p.StrengthMPa == nil {
		return DefaultStrength
	}
	return *p.StrengthMPa
}

// OceanImpact reports whether the target is water.
func (p SimulationParameters) OceanImpact() bool {
	return p.OceanDepthM > 0
}

// Validate checks every field range and returns the tagged source. The
// returned error is always a *ValidationError.
func (p SimulationParameters) Validate() (Source, error) {
	if err := checkRange("diameter_m", p.DiameterM, MinDiameterM, MaxDiameterM); err != nil {
		return nil, err
	}
	if err := checkRange("density_kg_m3", p.DensityKgM3, MinDensityKgM3, MaxDensityKgM3); err != nil {
		return nil, err
	}
	if p.StrengthMPa != nil {
		s := *p.StrengthMPa
		if !finite(s) || s <= 0 || s > MaxStrengthMPa {
			return nil, &ValidationError{Field: "strength_mpa", Reason: "must be in (0, 1000]"}
		}
	}
	if err := checkRange("ocean_depth_m", p.OceanDepthM, 0, MaxOceanDepthM); err != nil {
		return nil, err
	}
	if err := validateMitigation(p.MitigationParams); err != nil {
		return nil, err
	}

	if p.OrbitalElements != nil {
		return p.orbitalSource()
	}
	return p.directSource()
}

func (p SimulationParameters) orbitalSource() (Source, error) {
	el := *p.OrbitalElements
	if p.EncounterTime == nil || p.EncounterTime.IsZero() {
		return nil, &ValidationError{Field: "encounter_time", Reason: "required with orbital_elements"}
	}
	if !finite(el.Eccentricity) || el.Eccentricity < 0 {
		return nil, &ValidationError{Field: "orbital_elements.eccentricity", Reason: "must be >= 0"}
	}
	if !finite(el.SemiMajorAxisAU) || el.SemiMajorAxisAU == 0 {
		return nil, &ValidationError{Field: "orbital_elements.semi_major_axis_au", Reason: "must be non-zero"}
	}
	if err := checkRange("orbital_elements.inclination_deg", el.InclinationDeg, 0, 180); err != nil {
		return nil, err
	}
	for _, f := range []namedValue{
		{"orbital_elements.ascending_node_deg", el.AscendingNodeDeg},
		{"orbital_elements.arg_perihelion_deg", el.ArgPerihelionDeg},
		{"orbital_elements.mean_anomaly_deg", el.MeanAnomalyDeg},
	} {
		if !finite(f.value) {
			return nil, &ValidationError{Field: f.field, Reason: "must be a finite number"}
		}
	}
	return OrbitalSource{Elements: el, EncounterTime: p.EncounterTime.UTC()}, nil
}

func (p SimulationParameters) directSource() (Source, error) {
	switch {
	case p.VelocityKms == nil:
		return nil, missing("velocity_kms")
	case p.ImpactAngleDeg == nil:
		return nil, missing("impact_angle_deg")
	case p.Lat == nil:
		return nil, missing("lat")
	case p.Lng == nil:
		return nil, missing("lng")
	}

	src := DirectSource{
		Lat:         *p.Lat,
		Lng:         *p.Lng,
		VelocityKms: *p.VelocityKms,
		AngleDeg:    *p.ImpactAngleDeg,
	}
	if p.AzimuthDeg != nil {
		src.AzimuthDeg = *p.AzimuthDeg
	}
	if err := validateGeometry(src.VelocityKms, src.AngleDeg, src.AzimuthDeg, src.Lat, src.Lng); err != nil {
		return nil, err
	}
	return src, nil
}

// validateGeometry checks an entry geometry, whether caller-supplied or
// resolved from orbital elements.
func validateGeometry(velocityKms, angleDeg, azimuthDeg, lat, lng float64) *ValidationError {
	if err := checkRange("velocity_kms", velocityKms, MinVelocityKms, MaxVelocityKms); err != nil {
		return err
	}
	if err := checkRange("impact_angle_deg", angleDeg, MinAngleDeg, MaxAngleDeg); err != nil {
		return err
	}
	if err := checkRange("azimuth_deg", azimuthDeg, 0, 360); err != nil {
		return err
	}
	if err := checkRange("lat", lat, -90, 90); err != nil {
		return err
	}
	return checkRange("lng", lng, -180, 180)
}

func validateMitigation(m effects.MitigationParams) *ValidationError {
	for _, f := range []namedValue{
		{"mitigation_params.lead_time_days", m.LeadTimeDays},
		{"mitigation_params.delta_v_ms", m.DeltaVMs},
		{"mitigation_params.yield_mt", m.YieldMt},
	} {
		if !finite(f.value) || f.value < 0 {
			return &ValidationError{Field: f.field, Reason: "must be a non-negative number"}
		}
	}
	if m.Efficiency != nil {
		return checkRange("mitigation_params.efficiency", *m.Efficiency, 0, 1)
	}
	return nil
}

type namedValue struct {
	field string
	value float64
}

func checkRange(field string, v, lo, hi float64) *ValidationError {
	if !finite(v) || v < lo || v > hi {
		return outOfRange(field, v, lo, hi)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

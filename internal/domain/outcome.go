package domain

import (
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/effects"
	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Version is echoed in every outcome's metadata.
const Version = "1.4.0"

// Mode distinguishes an atmospheric detonation from a ground strike.
type Mode string

const (
	ModeAirburst Mode = "airburst"
	ModeGround   Mode = "ground"
)

// ThreatLevel buckets an impact by energy or a near miss by distance.
type ThreatLevel string

const (
	ThreatMinimal     ThreatLevel = "MINIMAL"
	ThreatMinor       ThreatLevel = "MINOR"
	ThreatLocal       ThreatLevel = "LOCAL"
	ThreatRegional    ThreatLevel = "REGIONAL"
	ThreatContinental ThreatLevel = "CONTINENTAL"
	ThreatExtinction  ThreatLevel = "EXTINCTION"

	ApproachHigh       ThreatLevel = "HIGH"
	ApproachModerate   ThreatLevel = "MODERATE"
	ApproachLow        ThreatLevel = "LOW"
	ApproachNegligible ThreatLevel = "NEGLIGIBLE"
)

// Distances used to bucket near misses.
const (
	EarthRadiusKm   = geo.EarthRadiusKm
	LunarDistanceKm = 384_400.0
)

// ClassifyEnergy buckets an energy in megatons of TNT.
func ClassifyEnergy(energyMt float64) ThreatLevel {
	switch {
	case energyMt < 1:
		return ThreatMinimal
	case energyMt < 10:
		return ThreatMinor
	case energyMt < 100:
		return ThreatLocal
	case energyMt < 1_000:
		return ThreatRegional
	case energyMt < 10_000:
		return ThreatContinental
	default:
		return ThreatExtinction
	}
}

// ClassifyMissDistance buckets a closest-approach distance.
func ClassifyMissDistance(missKm float64) ThreatLevel {
	switch {
	case missKm < 10*EarthRadiusKm:
		return ApproachHigh
	case missKm < LunarDistanceKm:
		return ApproachModerate
	case missKm < 10*LunarDistanceKm:
		return ApproachLow
	default:
		return ApproachNegligible
	}
}

// Results is the flat record of physical quantities for one impact. Each
// embedded calculator result is written by exactly one stage.
type Results struct {
	Mode             Mode    `json:"mode"`
	MassKg           float64 `json:"mass_kg"`
	EntryVelocityKms float64 `json:"entry_velocity_kms"`
	VelocityKms      float64 `json:"impact_velocity_kms"`
	ImpactAngleDeg   float64 `json:"impact_angle_deg"`
	EnergyJ          float64 `json:"energy_j"`
	EnergyMt         float64 `json:"energy_megatons_tnt"`
	BurstAltitudeKm  float64 `json:"burst_altitude_km"`
	DownrangeKm      float64 `json:"downrange_distance_km"`
	OceanImpact      bool    `json:"ocean_impact"`
	OceanDepthM      float64 `json:"ocean_depth_m"`

	effects.Crater
	effects.Blast
	effects.Thermal
	effects.Seismic
	effects.Atmospheric
	effects.Ejecta
	effects.Tsunami
	*effects.Mitigation
}

// RingType groups damage rings by the effect that produced them.
type RingType string

const (
	RingBlast   RingType = "blast"
	RingThermal RingType = "thermal"
	RingSeismic RingType = "seismic"
	RingEjecta  RingType = "ejecta"
	RingTsunami RingType = "tsunami"
	RingCrater  RingType = "crater"
)

// DamageRing is one band of effect around ground zero.
type DamageRing struct {
	Label    string   `json:"label"`
	RadiusKm float64  `json:"radius_km"`
	Color    string   `json:"color"`
	Type     RingType `json:"type"`
}

// TrackPoint is one entry integrator sample placed on the globe.
type TrackPoint struct {
	TimeS      float64 `json:"time_s"`
	HeightM    float64 `json:"height_m"`
	VelocityMs float64 `json:"velocity_ms"`
	MassKg     float64 `json:"mass_kg"`
	DownrangeM float64 `json:"downrange_distance_m"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// Phase labels a timeline entry.
type Phase string

const (
	PhaseDescent Phase = "descent"
	PhaseImpact  Phase = "impact"
	PhaseAfter   Phase = "propagation"
)

// TimelineEffects are the radii visible at one instant.
type TimelineEffects struct {
	Phase             Phase   `json:"phase"`
	ShockwaveRadiusKm float64 `json:"shockwave_radius_km"`
	ThermalRadiusKm   float64 `json:"thermal_radius_km"`
	SeismicRadiusKm   float64 `json:"seismic_radius_km"`
}

// TimelineEntry is one animation frame. Negative times precede the impact.
type TimelineEntry struct {
	TimeToImpactS float64         `json:"time_to_impact_s"`
	AltitudeKm    float64         `json:"altitude_km"`
	VelocityKms   float64         `json:"velocity_kms"`
	Position      geo.Point       `json:"position"`
	Effects       TimelineEffects `json:"effects"`
}

// DamageAssessment summarizes the human-scale consequences.
type DamageAssessment struct {
	ThreatLevel           ThreatLevel `json:"threat_level"`
	EnergyMt              float64     `json:"energy_megatons_tnt"`
	TotalAffectedAreaKm2  float64     `json:"total_affected_area_km2"`
	SevereAffectedAreaKm2 float64     `json:"severe_affected_area_km2"`
	EvacuationRadiusKm    float64     `json:"evacuation_radius_km"`
	WarningTimeHours      float64     `json:"warning_time_hours"`
	GlobalEffects         []string    `json:"global_effects"`
}

// DebrisPoint is one sample of a ballistic ejecta path.
type DebrisPoint struct {
	TimeS      float64   `json:"time_s"`
	Position   geo.Point `json:"position"`
	AltitudeKm float64   `json:"altitude_km"`
}

// ShockwaveSample is the blast front at one instant.
type ShockwaveSample struct {
	TimeS           float64 `json:"time_s"`
	RadiusKm        float64 `json:"radius_km"`
	OverpressurePsi float64 `json:"overpressure_psi"`
}

// ProfilePoint is one point of the crater cross-section, relative to the
// pre-impact surface.
type ProfilePoint struct {
	DistanceM  float64 `json:"distance_m"`
	ElevationM float64 `json:"elevation_m"`
}

// Visualization is derived geometry for renderers.
type Visualization struct {
	GroundZero    geo.Point         `json:"ground_zero"`
	EntryPoint    geo.Point         `json:"entry_point"`
	DebrisPaths   [][]DebrisPoint   `json:"debris_paths"`
	Shockwave     []ShockwaveSample `json:"shockwave"`
	CraterProfile []ProfilePoint    `json:"crater_profile"`
}

// ImpactOutcome is the successful shape for an entry that reaches the
// atmosphere.
type ImpactOutcome struct {
	Results       Results          `json:"results"`
	Rings         []DamageRing     `json:"rings"`
	EntryTrack    []TrackPoint     `json:"entry_track"`
	Timeline      []TimelineEntry  `json:"timeline"`
	Assessment    DamageAssessment `json:"damage_assessment"`
	Visualization Visualization    `json:"visualization"`
}

// FlybyPoint is one hourly sample around closest approach.
type FlybyPoint struct {
	HoursFromClosest float64 `json:"hours_from_closest"`
	Position         Vec3    `json:"position_km"`
	DistanceKm       float64 `json:"distance_km"`
}

// NearMissOutcome is the successful shape for a trajectory that misses.
type NearMissOutcome struct {
	NearMiss            bool         `json:"near_miss"`
	MissDistanceKm      float64      `json:"miss_distance_km"`
	MissDistanceEarthR  float64      `json:"miss_distance_earth_radii"`
	MissDistanceLunar   float64      `json:"miss_distance_lunar"`
	RelativeVelocityKms float64      `json:"relative_velocity_kms"`
	ThreatLevel         ThreatLevel  `json:"threat_level"`
	PotentialEnergyJ    float64      `json:"potential_energy_j"`
	PotentialEnergyMt   float64      `json:"potential_energy_megatons_tnt"`
	EncounterTime       time.Time    `json:"encounter_time"`
	FlybyTrajectory     []FlybyPoint `json:"flyby_trajectory"`
}

// Metadata identifies a run.
type Metadata struct {
	Version    string               `json:"version"`
	RunID      string               `json:"run_id"`
	Source     string               `json:"source"`
	Timestamp  time.Time            `json:"timestamp"`
	Parameters SimulationParameters `json:"parameters"`
}

// Outcome is the result of one run. Exactly one of ImpactOutcome and
// NearMissOutcome is set when OK; neither, nor Metadata, on failure.
type Outcome struct {
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`

	*ImpactOutcome
	*NearMissOutcome

	Metadata *Metadata `json:"metadata,omitempty"`
}

// Failure builds the failure outcome for err.
func Failure(err error) Outcome {
	return Outcome{OK: false, Error: err.Error(), ErrorKind: KindOf(err)}
}

// Kind labels the outcome for metrics and message headers.
func (o Outcome) Kind() string {
	switch {
	case !o.OK:
		return "error"
	case o.NearMissOutcome != nil:
		return "near_miss"
	default:
		return "impact"
	}
}

// Threat returns the outcome's threat level, or "" on failure.
func (o Outcome) Threat() ThreatLevel {
	switch {
	case o.ImpactOutcome != nil:
		return o.Assessment.ThreatLevel
	case o.NearMissOutcome != nil:
		return o.NearMissOutcome.ThreatLevel
	default:
		return ""
	}
}

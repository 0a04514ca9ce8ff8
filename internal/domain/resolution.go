package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Vec3 is a Cartesian vector in an Earth-centred frame.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// TrajectoryResolution is the verdict of a TrajectoryResolver. When Impact is
// true the geometry fields are set; otherwise MissDistanceKm and the state
// vectors at closest approach are.
type TrajectoryResolution struct {
	Impact         bool      `json:"impact"`
	Lat            float64   `json:"lat,omitempty"`
	Lng            float64   `json:"lng,omitempty"`
	VelocityKms    float64   `json:"velocity_kms"`
	ImpactAngleDeg float64   `json:"impact_angle_deg,omitempty"`
	AzimuthDeg     float64   `json:"azimuth_deg,omitempty"`
	MissDistanceKm float64   `json:"miss_distance_km,omitempty"`
	EncounterTime  time.Time `json:"encounter_time"`
	PositionKm     *Vec3     `json:"position_km,omitempty"`
	VelocityVecKms *Vec3     `json:"velocity_vec_kms,omitempty"`
}

// TrajectoryResolver turns orbital elements and an encounter time into an
// impact or near-miss verdict.
type TrajectoryResolver interface {
	Resolve(ctx context.Context, elements OrbitalElements, encounter time.Time) (TrajectoryResolution, error)
}

// ErrNoResolver is wrapped in a ResolutionError when orbital elements are
// supplied but no resolver is configured.
var ErrNoResolver = errors.New("no trajectory resolver configured")

// Check reports whether r has a usable shape. Impact verdicts must carry an
// in-range entry geometry; near misses a positive miss distance and speed.
func (r TrajectoryResolution) Check() error {
	if r.Impact {
		if err := validateGeometry(r.VelocityKms, r.ImpactAngleDeg, r.AzimuthDeg, r.Lat, r.Lng); err != nil {
			return &ResolutionError{Err: fmt.Errorf("unusable impact geometry: %v", err)}
		}
		return nil
	}
	if !finite(r.MissDistanceKm) || r.MissDistanceKm <= 0 {
		return &ResolutionError{Err: fmt.Errorf("unusable near miss: miss_distance_km %g", r.MissDistanceKm)}
	}
	if !finite(r.VelocityKms) || r.VelocityKms <= 0 {
		return &ResolutionError{Err: fmt.Errorf("unusable near miss: velocity_kms %g", r.VelocityKms)}
	}
	return nil
}

// Direct converts an impact verdict into a DirectSource.
func (r TrajectoryResolution) Direct() DirectSource {
	return DirectSource{
		Lat:         r.Lat,
		Lng:         r.Lng,
		VelocityKms: r.VelocityKms,
		AngleDeg:    r.ImpactAngleDeg,
		AzimuthDeg:  r.AzimuthDeg,
	}
}

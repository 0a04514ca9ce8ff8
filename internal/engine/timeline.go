package engine

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/entry"
	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Timeline and visualization constants.
const (
	PreImpactS        = 60.0
	PostImpactS       = 300.0
	TimelineStepS     = 5.0
	ShockwaveSpeedKms = 0.34
	SeismicSpeedKms   = 6.0

	ShockwaveSampleS = 10.0
	DebrisPaths      = 8
	DebrisSamples    = 12
	DebrisLaunchDeg  = 45.0
	ProfilePoints    = 33
	ProfileExtent    = 1.5
)

// placeTrack projects each integrator sample back from ground zero along the
// reverse azimuth, so the last sample sits over ground zero.
func placeTrack(state entry.State, groundZero geo.Point, azimuthDeg float64) []domain.TrackPoint {
	final := state.DownrangeM()
	back := math.Mod(azimuthDeg+180, 360)

	track := make([]domain.TrackPoint, 0, len(state.Track))
	for _, s := range state.Track {
		pos := geo.DestinationMeters(groundZero, back, math.Max(final-s.DownrangeM, 0))
		track = append(track, domain.TrackPoint{
			TimeS:      s.TimeS,
			HeightM:    s.HeightM,
			VelocityMs: s.VelocityMs,
			MassKg:     s.MassKg,
			DownrangeM: s.DownrangeM,
			Lat:        pos.Lat,
			Lng:        pos.Lng,
		})
	}
	return track
}

// buildTimeline samples a straight-line kinematic backtrack for the minute
// before impact, the impact instant, and five minutes of front growth.
func buildTimeline(r domain.Results, groundZero geo.Point, g domain.DirectSource) []domain.TimelineEntry {
	angle := geo.DegToRad(g.AngleDeg)
	speedKms := r.VelocityKms
	if speedKms <= 0 {
		speedKms = g.VelocityKms
	}
	back := math.Mod(g.AzimuthDeg+180, 360)

	n := int(PreImpactS/TimelineStepS) + 1 + int(PostImpactS/TimelineStepS)
	timeline := make([]domain.TimelineEntry, 0, n)

	for t := -PreImpactS; t < 0; t += TimelineStepS {
		elapsed := -t
		timeline = append(timeline, domain.TimelineEntry{
			TimeToImpactS: t,
			AltitudeKm:    r.BurstAltitudeKm + speedKms*math.Sin(angle)*elapsed,
			VelocityKms:   speedKms,
			Position:      geo.DestinationMeters(groundZero, back, speedKms*math.Cos(angle)*elapsed*1000),
			Effects:       domain.TimelineEffects{Phase: domain.PhaseDescent},
		})
	}

	timeline = append(timeline, domain.TimelineEntry{
		TimeToImpactS: 0,
		AltitudeKm:    r.BurstAltitudeKm,
		VelocityKms:   r.VelocityKms,
		Position:      groundZero,
		Effects: domain.TimelineEffects{
			Phase:           domain.PhaseImpact,
			ThermalRadiusKm: r.Thermal.RadiusKm,
		},
	})

	for i := 1; i <= int(PostImpactS/TimelineStepS); i++ {
		t := float64(i) * TimelineStepS
		timeline = append(timeline, domain.TimelineEntry{
			TimeToImpactS: t,
			Position:      groundZero,
			Effects: domain.TimelineEffects{
				Phase:             domain.PhaseAfter,
				ShockwaveRadiusKm: math.Min(ShockwaveSpeedKms*t, r.Blast.MinorRadiusKm),
				ThermalRadiusKm:   r.Thermal.RadiusKm,
				SeismicRadiusKm:   math.Min(SeismicSpeedKms*t, r.Seismic.RadiusKm),
			},
		})
	}
	return timeline
}

func buildVisualization(r domain.Results, groundZero geo.Point, track []domain.TrackPoint) domain.Visualization {
	vis := domain.Visualization{
		GroundZero:    groundZero,
		EntryPoint:    groundZero,
		DebrisPaths:   debrisPaths(r, groundZero),
		Shockwave:     shockwave(r),
		CraterProfile: craterProfile(r),
	}
	if len(track) > 0 {
		vis.EntryPoint = geo.Point{Lat: track[0].Lat, Lng: track[0].Lng}
	}
	return vis
}

// debrisPaths traces ballistic arcs launched at the ejecta velocity along
// evenly spaced azimuths. Airbursts throw no debris.
func debrisPaths(r domain.Results, groundZero geo.Point) [][]domain.DebrisPoint {
	paths := [][]domain.DebrisPoint{}
	v := r.Ejecta.VelocityKms * 1000
	if r.Mode != domain.ModeGround || v <= 0 {
		return paths
	}

	launch := geo.DegToRad(DebrisLaunchDeg)
	vx, vz := v*math.Cos(launch), v*math.Sin(launch)
	flight := 2 * vz / geo.StandardGravity

	for i := range DebrisPaths {
		bearing := float64(i) * 360 / DebrisPaths
		path := make([]domain.DebrisPoint, 0, DebrisSamples)
		for k := range DebrisSamples {
			t := flight * float64(k) / (DebrisSamples - 1)
			alt := math.Max(vz*t-0.5*geo.StandardGravity*t*t, 0)
			path = append(path, domain.DebrisPoint{
				TimeS:      t,
				Position:   geo.DestinationMeters(groundZero, bearing, vx*t),
				AltitudeKm: alt / 1000,
			})
		}
		paths = append(paths, path)
	}
	return paths
}

// shockwave samples the blast front; overpressure holds at the peak inside
// the severe radius and falls off inversely beyond it.
func shockwave(r domain.Results) []domain.ShockwaveSample {
	samples := make([]domain.ShockwaveSample, 0, int(PostImpactS/ShockwaveSampleS)+1)
	for i := 0; i <= int(PostImpactS/ShockwaveSampleS); i++ {
		t := float64(i) * ShockwaveSampleS
		radius := math.Min(ShockwaveSpeedKms*t, r.Blast.MinorRadiusKm)
		psi := r.Blast.PeakOverpressurePSI
		if radius > r.Blast.SevereRadiusKm && radius > 0 {
			psi *= r.Blast.SevereRadiusKm / radius
		}
		samples = append(samples, domain.ShockwaveSample{TimeS: t, RadiusKm: radius, OverpressurePsi: psi})
	}
	return samples
}

// craterProfile is a symmetric cross-section: a parabolic bowl that rises to
// the rim, a central peak, and a rim that decays outside the crater.
func craterProfile(r domain.Results) []domain.ProfilePoint {
	c := r.Crater
	profile := []domain.ProfilePoint{}
	radius := c.FinalDiameterM / 2
	if radius <= 0 {
		return profile
	}

	peakWidth := 0.15 * radius
	for i := range ProfilePoints {
		x := -ProfileExtent*radius + float64(i)*2*ProfileExtent*radius/(ProfilePoints-1)
		d := math.Abs(x)

		var elev float64
		if d <= radius {
			u := d / radius
			elev = -c.DepthM*(1-u*u) + c.RimHeightM*math.Pow(u, 4)
			if d < peakWidth {
				elev += c.CentralPeakM * (1 - d/peakWidth)
			}
		} else {
			elev = c.RimHeightM * math.Pow(radius/d, 3)
		}
		profile = append(profile, domain.ProfilePoint{DistanceM: x, ElevationM: elev})
	}
	return profile
}

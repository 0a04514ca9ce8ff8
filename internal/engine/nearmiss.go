package engine

import (
	"math"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/effects"
	"github.com/couchcryptid/neo-impact-service/internal/entry"
)

// FlybyHours is the number of one-hour samples on each side of closest
// approach.
const FlybyHours = 10

// nearMiss reports a trajectory that does not intersect Earth. The flyby is
// a straight line through the closest-approach state vectors; when the
// resolver omits them the body passes along +Y at the miss distance on +X.
func nearMiss(p domain.SimulationParameters, res domain.TrajectoryResolution) domain.NearMissOutcome {
	mass := entry.Mass(p.DiameterM, p.DensityKgM3)
	energyJ := entry.KineticEnergy(mass, res.VelocityKms*1000)

	pos := domain.Vec3{X: res.MissDistanceKm}
	if res.PositionKm != nil {
		pos = *res.PositionKm
	}
	vel := domain.Vec3{Y: res.VelocityKms}
	if res.VelocityVecKms != nil {
		vel = *res.VelocityVecKms
	}

	flyby := make([]domain.FlybyPoint, 0, 2*FlybyHours+1)
	for h := -FlybyHours; h <= FlybyHours; h++ {
		s := float64(h) * 3600
		pt := domain.Vec3{X: pos.X + vel.X*s, Y: pos.Y + vel.Y*s, Z: pos.Z + vel.Z*s}
		flyby = append(flyby, domain.FlybyPoint{
			HoursFromClosest: float64(h),
			Position:         pt,
			DistanceKm:       math.Sqrt(pt.X*pt.X + pt.Y*pt.Y + pt.Z*pt.Z),
		})
	}

	return domain.NearMissOutcome{
		NearMiss:            true,
		MissDistanceKm:      res.MissDistanceKm,
		MissDistanceEarthR:  res.MissDistanceKm / domain.EarthRadiusKm,
		MissDistanceLunar:   res.MissDistanceKm / domain.LunarDistanceKm,
		RelativeVelocityKms: res.VelocityKms,
		ThreatLevel:         domain.ClassifyMissDistance(res.MissDistanceKm),
		PotentialEnergyJ:    energyJ,
		PotentialEnergyMt:   effects.ToMegatons(energyJ),
		EncounterTime:       res.EncounterTime,
		FlybyTrajectory:     flyby,
	}
}

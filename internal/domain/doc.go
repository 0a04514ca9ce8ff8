// Package domain models near-Earth object (NEO) impact simulation requests,
// their outcomes, and the records exchanged with the rest of the system.
//
// # Requests
//
// A request ([SimulationParameters]) describes the body (diameter, density,
// optional material strength) and either a direct entry geometry or a set of
// Keplerian orbital elements plus an encounter time:
//
//	direct:  velocity_kms, impact_angle_deg, azimuth_deg, lat, lng
//	orbital: orbital_elements, encounter_time
//
// When orbital elements are present they win and the entry geometry comes
// from a [TrajectoryResolver]. Otherwise velocity, angle and coordinates are
// mandatory. [SimulationParameters.Validate] checks every range up front and
// returns a tagged [Source] so the engine never inspects optional fields.
//
// Accepted ranges:
//
//	diameter_m        1 – 100,000
//	density_kg_m3     100 – 10,000
//	velocity_kms      1 – 100
//	impact_angle_deg  5 – 90 (measured from the horizontal)
//	azimuth_deg       0 – 360 (bearing of travel, clockwise from north)
//	lat / lng         ±90 / ±180
//	strength_mpa      > 0 – 1,000 (default 1)
//	ocean_depth_m     0 – 11,000 (0 means a land target)
//
// # Outcomes
//
// An [Outcome] has exactly one shape: an impact outcome (results, rings,
// entry track, timeline, damage assessment, visualization), a near-miss
// outcome, or a failure {ok:false, error, error_kind}. Nothing is persisted
// between runs; every outcome is built fresh.
//
// # Threat levels
//
// Impacts are bucketed by TNT-equivalent energy:
//
//	< 1 Mt MINIMAL | < 10 MINOR | < 100 LOCAL | < 1,000 REGIONAL |
//	< 10,000 CONTINENTAL | otherwise EXTINCTION
//
// Near misses are bucketed by miss distance: within 10 Earth radii HIGH,
// within one lunar distance MODERATE, within ten lunar distances LOW,
// otherwise NEGLIGIBLE.
//
// # IDs
//
// Run IDs are UUIDv5 hashes of the canonical request JSON, so replaying the
// same request yields the same ID (see [RunID]).
package domain

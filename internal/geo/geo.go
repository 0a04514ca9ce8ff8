// Package geo holds the stateless math shared by every calculator: angle
// conversion, great-circle projection on a spherical Earth, clamping, and
// lenient numeric coercion.
package geo

import (
	"math"
	"strconv"
	"strings"
)

const (
	// EarthRadiusM is the mean Earth radius used for all arc math.
	EarthRadiusM = 6371000.0
	// EarthRadiusKm is EarthRadiusM in kilometers.
	EarthRadiusKm = EarthRadiusM / 1000.0
	// StandardGravity is surface gravity in m/s².
	StandardGravity = 9.81
)

// Point is a WGS-84 latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// MetersToArc converts a surface distance to the central angle (radians) it
// subtends on a sphere of Earth's radius.
func MetersToArc(meters float64) float64 {
	return meters / EarthRadiusM
}

// Destination returns the point reached by travelling an angular distance
// arc (radians) from start along the initial bearing (degrees clockwise from
// north). Longitude is normalized to [-180, 180).
func Destination(start Point, bearingDeg, arc float64) Point {
	lat1 := DegToRad(start.Lat)
	lng1 := DegToRad(start.Lng)
	brg := DegToRad(bearingDeg)

	sinLat2 := math.Sin(lat1)*math.Cos(arc) + math.Cos(lat1)*math.Sin(arc)*math.Cos(brg)
	lat2 := math.Asin(Clamp(sinLat2, -1, 1))
	lng2 := lng1 + math.Atan2(
		math.Sin(brg)*math.Sin(arc)*math.Cos(lat1),
		math.Cos(arc)-math.Sin(lat1)*math.Sin(lat2),
	)

	return Point{Lat: RadToDeg(lat2), Lng: normalizeLng(RadToDeg(lng2))}
}

// DestinationMeters is Destination with the distance given in meters.
func DestinationMeters(start Point, bearingDeg, meters float64) Point {
	return Destination(start, bearingDeg, MetersToArc(meters))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseFloatOr parses s as a float64, returning fallback when s is blank or
// not a finite number.
func ParseFloatOr(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func normalizeLng(lng float64) float64 {
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}

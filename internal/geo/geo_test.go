package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleConversion(t *testing.T) {
	assert.InDelta(t, math.Pi, DegToRad(180), 1e-12)
	assert.InDelta(t, 90.0, RadToDeg(math.Pi/2), 1e-12)
	assert.InDelta(t, 37.5, RadToDeg(DegToRad(37.5)), 1e-12)
}

func TestMetersToArc(t *testing.T) {
	assert.InDelta(t, 1.0, MetersToArc(EarthRadiusM), 1e-12)
	assert.Zero(t, MetersToArc(0))
}

func TestDestination(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}

	tests := []struct {
		name    string
		bearing float64
		arc     float64
		want    Point
	}{
		{"due north quarter circle", 0, math.Pi / 2, Point{Lat: 90, Lng: 0}},
		{"due east along equator", 90, DegToRad(10), Point{Lat: 0, Lng: 10}},
		{"due west along equator", 270, DegToRad(10), Point{Lat: 0, Lng: -10}},
		{"due south", 180, DegToRad(45), Point{Lat: -45, Lng: 0}},
		{"zero distance", 123, 0, origin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Destination(origin, tt.bearing, tt.arc)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
			assert.InDelta(t, tt.want.Lng, got.Lng, 1e-9)
		})
	}
}

func TestDestination_WrapsAntimeridian(t *testing.T) {
	got := Destination(Point{Lat: 0, Lng: 175}, 90, DegToRad(10))
	assert.InDelta(t, -175.0, got.Lng, 1e-9)
}

func TestDestinationMeters_RoundTrip(t *testing.T) {
	start := Point{Lat: 54.8, Lng: 61.1}
	out := DestinationMeters(start, 45, 100000)
	back := DestinationMeters(out, 225, 100000)
	assert.InDelta(t, start.Lat, back.Lat, 0.05)
	assert.InDelta(t, start.Lng, back.Lng, 0.05)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.2, 0.5, 1.0))
	assert.Equal(t, 1.0, Clamp(3, 0.5, 1.0))
	assert.Equal(t, 0.7, Clamp(0.7, 0.5, 1.0))
}

func TestParseFloatOr(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"  3 ", 3},
		{"", -1},
		{"abc", -1},
		{"NaN", -1},
		{"Inf", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFloatOr(tt.in, -1), "input %q", tt.in)
	}
}

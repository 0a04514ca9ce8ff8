package domain

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/neo-impact-service/internal/geo"
)

// Site sources.
const (
	SiteForward  = "forward"
	SiteReverse  = "reverse"
	SiteOriginal = "original"
	SiteFailed   = "failed"
)

// ResolveLocation fills Lat/Lng from the Location name when a direct request
// carries a name but no coordinates. The returned Site records the forward
// lookup, or is nil when nothing was attempted. Failures leave the
// parameters untouched so validation reports the missing coordinates.
func ResolveLocation(ctx context.Context, p SimulationParameters, geocoder Geocoder, logger *slog.Logger) (SimulationParameters, *Site) {
	if geocoder == nil || p.OrbitalElements != nil || p.Location == "" {
		return p, nil
	}
	if p.Lat != nil && p.Lng != nil {
		return p, nil
	}

	result, err := geocoder.ForwardGeocode(ctx, p.Location)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"location", p.Location,
			"error", err,
		)
		return p, &Site{Name: p.Location, Source: SiteFailed}
	}
	if result.Lat == 0 && result.Lng == 0 {
		return p, &Site{Name: p.Location, Source: SiteOriginal}
	}

	lat, lng := result.Lat, result.Lng
	p.Lat = &lat
	p.Lng = &lng
	return p, &Site{
		Name:             result.PlaceName,
		FormattedAddress: result.FormattedAddress,
		Confidence:       result.Confidence,
		Source:           SiteForward,
	}
}

// DescribeSite reverse-geocodes ground zero. A nil geocoder yields nil;
// failures degrade to a Site with source "failed".
func DescribeSite(ctx context.Context, point geo.Point, geocoder Geocoder, logger *slog.Logger) *Site {
	if geocoder == nil {
		return nil
	}

	result, err := geocoder.ReverseGeocode(ctx, point.Lat, point.Lng)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", point.Lat,
			"lng", point.Lng,
			"error", err,
		)
		return &Site{Source: SiteFailed}
	}
	if result.FormattedAddress == "" {
		return &Site{Source: SiteOriginal}
	}
	return &Site{
		Name:             result.PlaceName,
		FormattedAddress: result.FormattedAddress,
		Confidence:       result.Confidence,
		Source:           SiteReverse,
	}
}

// GroundZero returns the impact point of a successful impact outcome.
func (o Outcome) GroundZero() (geo.Point, bool) {
	if o.ImpactOutcome == nil {
		return geo.Point{}, false
	}
	return o.Visualization.GroundZero, true
}

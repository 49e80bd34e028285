package geofence

import (
	"github.com/golang/geo/s2"
	"github.com/localfixhq/localfix/config"
)

// Policy decides whether automatically resolved coordinates fall inside the
// service region. Only the device-location path consults it; manually typed
// addresses are never gated.
type Policy interface {
	Allows(lat, lng float64) bool
}

type rectPolicy struct {
	rect s2.Rect
}

// FromConfig builds a rectangular fence from the configured bounds. The
// bounds are inclusive on all four edges.
func FromConfig(c *config.Config) Policy {
	return New(c.GeoFenceMinLat, c.GeoFenceMinLng, c.GeoFenceMaxLat, c.GeoFenceMaxLng)
}

// New builds a rectangular fence from corner coordinates in degrees.
func New(minLat, minLng, maxLat, maxLng float64) Policy {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(minLat, minLng))
	rect = rect.AddPoint(s2.LatLngFromDegrees(maxLat, maxLng))
	return &rectPolicy{rect: rect}
}

func (p *rectPolicy) Allows(lat, lng float64) bool {
	return p.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lng))
}

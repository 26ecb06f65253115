package pkg

import (
	"math"

	"github.com/ecopia-map/map_projection/internal/transform"
)

// CameraConstraintFunc lets the embedding application tighten the
// constrained camera state further. It runs after the helper's own
// limits.
type CameraConstraintFunc func(lng, lat, zoom float64) (float64, float64, float64)

// CameraHelper applies per-projection camera limits: longitude
// wrapping, latitude clamping and the zoom range.
type CameraHelper interface {
	Name() string
	Constrain(lng, lat, zoom float64) (float64, float64, float64)
	ZoomRange() (min, max float64)
}

type cameraHelper struct {
	name        string
	maxLatitude float64
	minZoom     float64
	maxZoom     float64
	constraint  CameraConstraintFunc
}

func newMercatorCameraHelper(constraint CameraConstraintFunc) CameraHelper {
	return &cameraHelper{
		name:        "mercator",
		maxLatitude: transform.MaxMercatorLatitude,
		minZoom:     0,
		maxZoom:     22,
		constraint:  constraint,
	}
}

func newGlobeCameraHelper(constraint CameraConstraintFunc) CameraHelper {
	return &cameraHelper{
		name:        "globe",
		maxLatitude: 90,
		minZoom:     0,
		maxZoom:     18,
		constraint:  constraint,
	}
}

func newPerspectiveCameraHelper(constraint CameraConstraintFunc) CameraHelper {
	return &cameraHelper{
		name:        "perspective",
		maxLatitude: 90,
		minZoom:     0,
		maxZoom:     14,
		constraint:  constraint,
	}
}

func (h *cameraHelper) Name() string {
	return h.name
}

func (h *cameraHelper) Constrain(lng, lat, zoom float64) (float64, float64, float64) {
	lng = wrapLongitude(lng)
	if lat > h.maxLatitude {
		lat = h.maxLatitude
	}
	if lat < -h.maxLatitude {
		lat = -h.maxLatitude
	}
	if zoom < h.minZoom {
		zoom = h.minZoom
	}
	if zoom > h.maxZoom {
		zoom = h.maxZoom
	}
	if h.constraint != nil {
		lng, lat, zoom = h.constraint(lng, lat, zoom)
	}
	return lng, lat, zoom
}

func (h *cameraHelper) ZoomRange() (float64, float64) {
	return h.minZoom, h.maxZoom
}

// wrapLongitude maps any longitude into [-180, 180).
func wrapLongitude(lng float64) float64 {
	return lng - 360*math.Floor((lng+180)/360)
}

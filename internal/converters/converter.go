package converters

import (
	"github.com/cockroachdb/errors"

	"github.com/ecopia-map/map_projection/internal/geometry"
)

// ErrOutsideDomain marks per-coordinate conversion failures: the input
// lies outside the domain of validity of the target CRS. Callers decide
// whether to skip the point, clamp it or propagate; the error never
// turns into NaN/Inf reaching the rendering pipeline.
var ErrOutsideDomain = errors.New("coordinate outside projection domain")

// CoordinateConverter converts between WGS84 geographic coordinates
// (degrees) and the native units of a target CRS.
type CoordinateConverter interface {
	// Forward converts geographic lon/lat degrees to native CRS units.
	Forward(lonlat geometry.Coordinate) (geometry.Coordinate, error)
	// Inverse converts native CRS units back to lon/lat degrees.
	Inverse(native geometry.Coordinate) (geometry.Coordinate, error)
	// Cleanup releases any resource held by the underlying engine.
	Cleanup()
}

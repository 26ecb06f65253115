package transform

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"

	"github.com/ecopia-map/map_projection/internal/converters"
	"github.com/ecopia-map/map_projection/internal/crs"
	"github.com/ecopia-map/map_projection/internal/geometry"
)

// Transform converts between geographic coordinates and screen pixels
// for one map view. The default transform runs the renderer's web
// mercator working space directly; when a CRS configuration is present
// the chain becomes converter forward -> bounds normalization -> the
// same unit-square to screen pipeline, and the inverse chain backwards.
//
// A Transform is built once per map view or projection switch and
// replaced, never mutated, when the CRS configuration changes.
type Transform struct {
	cfg       *crs.Config
	converter converters.CoordinateConverter
	screen    ScreenProjector
	center    geometry.Coordinate
}

// NewMercatorTransform builds the default transform. Its output is
// exactly the renderer's native mercator pipeline: the custom-CRS layer
// adds nothing on this path.
func NewMercatorTransform(screen ScreenProjector) *Transform {
	return &Transform{screen: screen}
}

// NewCRSTransform builds a transform for a custom CRS, constructing the
// coordinate converter from the configuration. Fails fatally if the CRS
// definition cannot be resolved.
func NewCRSTransform(cfg *crs.Config, screen ScreenProjector) (*Transform, error) {
	converter, err := cfg.NewConverter()
	if err != nil {
		return nil, err
	}
	return NewCRSTransformWithConverter(cfg, converter, screen), nil
}

// NewCRSTransformWithConverter builds a custom-CRS transform around an
// already constructed converter. The geodesy engine is a black box
// here, so callers may supply any implementation.
func NewCRSTransformWithConverter(cfg *crs.Config, converter converters.CoordinateConverter, screen ScreenProjector) *Transform {
	return &Transform{
		cfg:       cfg,
		converter: converter,
		screen:    screen,
	}
}

func (t *Transform) IsCustomCRS() bool {
	return t.cfg != nil
}

// Config returns the active CRS configuration, nil for the default
// transform.
func (t *Transform) Config() *crs.Config {
	return t.cfg
}

// GeographicToScreen converts lon/lat degrees to screen pixels.
func (t *Transform) GeographicToScreen(lng, lat float64) (geometry.ScreenPoint, error) {
	unit, err := t.GeographicToUnit(lng, lat)
	if err != nil {
		return geometry.ScreenPoint{}, err
	}
	return t.screen.ToScreen(unit), nil
}

// GeographicToUnit converts lon/lat degrees to the renderer's unit
// square.
func (t *Transform) GeographicToUnit(lng, lat float64) (r2.Point, error) {
	if t.cfg == nil {
		unit := r2.Point{X: mercatorUnitXFromLng(lng), Y: mercatorUnitYFromLat(lat)}
		if !isFinitePoint(unit) {
			return r2.Point{}, errors.Mark(
				errors.Newf("mercator projection of (%v, %v) is not finite", lng, lat),
				converters.ErrOutsideDomain,
			)
		}
		return unit, nil
	}
	native, err := t.converter.Forward(geometry.NewCoordinate(lng, lat))
	if err != nil {
		return r2.Point{}, err
	}
	return t.cfg.Bounds().Normalize(native.X, native.Y), nil
}

// ScreenToGeographic converts a screen pixel back to lon/lat degrees.
func (t *Transform) ScreenToGeographic(s geometry.ScreenPoint) (geometry.Coordinate, error) {
	return t.UnitToGeographic(t.screen.FromScreen(s))
}

// UnitToGeographic converts a unit-square point back to lon/lat
// degrees.
func (t *Transform) UnitToGeographic(p r2.Point) (geometry.Coordinate, error) {
	if t.cfg == nil {
		return geometry.NewCoordinate(lngFromMercatorUnitX(p.X), latFromMercatorUnitY(p.Y)), nil
	}
	x, y := t.cfg.Bounds().Denormalize(p.X, p.Y)
	return t.converter.Inverse(geometry.NewCoordinate(x, y))
}

// ProjectNative places native CRS units directly into the unit square,
// bypassing the geographic round-trip. Used when tile content itself is
// authored in the custom CRS. The default transform treats EPSG:3857
// meters as its native units.
func (t *Transform) ProjectNative(x, y float64) r2.Point {
	if t.cfg == nil {
		return r2.Point{
			X: (x + originShift) / (2 * originShift),
			Y: (originShift - y) / (2 * originShift),
		}
	}
	return t.cfg.Bounds().Normalize(x, y)
}

// UnprojectNative is the inverse of ProjectNative.
func (t *Transform) UnprojectNative(u, v float64) (x, y float64) {
	if t.cfg == nil {
		return u*2*originShift - originShift, originShift - v*2*originShift
	}
	return t.cfg.Bounds().Denormalize(u, v)
}

// SetCenter sets the view center in lon/lat degrees.
func (t *Transform) SetCenter(lng, lat float64) {
	t.center = geometry.NewCoordinate(lng, lat)
}

// Center returns the view center in lon/lat degrees.
func (t *Transform) Center() geometry.Coordinate {
	return t.center
}

// SetCenterNative sets the view center from native CRS units, so
// callers working entirely in the CRS never convert by hand.
func (t *Transform) SetCenterNative(x, y float64) error {
	if t.cfg == nil {
		lng, lat := lngLatFromMercatorMeters(x, y)
		t.center = geometry.NewCoordinate(lng, lat)
		return nil
	}
	center, err := t.converter.Inverse(geometry.NewCoordinate(x, y))
	if err != nil {
		return err
	}
	t.center = center
	return nil
}

// CenterNative returns the view center in native CRS units.
func (t *Transform) CenterNative() (geometry.Coordinate, error) {
	if t.cfg == nil {
		x, y := mercatorMetersFromLngLat(t.center.X, t.center.Y)
		native := geometry.NewCoordinate(x, y)
		if !isFiniteCoordinate(native) {
			return geometry.Coordinate{}, errors.Mark(
				errors.Newf("center (%v, %v) has no finite mercator coordinates", t.center.X, t.center.Y),
				converters.ErrOutsideDomain,
			)
		}
		return native, nil
	}
	return t.converter.Forward(t.center)
}

// Cleanup releases the underlying converter, if any.
func (t *Transform) Cleanup() {
	if t.converter != nil {
		t.converter.Cleanup()
		t.converter = nil
	}
}

func isFinitePoint(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func isFiniteCoordinate(c geometry.Coordinate) bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) &&
		!math.IsNaN(c.Y) && !math.IsInf(c.Y, 0)
}

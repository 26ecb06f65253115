package proj4_converter

import (
	"math"

	"github.com/cockroachdb/errors"
	proj "github.com/xeonx/proj4"

	"github.com/ecopia-map/map_projection/internal/converters"
	"github.com/ecopia-map/map_projection/internal/geometry"
)

const wgs84Definition = "+proj=longlat +datum=WGS84 +no_defs"

const degToRad = math.Pi / 180
const radToDeg = 180 / math.Pi

// Proj4Converter implements converters.CoordinateConverter on top of
// the PROJ.4 library, pairing a WGS84 geographic projection with the
// target CRS projection and transforming between the two.
type Proj4Converter struct {
	geographic *proj.Proj
	native     *proj.Proj
}

// NewProj4Converter parses the given proj4 definition string and builds
// a converter for it. A malformed or unparsable definition is a fatal
// construction error.
func NewProj4Converter(definition string) (converters.CoordinateConverter, error) {
	geographic, err := proj.InitPlus(wgs84Definition)
	if err != nil {
		return nil, errors.Wrap(err, "initializing WGS84 geographic projection")
	}
	native, err := proj.InitPlus(definition)
	if err != nil {
		geographic.Close()
		return nil, errors.Wrapf(err, "initializing projection from definition %q", definition)
	}
	return &Proj4Converter{
		geographic: geographic,
		native:     native,
	}, nil
}

func (c *Proj4Converter) Forward(lonlat geometry.Coordinate) (geometry.Coordinate, error) {
	// The geographic side of the transform works in radians.
	x := []float64{lonlat.X * degToRad}
	y := []float64{lonlat.Y * degToRad}
	if err := proj.TransformRaw(c.geographic, c.native, x, y, nil); err != nil {
		return geometry.Coordinate{}, errors.Mark(
			errors.Wrapf(err, "forward transform of (%v, %v)", lonlat.X, lonlat.Y),
			converters.ErrOutsideDomain,
		)
	}
	out := geometry.Coordinate{X: x[0], Y: y[0]}
	if !isFinite(out) {
		return geometry.Coordinate{}, errors.Mark(
			errors.Newf("forward transform of (%v, %v) is not finite", lonlat.X, lonlat.Y),
			converters.ErrOutsideDomain,
		)
	}
	return out, nil
}

func (c *Proj4Converter) Inverse(native geometry.Coordinate) (geometry.Coordinate, error) {
	x := []float64{native.X}
	y := []float64{native.Y}
	if err := proj.TransformRaw(c.native, c.geographic, x, y, nil); err != nil {
		return geometry.Coordinate{}, errors.Mark(
			errors.Wrapf(err, "inverse transform of (%v, %v)", native.X, native.Y),
			converters.ErrOutsideDomain,
		)
	}
	out := geometry.Coordinate{X: x[0] * radToDeg, Y: y[0] * radToDeg}
	if !isFinite(out) {
		return geometry.Coordinate{}, errors.Mark(
			errors.Newf("inverse transform of (%v, %v) is not finite", native.X, native.Y),
			converters.ErrOutsideDomain,
		)
	}
	return out, nil
}

func (c *Proj4Converter) Cleanup() {
	if c.geographic != nil {
		c.geographic.Close()
		c.geographic = nil
	}
	if c.native != nil {
		c.native.Close()
		c.native = nil
	}
}

func isFinite(coord geometry.Coordinate) bool {
	return !math.IsNaN(coord.X) && !math.IsInf(coord.X, 0) &&
		!math.IsNaN(coord.Y) && !math.IsInf(coord.Y, 0)
}

package crs

import (
	"github.com/cockroachdb/errors"

	"github.com/ecopia-map/map_projection/internal/converters"
	"github.com/ecopia-map/map_projection/internal/converters/proj4_converter"
	"github.com/ecopia-map/map_projection/internal/geometry"
)

// ErrInvalidConfiguration marks fatal CRS configuration errors:
// unresolvable codes, malformed definitions, degenerate bounds. These
// surface at construction time and are never silently defaulted.
var ErrInvalidConfiguration = errors.New("invalid CRS configuration")

// Config is an immutable description of a coordinate reference system:
// its code, the proj4 definition it resolves to, the rectangular bounds
// of its working area in native units, and whether rendered tile quads
// should be tessellated to mitigate distortion. Immutability is what
// keeps transforms built from a Config free of stale derived state;
// changing the CRS means building a new Config and a new transform.
type Config struct {
	code           string
	definition     string
	bounds         geometry.BoundingBox
	useSubdivision bool
}

// NewConfig validates and builds a Config. The definition may be empty
// if the code is already registered (see Register); supplying one for
// an unknown code registers it. Bounds are [xmin, ymin, xmax, ymax] in
// native CRS units and must be non-degenerate.
func NewConfig(code, definition string, bounds [4]float64, useSubdivision bool) (*Config, error) {
	if code == "" {
		return nil, errors.Mark(
			errors.New("CRS configuration requires a code"),
			ErrInvalidConfiguration,
		)
	}
	if definition == "" {
		registered, ok := Definition(code)
		if !ok {
			return nil, errors.Mark(
				errors.Newf("CRS code %q is not registered and no definition was supplied", code),
				ErrInvalidConfiguration,
			)
		}
		definition = registered
	} else {
		Register(code, definition)
	}

	box, err := geometry.NewBoundingBox(bounds[0], bounds[1], bounds[2], bounds[3])
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "bounds for CRS %q", code),
			ErrInvalidConfiguration,
		)
	}

	return &Config{
		code:           code,
		definition:     definition,
		bounds:         box,
		useSubdivision: useSubdivision,
	}, nil
}

func (c *Config) Code() string {
	return c.code
}

func (c *Config) Definition() string {
	return c.definition
}

// Bounds returns a copy of the configured extent.
func (c *Config) Bounds() geometry.BoundingBox {
	return c.bounds
}

func (c *Config) UseSubdivision() bool {
	return c.useSubdivision
}

// NewConverter builds a coordinate converter for this configuration.
// Failure means the definition does not parse, which is a configuration
// error naming the offending CRS code.
func (c *Config) NewConverter() (converters.CoordinateConverter, error) {
	converter, err := proj4_converter.NewProj4Converter(c.definition)
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "building converter for CRS %q", c.code),
			ErrInvalidConfiguration,
		)
	}
	return converter, nil
}

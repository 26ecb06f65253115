package geometry

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// ErrDegenerateBounds is returned when a bounding box has a zero or
// negative extent on either axis.
var ErrDegenerateBounds = errors.New("degenerate bounding box")

// UnitCenter is the midpoint of the renderer's unit-square working
// space.
var UnitCenter = r2.Point{X: 0.5, Y: 0.5}

// Represents a rectangular extent in the native units of a coordinate
// reference system. Instances built through NewBoundingBox are
// guaranteed non-degenerate, which keeps Normalize and Denormalize free
// of division-by-zero checks.
type BoundingBox struct {
	Xmin float64
	Ymin float64
	Xmax float64
	Ymax float64
}

// Builds a BoundingBox from its extents, failing if either axis is
// degenerate (max <= min).
func NewBoundingBox(xmin, ymin, xmax, ymax float64) (BoundingBox, error) {
	if xmax <= xmin {
		return BoundingBox{}, errors.Mark(
			errors.Newf("bounding box x extent is degenerate: xmin=%v xmax=%v", xmin, xmax),
			ErrDegenerateBounds,
		)
	}
	if ymax <= ymin {
		return BoundingBox{}, errors.Mark(
			errors.Newf("bounding box y extent is degenerate: ymin=%v ymax=%v", ymin, ymax),
			ErrDegenerateBounds,
		)
	}
	return BoundingBox{Xmin: xmin, Ymin: ymin, Xmax: xmax, Ymax: ymax}, nil
}

func (b BoundingBox) Dx() float64 {
	return b.Xmax - b.Xmin
}

func (b BoundingBox) Dy() float64 {
	return b.Ymax - b.Ymin
}

// Normalize maps native units to the renderer's unit square. Points
// outside the box yield values outside [0,1]; they are intentionally
// not clamped, clamping is the caller's call.
func (b BoundingBox) Normalize(x, y float64) r2.Point {
	return r2.Point{
		X: (x - b.Xmin) / b.Dx(),
		Y: (y - b.Ymin) / b.Dy(),
	}
}

// Denormalize is the exact algebraic inverse of Normalize.
func (b BoundingBox) Denormalize(u, v float64) (x, y float64) {
	return b.Xmin + u*b.Dx(), b.Ymin + v*b.Dy()
}

func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.Xmin && x <= b.Xmax && y >= b.Ymin && y <= b.Ymax
}

// ToGeomBounds bridges to the go-geom bounds type used by GeoJSON
// tooling downstream.
func (b BoundingBox) ToGeomBounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(b.Xmin, b.Ymin, b.Xmax, b.Ymax)
}

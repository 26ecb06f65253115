package transform

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/ecopia-map/map_projection/internal/geometry"
)

const defaultTileSize = 512.0

// ScreenProjector is the boundary to the renderer's existing
// unit-square to screen pipeline. The renderer supplies its own
// implementation; Viewport below is a self-contained one used by tests
// and the command line tool.
type ScreenProjector interface {
	ToScreen(p r2.Point) geometry.ScreenPoint
	FromScreen(s geometry.ScreenPoint) r2.Point
}

// Viewport maps the unit square to a pixel viewport given a center (in
// unit-square coordinates) and a zoom level.
type Viewport struct {
	Width  float64
	Height float64
	Center r2.Point
	Scale  float64
}

func NewViewport(width, height, zoom float64, center r2.Point) *Viewport {
	return &Viewport{
		Width:  width,
		Height: height,
		Center: center,
		Scale:  defaultTileSize * math.Pow(2, zoom),
	}
}

func (v *Viewport) ToScreen(p r2.Point) geometry.ScreenPoint {
	return geometry.ScreenPoint{
		X: (p.X-v.Center.X)*v.Scale + v.Width/2,
		Y: (p.Y-v.Center.Y)*v.Scale + v.Height/2,
	}
}

func (v *Viewport) FromScreen(s geometry.ScreenPoint) r2.Point {
	return r2.Point{
		X: (s.X-v.Width/2)/v.Scale + v.Center.X,
		Y: (s.Y-v.Height/2)/v.Scale + v.Center.Y,
	}
}

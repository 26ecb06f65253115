package projection

import (
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// GeometryKind identifies which class of tile content a mesh is built
// for. The subdivision policy is a static table keyed by kind, never
// computed dynamically.
type GeometryKind int

const (
	GeometryFill GeometryKind = iota
	GeometryLine
	GeometryStencil
)

func (g GeometryKind) String() string {
	switch g {
	case GeometryFill:
		return "fill"
	case GeometryLine:
		return "line"
	case GeometryStencil:
		return "stencil"
	}
	return ""
}

// Segment counts used when a configuration requests subdivision.
// Stencil meshes trace tile boundaries and need the finer grid.
var subdivisionGranularity = map[GeometryKind]int{
	GeometryFill:    256,
	GeometryLine:    256,
	GeometryStencil: 512,
}

// TileMesh is the flat geometry a custom CRS tile renders as: a quad
// covering the tile extent, or a regular triangle grid when subdivision
// is requested. Local geometry is identical for every tile, only the
// per-tile transform matrix differs, so one mesh is shared across all
// tiles. Read-only after construction.
type TileMesh struct {
	Segments int
	Vertices []r2.Point
	Indices  []uint32
}

func newTileMesh(segments int) *TileMesh {
	if segments < 1 {
		segments = 1
	}
	side := segments + 1
	vertices := make([]r2.Point, 0, side*side)
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			vertices = append(vertices, r2.Point{
				X: float64(col) / float64(segments),
				Y: float64(row) / float64(segments),
			})
		}
	}
	indices := make([]uint32, 0, segments*segments*6)
	for row := 0; row < segments; row++ {
		for col := 0; col < segments; col++ {
			topLeft := uint32(row*side + col)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(side)
			bottomRight := bottomLeft + 1
			indices = append(indices,
				topLeft, topRight, bottomLeft,
				topRight, bottomRight, bottomLeft,
			)
		}
	}
	return &TileMesh{
		Segments: segments,
		Vertices: vertices,
		Indices:  indices,
	}
}

func (m *TileMesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *TileMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Boundary returns the mesh outline in tile-local coordinates as a
// go-geom ring, used by diagnostics output.
func (m *TileMesh) Boundary() *geom.LinearRing {
	return geom.NewLinearRing(geom.XY).MustSetCoords([]geom.Coord{
		{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0},
	})
}

// TileMesh returns the shared mesh for the given geometry kind,
// building it on first access after construction. Meshes are cached by
// granularity, so kinds sharing a segment count share one mesh and a
// non-subdividing variant holds a single quad for everything. The cache
// is owned by the variant: render passes only read it, and it is
// dropped as a whole on Teardown, never mutated in place.
func (v *Variant) TileMesh(g GeometryKind) *TileMesh {
	segments := v.SubdivisionGranularity(g)
	if v.meshes == nil {
		v.meshes = make(map[int]*TileMesh)
	}
	if mesh, ok := v.meshes[segments]; ok {
		return mesh
	}
	mesh := newTileMesh(segments)
	v.meshes[segments] = mesh
	return mesh
}

// Teardown drops the cached meshes. Called when the owning projection
// instance is torn down; a later access rebuilds from scratch.
func (v *Variant) Teardown() {
	v.meshes = nil
}

package geometry

// Contains a generic 2D coordinate pair. Depending on context it holds
// geographic degrees (X=longitude, Y=latitude) or the native units of a
// coordinate reference system (e.g. meters easting/northing).
type Coordinate struct {
	X float64
	Y float64
}

func NewCoordinate(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// A point in screen pixel space, origin top-left.
type ScreenPoint struct {
	X float64
	Y float64
}

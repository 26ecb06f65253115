package transform

import "math"

const (
	earthRadius = 6378137.0
	originShift = math.Pi * earthRadius

	// Latitude at which the square web mercator world is cut off.
	MaxMercatorLatitude = 85.05112877980659
)

// Web mercator in the renderer's working space: the whole world maps to
// the unit square, x growing east, y growing south.

func mercatorUnitXFromLng(lng float64) float64 {
	return (180 + lng) / 360
}

func mercatorUnitYFromLat(lat float64) float64 {
	return (180 - (180/math.Pi)*math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))) / 360
}

func lngFromMercatorUnitX(x float64) float64 {
	return x*360 - 180
}

func latFromMercatorUnitY(y float64) float64 {
	return (360/math.Pi)*math.Atan(math.Exp((180-y*360)*math.Pi/180)) - 90
}

// Web mercator in native EPSG:3857 meters, the default CRS's native
// units.

func mercatorMetersFromLngLat(lng, lat float64) (x, y float64) {
	x = lng * originShift / 180
	y = math.Log(math.Tan((90+lat)*math.Pi/360)) / math.Pi * originShift
	return x, y
}

func lngLatFromMercatorMeters(x, y float64) (lng, lat float64) {
	lng = 180 * x / originShift
	lat = 180 / math.Pi * (2*math.Atan(math.Exp(y/originShift*math.Pi)) - math.Pi/2)
	return lng, lat
}

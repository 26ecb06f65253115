package crs

import "sync"

// Process-global table of CRS codes known without an explicit
// definition string. Styles referencing one of these codes may omit the
// definition; anything else has to carry its own.
var (
	registryMutex sync.RWMutex
	registry      = map[string]string{
		"EPSG:4326": "+proj=longlat +datum=WGS84 +no_defs",
		"EPSG:3857": "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +nadgrids=@null +wktext +no_defs",
		// NZTM2000
		"EPSG:2193": "+proj=tmerc +lat_0=0 +lon_0=173 +k=0.9996 +x_0=1600000 +y_0=10000000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
		// CH1903+ / LV95
		"EPSG:2056": "+proj=somerc +lat_0=46.95240555555556 +lon_0=7.439583333333333 +k_0=1 +x_0=2600000 +y_0=1200000 +ellps=bessel +towgs84=674.374,15.056,405.346,0,0,0,0 +units=m +no_defs",
		// Antarctic Polar Stereographic
		"EPSG:3031": "+proj=stere +lat_0=-90 +lat_ts=-71 +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	}
)

// Register makes a CRS code resolvable by later configurations that
// omit the definition string. Re-registering a code overwrites it.
func Register(code, definition string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	registry[code] = definition
}

// Definition resolves a registered code to its proj4 definition string.
func Definition(code string) (string, bool) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	definition, ok := registry[code]
	return definition, ok
}

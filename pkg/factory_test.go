package pkg

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/map_projection/internal/crs"
	"github.com/ecopia-map/map_projection/internal/geometry"
	"github.com/ecopia-map/map_projection/internal/projection"
	"github.com/ecopia-map/map_projection/internal/transform"
)

type identityConverter struct {
	cleaned bool
}

func (c *identityConverter) Forward(lonlat geometry.Coordinate) (geometry.Coordinate, error) {
	return lonlat, nil
}

func (c *identityConverter) Inverse(native geometry.Coordinate) (geometry.Coordinate, error) {
	return native, nil
}

func (c *identityConverter) Cleanup() {
	c.cleaned = true
}

func testScreen() transform.ScreenProjector {
	return transform.NewViewport(1024, 768, 2, geometry.UnitCenter)
}

func testCRS(t *testing.T) *crs.Config {
	t.Helper()
	cfg, err := crs.NewConfig("EPSG:4326", "", [4]float64{-180, -90, 180, 90}, false)
	require.NoError(t, err)
	return cfg
}

// captureWarnings swaps the warning sink for the duration of a test and
// counts emissions.
func captureWarnings(t *testing.T) *int {
	t.Helper()
	count := 0
	previous := warnf
	warnf = func(format string, args ...interface{}) {
		count++
	}
	t.Cleanup(func() { warnf = previous })
	return &count
}

func TestBindingRules(t *testing.T) {
	tests := []struct {
		kind       string
		wantKind   projection.Kind
		wantCamera string
		wantCustom bool
	}{
		{"mercator", projection.KindMercator, "mercator", false},
		{"globe", projection.KindGlobe, "globe", false},
		{"perspective", projection.KindPerspective, "perspective", false},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			set, err := NewProjectionSet(&Options{Kind: tt.kind, Screen: testScreen()})
			require.NoError(t, err)
			defer set.Teardown()

			assert.Equal(t, tt.wantKind, set.Variant.Kind())
			assert.Equal(t, tt.wantCamera, set.Camera.Name())
			assert.Equal(t, tt.wantCustom, set.Transform.IsCustomCRS())
		})
	}
}

func TestCustomCRSBindsDefaultCameraHelper(t *testing.T) {
	cfg := testCRS(t)
	set, err := NewProjectionSet(&Options{
		Kind:      "custom",
		CRS:       cfg,
		Converter: &identityConverter{},
		Screen:    testScreen(),
	})
	require.NoError(t, err)
	defer set.Teardown()

	assert.Equal(t, projection.KindCustomCRS, set.Variant.Kind())
	assert.True(t, set.Transform.IsCustomCRS())
	assert.Same(t, cfg, set.Variant.Config())
	// Camera limits are deliberately not CRS-aware.
	assert.Equal(t, "mercator", set.Camera.Name())
}

func TestCustomCRSRequiresConfiguration(t *testing.T) {
	_, err := NewProjectionSet(&Options{Kind: "custom", Screen: testScreen()})
	require.Error(t, err)
	require.True(t, errors.Is(err, crs.ErrInvalidConfiguration))
}

func TestUnknownKindFallsBackToMercatorWithOneWarning(t *testing.T) {
	warnings := captureWarnings(t)

	set, err := NewProjectionSet(&Options{Kind: "stereographic", Screen: testScreen()})
	require.NoError(t, err)
	defer set.Teardown()

	assert.Equal(t, projection.KindMercator, set.Variant.Kind())
	assert.Equal(t, "mercator", set.Camera.Name())
	assert.False(t, set.Transform.IsCustomCRS())
	assert.Equal(t, 1, *warnings)
}

func TestKnownKindsEmitNoWarning(t *testing.T) {
	warnings := captureWarnings(t)

	for _, kind := range []string{"", "mercator", "globe", "perspective"} {
		set, err := NewProjectionSet(&Options{Kind: kind, Screen: testScreen()})
		require.NoError(t, err)
		set.Teardown()
	}
	assert.Equal(t, 0, *warnings)
}

func TestTeardownReleasesConverter(t *testing.T) {
	converter := &identityConverter{}
	set, err := NewProjectionSet(&Options{
		Kind:      "custom",
		CRS:       testCRS(t),
		Converter: converter,
		Screen:    testScreen(),
	})
	require.NoError(t, err)

	set.Teardown()
	assert.True(t, converter.cleaned)
}

func TestCameraHelperConstrain(t *testing.T) {
	helper := newMercatorCameraHelper(nil)

	lng, lat, zoom := helper.Constrain(190, 88, 25)
	assert.InDelta(t, -170, lng, 1e-9)
	assert.Equal(t, transform.MaxMercatorLatitude, lat)
	assert.Equal(t, 22.0, zoom)

	lng, lat, zoom = helper.Constrain(-170, -88, -3)
	assert.InDelta(t, -170, lng, 1e-9)
	assert.Equal(t, -transform.MaxMercatorLatitude, lat)
	assert.Equal(t, 0.0, zoom)

	// The application hook runs after the built-in limits.
	custom := newGlobeCameraHelper(func(lng, lat, zoom float64) (float64, float64, float64) {
		return lng, lat, 10
	})
	_, lat, zoom = custom.Constrain(0, 95, 3)
	assert.Equal(t, 90.0, lat)
	assert.Equal(t, 10.0, zoom)
}

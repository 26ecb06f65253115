package projection

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/map_projection/internal/crs"
)

func customConfig(t *testing.T, useSubdivision bool) *crs.Config {
	t.Helper()
	cfg, err := crs.NewConfig("EPSG:2193", "", [4]float64{274000, 3087000, 3327000, 7173000}, useSubdivision)
	require.NoError(t, err)
	return cfg
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		value   string
		want    Kind
		wantErr bool
	}{
		{"mercator", KindMercator, false},
		{"", KindMercator, false},
		{" Mercator ", KindMercator, false},
		{"globe", KindGlobe, false},
		{"GLOBE", KindGlobe, false},
		{"perspective", KindPerspective, false},
		{"vertical-perspective", KindPerspective, false},
		{"custom", KindCustomCRS, false},
		{"custom-crs", KindCustomCRS, false},
		{"bananas", KindMercator, true},
		{"globe2", KindMercator, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			kind, err := ParseKind(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrUnsupportedKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestVariantNames(t *testing.T) {
	assert.Equal(t, "mercator", NewVariant(KindMercator, nil).Name())
	assert.Equal(t, "globe", NewVariant(KindGlobe, nil).Name())
	assert.Equal(t, "perspective", NewVariant(KindPerspective, nil).Name())
	assert.Equal(t, "custom (EPSG:2193)", NewVariant(KindCustomCRS, customConfig(t, false)).Name())
}

func TestShaderKey(t *testing.T) {
	assert.Equal(t, "mercator", NewVariant(KindMercator, nil).ShaderKey())
	assert.Equal(t, "globe", NewVariant(KindGlobe, nil).ShaderKey())
	assert.Equal(t, "perspective", NewVariant(KindPerspective, nil).ShaderKey())
	// Custom CRS content is planar after normalization.
	assert.Equal(t, "mercator", NewVariant(KindCustomCRS, customConfig(t, false)).ShaderKey())
}

func TestGlobeTransitionBlendsByZoom(t *testing.T) {
	globe := NewVariant(KindGlobe, nil)

	tests := []struct {
		zoom float64
		want float64
	}{
		{0, 0},
		{10, 0},
		{11, 0},
		{11.25, 0.25},
		{11.5, 0.5},
		{11.75, 0.75},
		{12, 1},
		{15, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, globe.TransitionAt(tt.zoom), 1e-12, "zoom %v", tt.zoom)
	}
}

func TestNonBlendingVariantsHaveConstantTransition(t *testing.T) {
	for _, zoom := range []float64{0, 5, 11.5, 20} {
		assert.Equal(t, 1.0, NewVariant(KindMercator, nil).TransitionAt(zoom))
		assert.Equal(t, 0.0, NewVariant(KindPerspective, nil).TransitionAt(zoom))
		assert.Equal(t, 1.0, NewVariant(KindCustomCRS, customConfig(t, false)).TransitionAt(zoom))
	}
}

func TestLatitudeCorrection(t *testing.T) {
	globe := NewVariant(KindGlobe, nil)

	// Fully mercator: no correction.
	assert.Equal(t, 0.0, float64(globe.LatitudeCorrection(45, 13)))
	// Equator is undistorted at any transition.
	assert.InDelta(t, 0.0, float64(globe.LatitudeCorrection(0, 5)), 1e-12)
	// Northern latitudes correct upward, southern downward, larger
	// correction further from the equator.
	north := float64(globe.LatitudeCorrection(45, 5))
	south := float64(globe.LatitudeCorrection(-45, 5))
	far := float64(globe.LatitudeCorrection(70, 5))
	assert.Greater(t, north, 0.0)
	assert.Less(t, south, 0.0)
	assert.Greater(t, far, north)
	assert.InDelta(t, north, -south, 1e-12)

	// Halfway through the transition the correction halves.
	assert.InDelta(t, north/2, float64(globe.LatitudeCorrection(45, 11.5)), 1e-12)

	// Mercator variants never correct.
	assert.Equal(t, 0.0, float64(NewVariant(KindMercator, nil).LatitudeCorrection(45, 5)))
}

func TestSubdivisionPolicy(t *testing.T) {
	flat := NewVariant(KindCustomCRS, customConfig(t, false))
	assert.False(t, flat.UsesSubdivision())
	assert.Equal(t, 1, flat.SubdivisionGranularity(GeometryFill))
	assert.Equal(t, 1, flat.SubdivisionGranularity(GeometryStencil))

	subdivided := NewVariant(KindCustomCRS, customConfig(t, true))
	assert.True(t, subdivided.UsesSubdivision())
	assert.Equal(t, 256, subdivided.SubdivisionGranularity(GeometryFill))
	assert.Equal(t, 256, subdivided.SubdivisionGranularity(GeometryLine))
	assert.Equal(t, 512, subdivided.SubdivisionGranularity(GeometryStencil))

	// Built-in kinds never subdivide.
	assert.False(t, NewVariant(KindGlobe, nil).UsesSubdivision())
	assert.Equal(t, 1, NewVariant(KindMercator, nil).SubdivisionGranularity(GeometryFill))
}

func TestNewVariantIgnoresConfigForBuiltinKinds(t *testing.T) {
	v := NewVariant(KindMercator, customConfig(t, true))
	assert.Nil(t, v.Config())
	assert.False(t, v.UsesSubdivision())
}

package crs

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDegenerateBoundsFail(t *testing.T) {
	tests := []struct {
		name   string
		bounds [4]float64
	}{
		{"xmax equals xmin", [4]float64{100, 0, 100, 200}},
		{"xmax below xmin", [4]float64{100, 0, 50, 200}},
		{"ymax equals ymin", [4]float64{0, 200, 100, 200}},
		{"ymax below ymin", [4]float64{0, 200, 100, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig("EPSG:4326", "", tt.bounds, false)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidConfiguration))
		})
	}
}

func TestNewConfigUnknownCodeWithoutDefinitionFails(t *testing.T) {
	_, err := NewConfig("EPSG:99999", "", [4]float64{0, 0, 1, 1}, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidConfiguration))
	// The message must name the offending code.
	assert.Contains(t, err.Error(), "EPSG:99999")
}

func TestNewConfigEmptyCodeFails(t *testing.T) {
	_, err := NewConfig("", "+proj=longlat +datum=WGS84 +no_defs", [4]float64{0, 0, 1, 1}, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestNewConfigResolvesRegisteredCode(t *testing.T) {
	cfg, err := NewConfig("EPSG:2193", "", [4]float64{274000, 3087000, 3327000, 7173000}, true)
	require.NoError(t, err)

	assert.Equal(t, "EPSG:2193", cfg.Code())
	assert.Contains(t, cfg.Definition(), "+proj=tmerc")
	assert.True(t, cfg.UseSubdivision())

	bounds := cfg.Bounds()
	assert.Equal(t, 274000.0, bounds.Xmin)
	assert.Equal(t, 7173000.0, bounds.Ymax)
}

func TestNewConfigDefinitionRegistersCode(t *testing.T) {
	const code = "TEST:12345"
	const definition = "+proj=longlat +datum=WGS84 +no_defs"

	_, registered := Definition(code)
	require.False(t, registered)

	_, err := NewConfig(code, definition, [4]float64{0, 0, 1, 1}, false)
	require.NoError(t, err)

	got, registered := Definition(code)
	require.True(t, registered)
	assert.Equal(t, definition, got)

	// A later config may now omit the definition.
	cfg, err := NewConfig(code, "", [4]float64{0, 0, 1, 1}, false)
	require.NoError(t, err)
	assert.Equal(t, definition, cfg.Definition())
}

func TestConfigBoundsReturnsCopy(t *testing.T) {
	cfg, err := NewConfig("EPSG:3857", "", [4]float64{-100, -100, 100, 100}, false)
	require.NoError(t, err)

	bounds := cfg.Bounds()
	bounds.Xmin = -999

	assert.Equal(t, -100.0, cfg.Bounds().Xmin)
}

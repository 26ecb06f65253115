package projection

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"

	"github.com/ecopia-map/map_projection/internal/crs"
)

// ErrUnsupportedKind marks requests for a projection kind this renderer
// does not know. The factory recovers from it by falling back to
// mercator; it never aborts map construction.
var ErrUnsupportedKind = errors.New("unsupported projection kind")

type Kind int

const (
	KindMercator Kind = iota
	KindGlobe
	KindPerspective
	KindCustomCRS
)

func (k Kind) String() string {
	switch k {
	case KindMercator:
		return "mercator"
	case KindGlobe:
		return "globe"
	case KindPerspective:
		return "perspective"
	case KindCustomCRS:
		return "custom"
	}
	return ""
}

// ParseKind resolves a projection kind name from map style
// configuration. The empty string selects the default kind.
func ParseKind(value string) (Kind, error) {
	normalizedValue := strings.Trim(strings.ToLower(value), " ")
	switch normalizedValue {
	case "", "mercator":
		return KindMercator, nil
	case "globe":
		return KindGlobe, nil
	case "perspective", "vertical-perspective":
		return KindPerspective, nil
	case "custom", "custom-crs":
		return KindCustomCRS, nil
	}
	return KindMercator, errors.Mark(
		errors.Newf("unrecognized projection kind %q", value),
		ErrUnsupportedKind,
	)
}

// The globe projection blends between a perspective view and mercator
// as the camera zooms in: fully perspective at and below the start
// zoom, fully mercator at and above the end zoom, linear in between.
const (
	globeTransitionStartZoom = 11.0
	globeTransitionEndZoom   = 12.0
)

// Variant describes the active projection strategy to the renderer:
// display name, shader selection key, zoom-dependent transition scalar,
// latitude distortion correction, subdivision policy and the tile mesh
// hook. Exactly one Variant is active per map view; switching kinds
// goes through the factory, existing instances are never retargeted.
type Variant struct {
	kind   Kind
	cfg    *crs.Config
	meshes map[int]*TileMesh
}

// NewVariant builds a variant of the given kind. cfg is required for
// KindCustomCRS and ignored otherwise.
func NewVariant(kind Kind, cfg *crs.Config) *Variant {
	if kind != KindCustomCRS {
		cfg = nil
	}
	return &Variant{
		kind: kind,
		cfg:  cfg,
	}
}

func (v *Variant) Kind() Kind {
	return v.kind
}

// Config returns the CRS configuration backing a custom variant, nil
// for the built-in kinds.
func (v *Variant) Config() *crs.Config {
	return v.cfg
}

// Name returns the display name of the variant. Custom variants expose
// the CRS code they were configured with.
func (v *Variant) Name() string {
	if v.kind == KindCustomCRS && v.cfg != nil {
		return v.kind.String() + " (" + v.cfg.Code() + ")"
	}
	return v.kind.String()
}

// ShaderKey selects the shader family the renderer compiles for this
// variant. Custom CRS content is already planar after normalization, so
// it renders through the mercator family.
func (v *Variant) ShaderKey() string {
	switch v.kind {
	case KindGlobe:
		return "globe"
	case KindPerspective:
		return "perspective"
	}
	return "mercator"
}

// TransitionAt returns the interpolation scalar in [0,1] between the
// perspective (0) and mercator (1) renditions at the given zoom. Kinds
// that do not blend return a constant 0 or 1.
func (v *Variant) TransitionAt(zoom float64) float64 {
	switch v.kind {
	case KindGlobe:
		if zoom <= globeTransitionStartZoom {
			return 0
		}
		if zoom >= globeTransitionEndZoom {
			return 1
		}
		return (zoom - globeTransitionStartZoom) / (globeTransitionEndZoom - globeTransitionStartZoom)
	case KindPerspective:
		return 0
	}
	return 1
}

// LatitudeCorrection returns the angular correction applied to
// latitude-dependent distortion queries. While the globe blends toward
// mercator the on-screen latitude diverges from the geodetic one by the
// difference between the mercator ordinate and the latitude itself; the
// correction fades out as the transition reaches 1.
func (v *Variant) LatitudeCorrection(lat, zoom float64) s1.Angle {
	t := v.TransitionAt(zoom)
	if t >= 1 {
		return 0
	}
	phi := lat * math.Pi / 180
	psi := math.Log(math.Tan(math.Pi/4 + phi/2))
	return s1.Angle((1 - t) * (psi - phi))
}

// UsesSubdivision reports whether tile quads are tessellated for this
// variant. Only custom CRS configurations may request it.
func (v *Variant) UsesSubdivision() bool {
	return v.kind == KindCustomCRS && v.cfg != nil && v.cfg.UseSubdivision()
}

// SubdivisionGranularity returns the tessellation segment count for the
// given geometry kind, 1 when the variant renders plain quads.
func (v *Variant) SubdivisionGranularity(g GeometryKind) int {
	if !v.UsesSubdivision() {
		return 1
	}
	return subdivisionGranularity[g]
}

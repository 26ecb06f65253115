package pkg

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/glog"

	"github.com/ecopia-map/map_projection/internal/converters"
	"github.com/ecopia-map/map_projection/internal/crs"
	"github.com/ecopia-map/map_projection/internal/projection"
	"github.com/ecopia-map/map_projection/internal/transform"
)

// Options configure a projection set.
type Options struct {
	// Kind names the projection variant ("mercator", "globe",
	// "perspective", "custom"). Empty selects mercator.
	Kind string
	// CRS is required for the custom kind and ignored otherwise.
	CRS *crs.Config
	// Converter optionally supplies a ready geodesy engine for the
	// custom kind; when nil one is built from the CRS configuration.
	Converter converters.CoordinateConverter
	// Screen is the renderer's unit-square to screen pipeline.
	Screen transform.ScreenProjector
	// CameraConstraint optionally tightens camera limits further.
	CameraConstraint CameraConstraintFunc
}

// ProjectionSet is the matched triple the renderer works with: the
// active variant's metadata, the coordinate transform and the camera
// limits bound to it.
type ProjectionSet struct {
	Variant   *projection.Variant
	Transform *transform.Transform
	Camera    CameraHelper
}

// warnf is swappable so tests can count warning emissions.
var warnf = func(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

// NewProjectionSet builds the (variant, transform, camera helper)
// triple for the requested projection kind.
//
// Binding rules: mercator and globe share the default working-space
// transform (the spherical rendition of the globe lives in the shader
// stage, selected through the variant's shader key); perspective does
// too but binds its own camera limits; the custom kind builds the CRS
// transform and, deliberately, keeps the default mercator camera
// helper: camera pan/zoom limits are not CRS-aware in this design, so
// non-rectangular or highly distorted bounds constrain imperfectly.
//
// An unrecognized kind never fails the map: it falls back to mercator
// and emits a single warning.
func NewProjectionSet(opts *Options) (*ProjectionSet, error) {
	kind, err := projection.ParseKind(opts.Kind)
	if err != nil {
		warnf("%v, falling back to %v", err, projection.KindMercator)
		kind = projection.KindMercator
	}

	switch kind {
	case projection.KindGlobe:
		return &ProjectionSet{
			Variant:   projection.NewVariant(kind, nil),
			Transform: transform.NewMercatorTransform(opts.Screen),
			Camera:    newGlobeCameraHelper(opts.CameraConstraint),
		}, nil
	case projection.KindPerspective:
		return &ProjectionSet{
			Variant:   projection.NewVariant(kind, nil),
			Transform: transform.NewMercatorTransform(opts.Screen),
			Camera:    newPerspectiveCameraHelper(opts.CameraConstraint),
		}, nil
	case projection.KindCustomCRS:
		if opts.CRS == nil {
			return nil, errors.Mark(
				errors.New("custom projection requires a CRS configuration"),
				crs.ErrInvalidConfiguration,
			)
		}
		var tr *transform.Transform
		if opts.Converter != nil {
			tr = transform.NewCRSTransformWithConverter(opts.CRS, opts.Converter, opts.Screen)
		} else {
			tr, err = transform.NewCRSTransform(opts.CRS, opts.Screen)
			if err != nil {
				return nil, err
			}
		}
		return &ProjectionSet{
			Variant:   projection.NewVariant(kind, opts.CRS),
			Transform: tr,
			Camera:    newMercatorCameraHelper(opts.CameraConstraint),
		}, nil
	}

	return &ProjectionSet{
		Variant:   projection.NewVariant(projection.KindMercator, nil),
		Transform: transform.NewMercatorTransform(opts.Screen),
		Camera:    newMercatorCameraHelper(opts.CameraConstraint),
	}, nil
}

// Teardown releases the set's resources: the transform's converter and
// the variant's cached meshes.
func (s *ProjectionSet) Teardown() {
	if s.Transform != nil {
		s.Transform.Cleanup()
	}
	if s.Variant != nil {
		s.Variant.Teardown()
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/ecopia-map/map_projection/internal/crs"
	"github.com/ecopia-map/map_projection/internal/geometry"
	"github.com/ecopia-map/map_projection/internal/projection"
	"github.com/ecopia-map/map_projection/internal/transform"
	"github.com/ecopia-map/map_projection/pkg"
	"github.com/ecopia-map/map_projection/tools"
)

const VERSION = "0.9.0"

func main() {
	log.SetPrefix("[mapproj] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds)

	flagsGlobal := tools.ParseFlagsGlobal()

	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		if *flagsGlobal.Help {
			showHelp()
			return
		}
		log.Fatal("Please specify a subcommand [convert|info].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandConvert:
		mainCommandConvert(args)
	case tools.CommandInfo:
		mainCommandInfo(args)
	default:
		log.Fatalf("Unrecognized command [%q]. Command must be one of [convert|info]", cmd)
	}
}

func mainCommandConvert(args []string) {
	flags, pointArgs := tools.ParseFlagsForCommandConvert(args)

	if *flags.Help {
		showHelp()
		return
	}
	if *flags.Silent {
		tools.DisableLogger()
	}
	if *flags.LogTimestamp {
		tools.EnableLoggerTimestamp()
	}

	if msg, res := validateProjectionFlags(&flags.ProjectionFlags); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}
	tools.LogOutput("flags:", tools.FmtJSONString(flags))

	viewport := transform.NewViewport(*flags.Width, *flags.Height, *flags.Zoom, geometry.UnitCenter)

	opts, err := buildProjectionOptions(&flags.ProjectionFlags, viewport)
	if err != nil {
		log.Fatal("Error building projection configuration: ", err)
	}

	set, err := pkg.NewProjectionSet(opts)
	if err != nil {
		log.Fatal("Error building projection: ", err)
	}
	defer set.Teardown()

	tools.LogOutput("active projection:", set.Variant.Name())

	// Center the viewport on the configured lng/lat in the working space
	// of the active projection.
	centerUnit, err := set.Transform.GeographicToUnit(*flags.CenterLng, *flags.CenterLat)
	if err != nil {
		log.Fatal("Error projecting viewport center: ", err)
	}
	viewport.Center = centerUnit
	set.Transform.SetCenter(*flags.CenterLng, *flags.CenterLat)

	coordinates, err := collectCoordinates(*flags.Input, pointArgs)
	if err != nil {
		log.Fatal("Error reading input coordinates: ", err)
	}
	if len(coordinates) == 0 {
		log.Fatal("No input coordinates. Pass lng,lat pairs as arguments or via -input.")
	}

	if *flags.Inverse {
		runInverseConversion(set, coordinates)
		return
	}
	runForwardConversion(set, coordinates, *flags.Format)
}

func runForwardConversion(set *pkg.ProjectionSet, coordinates []geometry.Coordinate, format string) {
	featureCollection := &geojson.FeatureCollection{}

	for _, lnglat := range coordinates {
		unit, err := set.Transform.GeographicToUnit(lnglat.X, lnglat.Y)
		if err != nil {
			log.Printf("skipping (%v, %v): %v", lnglat.X, lnglat.Y, err)
			continue
		}
		screen, err := set.Transform.GeographicToScreen(lnglat.X, lnglat.Y)
		if err != nil {
			log.Printf("skipping (%v, %v): %v", lnglat.X, lnglat.Y, err)
			continue
		}
		nativeX, nativeY := set.Transform.UnprojectNative(unit.X, unit.Y)

		switch format {
		case "geojson":
			featureCollection.Features = append(featureCollection.Features, &geojson.Feature{
				Geometry: geom.NewPointFlat(geom.XY, []float64{lnglat.X, lnglat.Y}),
				Properties: map[string]interface{}{
					"native_x": nativeX,
					"native_y": nativeY,
					"unit_x":   unit.X,
					"unit_y":   unit.Y,
					"screen_x": screen.X,
					"screen_y": screen.Y,
				},
			})
		default:
			fmt.Printf("%.6f,%.6f -> native %.3f,%.3f unit %.6f,%.6f screen %.2f,%.2f\n",
				lnglat.X, lnglat.Y, nativeX, nativeY, unit.X, unit.Y, screen.X, screen.Y)
		}
	}

	if format == "geojson" {
		fmt.Println(tools.FmtJSONString(featureCollection))
	}
}

func runInverseConversion(set *pkg.ProjectionSet, screenPoints []geometry.Coordinate) {
	for _, p := range screenPoints {
		lnglat, err := set.Transform.ScreenToGeographic(geometry.ScreenPoint{X: p.X, Y: p.Y})
		if err != nil {
			log.Printf("skipping (%v, %v): %v", p.X, p.Y, err)
			continue
		}
		fmt.Printf("%.2f,%.2f -> %.6f,%.6f\n", p.X, p.Y, lnglat.X, lnglat.Y)
	}
}

func mainCommandInfo(args []string) {
	flags := tools.ParseFlagsForCommandInfo(args)

	if *flags.Help {
		showHelp()
		return
	}

	if msg, res := validateProjectionFlags(&flags.ProjectionFlags); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	viewport := transform.NewViewport(1024, 768, *flags.Zoom, geometry.UnitCenter)
	opts, err := buildProjectionOptions(&flags.ProjectionFlags, viewport)
	if err != nil {
		log.Fatal("Error building projection configuration: ", err)
	}
	set, err := pkg.NewProjectionSet(opts)
	if err != nil {
		log.Fatal("Error building projection: ", err)
	}
	defer set.Teardown()

	variant := set.Variant
	minZoom, maxZoom := set.Camera.ZoomRange()

	fmt.Println("projection:      ", variant.Name())
	fmt.Println("shader key:      ", variant.ShaderKey())
	fmt.Printf("transition@z%-4v %.3f\n", *flags.Zoom, variant.TransitionAt(*flags.Zoom))
	fmt.Printf("camera:           %s (zoom %v..%v)\n", set.Camera.Name(), minZoom, maxZoom)

	if cfg := variant.Config(); cfg != nil {
		bounds := cfg.Bounds()
		fmt.Println("crs code:        ", cfg.Code())
		fmt.Println("crs definition:  ", cfg.Definition())
		fmt.Printf("crs bounds:       %v,%v,%v,%v\n", bounds.Xmin, bounds.Ymin, bounds.Xmax, bounds.Ymax)
	}

	fmt.Println("subdivision:     ", variant.UsesSubdivision())
	for _, g := range []projection.GeometryKind{projection.GeometryFill, projection.GeometryLine, projection.GeometryStencil} {
		mesh := variant.TileMesh(g)
		fmt.Printf("mesh %-8s      %d segments, %d vertices, %d triangles\n",
			g, mesh.Segments, mesh.VertexCount(), mesh.TriangleCount())
	}
}

// Builds factory options from command line flags, constructing the CRS
// configuration when the custom kind is requested.
func buildProjectionOptions(flags *tools.ProjectionFlags, screen transform.ScreenProjector) (*pkg.Options, error) {
	opts := &pkg.Options{
		Kind:   *flags.Kind,
		Screen: screen,
	}

	kind, err := projection.ParseKind(*flags.Kind)
	// An unrecognized kind is the factory's call: it warns and falls
	// back. Only the custom kind needs a config built here.
	if err == nil && kind == projection.KindCustomCRS {
		bounds, err := tools.ParseBoundsFlag(*flags.Bounds)
		if err != nil {
			return nil, err
		}
		cfg, err := crs.NewConfig(*flags.Code, *flags.Definition, bounds, *flags.Subdivision)
		if err != nil {
			return nil, err
		}
		opts.CRS = cfg
	}
	return opts, nil
}

// Validates flag combinations before any construction work, mirroring
// the fail-fast option checks of the subcommands.
func validateProjectionFlags(flags *tools.ProjectionFlags) (string, bool) {
	kind, err := projection.ParseKind(*flags.Kind)
	if err != nil {
		// Not fatal: the factory falls back to mercator with a warning.
		return "", true
	}
	if kind == projection.KindCustomCRS {
		if *flags.Code == "" {
			return "custom projection requires -code", false
		}
		if *flags.Bounds == "" {
			return "custom projection requires -bounds xmin,ymin,xmax,ymax", false
		}
	}
	return "", true
}

func collectCoordinates(inputPath string, pointArgs []string) ([]geometry.Coordinate, error) {
	var coordinates []geometry.Coordinate
	if inputPath != "" {
		fromFile, err := tools.ReadCoordinateList(inputPath)
		if err != nil {
			return nil, err
		}
		coordinates = append(coordinates, fromFile...)
	}
	for _, arg := range pointArgs {
		coordinate, err := tools.ParseCoordinate(arg)
		if err != nil {
			return nil, err
		}
		coordinates = append(coordinates, coordinate)
	}
	return coordinates, nil
}

func showHelp() {
	fmt.Println("mapproj converts coordinates through the pluggable map projection pipeline.")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  mapproj convert [flags] [lng,lat ...]   convert coordinates to native/unit/screen space")
	fmt.Println("  mapproj info [flags]                    print active projection metadata and mesh statistics")
	fmt.Println("")
	fmt.Println("Command line flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
	printVersion()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}

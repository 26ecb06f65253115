package tools

import (
	"flag"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

const (
	CommandConvert = "convert"
	CommandInfo    = "info"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

// Flags shared by every subcommand that sets up a projection.
type ProjectionFlags struct {
	Kind        *string `json:"kind"`
	Code        *string `json:"code"`
	Definition  *string `json:"definition"`
	Bounds      *string `json:"bounds"`
	Subdivision *bool   `json:"subdivision"`
	Zoom        *float64
}

type FlagsForCommandConvert struct {
	ProjectionFlags
	Input        *string
	Format       *string
	Width        *float64
	Height       *float64
	CenterLng    *float64
	CenterLat    *float64
	Inverse      *bool
	Silent       *bool
	LogTimestamp *bool
	Help         *bool
}

type FlagsForCommandInfo struct {
	ProjectionFlags
	Help *bool
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	// glog already claims -v on the default FlagSet for its verbosity
	// level, so the version shorthand is uppercase.
	version := defineBoolFlag("version", "V", false, "Displays the version of mapproj.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandConvert(args []string) (FlagsForCommandConvert, []string) {
	flagCommand := flag.NewFlagSet("command-convert", flag.ExitOnError)

	kind := defineStringFlagCommand(flagCommand, "kind", "k", "mercator", "Projection kind: mercator, globe, perspective or custom.")
	code := defineStringFlagCommand(flagCommand, "code", "c", "", "CRS code for the custom kind, e.g. EPSG:2193.")
	definition := defineStringFlagCommand(flagCommand, "definition", "d", "", "proj4 definition string. May be omitted if the code is already registered.")
	bounds := defineStringFlagCommand(flagCommand, "bounds", "b", "", "CRS bounds as xmin,ymin,xmax,ymax in native units. Required for the custom kind.")
	subdivision := defineBoolFlagCommand(flagCommand, "subdivision", "", false, "Tessellate tile quads to mitigate distortion of highly non-linear projections.")
	zoom := defineFloat64FlagCommand(flagCommand, "zoom", "z", 0, "Zoom level of the viewport.")
	input := defineStringFlagCommand(flagCommand, "input", "i", "", "File with one lng,lat pair per line. Points may also be given as trailing arguments.")
	format := defineStringFlagCommand(flagCommand, "format", "f", "text", "Output format: text or geojson.")
	width := defineFloat64FlagCommand(flagCommand, "width", "", 1024, "Viewport width in pixels.")
	height := defineFloat64FlagCommand(flagCommand, "height", "", 768, "Viewport height in pixels.")
	centerLng := defineFloat64FlagCommand(flagCommand, "center-lng", "", 0, "Longitude of the viewport center.")
	centerLat := defineFloat64FlagCommand(flagCommand, "center-lat", "", 0, "Latitude of the viewport center.")
	inverse := defineBoolFlagCommand(flagCommand, "inverse", "", false, "Treat inputs as screen px,py pairs and convert back to lng,lat.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandConvert{
		ProjectionFlags: ProjectionFlags{
			Kind:        kind,
			Code:        code,
			Definition:  definition,
			Bounds:      bounds,
			Subdivision: subdivision,
			Zoom:        zoom,
		},
		Input:        input,
		Format:       format,
		Width:        width,
		Height:       height,
		CenterLng:    centerLng,
		CenterLat:    centerLat,
		Inverse:      inverse,
		Silent:       silent,
		LogTimestamp: logTimestamp,
		Help:         help,
	}, flagCommand.Args()
}

func ParseFlagsForCommandInfo(args []string) FlagsForCommandInfo {
	flagCommand := flag.NewFlagSet("command-info", flag.ExitOnError)

	kind := defineStringFlagCommand(flagCommand, "kind", "k", "mercator", "Projection kind: mercator, globe, perspective or custom.")
	code := defineStringFlagCommand(flagCommand, "code", "c", "", "CRS code for the custom kind, e.g. EPSG:2193.")
	definition := defineStringFlagCommand(flagCommand, "definition", "d", "", "proj4 definition string. May be omitted if the code is already registered.")
	bounds := defineStringFlagCommand(flagCommand, "bounds", "b", "", "CRS bounds as xmin,ymin,xmax,ymax in native units. Required for the custom kind.")
	subdivision := defineBoolFlagCommand(flagCommand, "subdivision", "", false, "Tessellate tile quads to mitigate distortion of highly non-linear projections.")
	zoom := defineFloat64FlagCommand(flagCommand, "zoom", "z", 0, "Zoom level used for transition and correction queries.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandInfo{
		ProjectionFlags: ProjectionFlags{
			Kind:        kind,
			Code:        code,
			Definition:  definition,
			Bounds:      bounds,
			Subdivision: subdivision,
			Zoom:        zoom,
		},
		Help: help,
	}
}

// ParseBoundsFlag parses an xmin,ymin,xmax,ymax bounds string. Values
// go through decimal parsing so a configured bound survives the string
// round-trip without accumulating float parse drift.
func ParseBoundsFlag(value string) ([4]float64, error) {
	var bounds [4]float64
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return bounds, errors.Newf("bounds must have 4 comma separated values, got %q", value)
	}
	for i, part := range parts {
		d, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			return bounds, errors.Wrapf(err, "parsing bounds component %q", part)
		}
		bounds[i] = d.InexactFloat64()
	}
	return bounds, nil
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

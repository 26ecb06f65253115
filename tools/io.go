package tools

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang/glog"

	"github.com/ecopia-map/map_projection/internal/geometry"
)

func OpenFileOrFail(filePath string) *os.File {
	file, err := os.Open(filePath)
	if err != nil {
		glog.Fatal(err)
	}

	return file
}

// ReadCoordinateList reads one coordinate pair per line from a file.
// Lines are "x,y"; empty lines and lines starting with # are skipped.
func ReadCoordinateList(filePath string) ([]geometry.Coordinate, error) {
	file := OpenFileOrFail(filePath)
	defer func() { _ = file.Close() }()

	var coordinates []geometry.Coordinate
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		coordinate, err := ParseCoordinate(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filePath, line)
		}
		coordinates = append(coordinates, coordinate)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading coordinate list %q", filePath)
	}
	return coordinates, nil
}

// ParseCoordinate parses an "x,y" pair.
func ParseCoordinate(value string) (geometry.Coordinate, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return geometry.Coordinate{}, errors.Newf("coordinate must be x,y, got %q", value)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Coordinate{}, errors.Wrapf(err, "parsing coordinate %q", value)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Coordinate{}, errors.Wrapf(err, "parsing coordinate %q", value)
	}
	return geometry.NewCoordinate(x, y), nil
}

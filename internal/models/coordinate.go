package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Coordinate represents a geographical point defined by its latitude and longitude.
type Coordinate struct {
	Lat float64 // Lat is the latitude of the geographical point, in [-90, 90].
	Lng float64 // Lng is the longitude of the geographical point, in [-180, 180].
}

// Common errors for coordinate parsing and validation.
var (
	ErrNotCoordinate = errors.New("input does not match the \"<lat>, <lng>\" coordinate form")
	ErrOutOfRange    = errors.New("coordinate components are outside the valid lat/lng range")
)

// coordinatePattern matches the strict "<float>, <float>" form used on the wire.
// Whitespace around the comma is tolerated; anything else falls through to text search.
var coordinatePattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)$`)

const coordinatePrecision = 1e6

// Round returns the coordinate with both components fixed to 6 decimal places.
// All coordinates written to state or reported to callers pass through here.
func (c Coordinate) Round() Coordinate {
	return Coordinate{
		Lat: math.Round(c.Lat*coordinatePrecision) / coordinatePrecision,
		Lng: math.Round(c.Lng*coordinatePrecision) / coordinatePrecision,
	}
}

// Valid reports whether both components are inside the valid geographic range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// String renders the coordinate in the external "{lat}, {lng}" form with
// 6 decimal places. This is the only serialization callers ever see.
func (c Coordinate) String() string {
	rounded := c.Round()
	return fmt.Sprintf("%.6f, %.6f", rounded.Lat, rounded.Lng)
}

// ParseCoordinate parses the strict "<lat>, <lng>" form. It returns
// ErrNotCoordinate when the input is not coordinate-shaped at all, and
// ErrOutOfRange when it is shaped like a coordinate but either component is
// outside the valid range. Callers use the distinction to decide between
// falling through to text search and reporting a validation error.
func ParseCoordinate(input string) (Coordinate, error) {
	matches := coordinatePattern.FindStringSubmatch(strings.TrimSpace(input))
	if matches == nil {
		return Coordinate{}, ErrNotCoordinate
	}

	lat, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return Coordinate{}, ErrNotCoordinate
	}
	lng, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return Coordinate{}, ErrNotCoordinate
	}

	coord := Coordinate{Lat: lat, Lng: lng}
	if !coord.Valid() {
		return Coordinate{}, fmt.Errorf("%w: got (%v, %v)", ErrOutOfRange, lat, lng)
	}

	return coord.Round(), nil
}

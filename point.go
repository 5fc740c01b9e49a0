package stride

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"gopkg.in/yaml.v3"
)

// DefaultThreshold is the minimum movement, in meters, between consecutive
// accepted fixes. Smaller movements are treated as receiver jitter.
const DefaultThreshold = 0.5

var validate = validator.New()

// GeoPoint is a single geodetic fix in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"longitude"`
}

// Batch is the unit of delivery from a Provider. Fixes are processed in
// slice order.
type Batch []GeoPoint

// Validate rejects coordinates outside [-90,90]/[-180,180] and non-finite values.
func (p GeoPoint) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid fix %s: %w", p, err)
	}
	return nil
}

// Point converts p to an orb.Point (longitude first).
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// String renders p as "lat,lon".
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

// wireFix is the encoded form of a GeoPoint. Pointers record whether each
// coordinate was present, since a missing one would otherwise read as 0.
type wireFix struct {
	Latitude  *float64 `json:"latitude" yaml:"latitude"`
	Longitude *float64 `json:"longitude" yaml:"longitude"`
}

func (w wireFix) point() (GeoPoint, error) {
	switch {
	case w.Latitude == nil:
		return GeoPoint{}, errors.New("fix is missing latitude")
	case w.Longitude == nil:
		return GeoPoint{}, errors.New("fix is missing longitude")
	}
	return GeoPoint{Latitude: *w.Latitude, Longitude: *w.Longitude}, nil
}

// UnmarshalJSON requires both coordinates and rejects unknown keys.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var w wireFix
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return err
	}
	fix, err := w.point()
	if err != nil {
		return err
	}
	*p = fix
	return nil
}

// UnmarshalYAML requires both coordinates and rejects unknown keys.
func (p *GeoPoint) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fix must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch key := value.Content[i].Value; key {
		case "latitude", "longitude":
		default:
			return fmt.Errorf("line %d: unknown fix field %q", value.Content[i].Line, key)
		}
	}

	var w wireFix
	if err := value.Decode(&w); err != nil {
		return err
	}
	fix, err := w.point()
	if err != nil {
		return err
	}
	*p = fix
	return nil
}

// Distance returns the great-circle surface distance between a and b in meters.
func Distance(a, b GeoPoint) float64 {
	return geo.DistanceHaversine(a.Point(), b.Point())
}

package osrm

import (
	"encoding/json"
	"fmt"

	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/twpayne/go-polyline"
)

// Geometry is the encoding requested for route geometry
type Geometry string

const (
	GeometryGeoJSON   Geometry = "geojson"
	GeometryPolyline  Geometry = "polyline"
	GeometryPolyline6 Geometry = "polyline6"
)

// ParseGeometry validates a geometry name from configuration
func ParseGeometry(s string) (Geometry, error) {
	switch g := Geometry(s); g {
	case GeometryGeoJSON, GeometryPolyline, GeometryPolyline6:
		return g, nil
	case "":
		return GeometryGeoJSON, nil
	default:
		return "", fmt.Errorf("unknown geometry %q", s)
	}
}

// OSRM response format
type routeResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Routes  []responseRoute `json:"routes"`
}

type responseRoute struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Geometry json.RawMessage `json:"geometry"`
	Legs     []responseLeg   `json:"legs"`
}

type responseLeg struct {
	Steps []responseStep `json:"steps"`
}

type responseStep struct {
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Name     string   `json:"name"`
	Maneuver maneuver `json:"maneuver"`
}

type maneuver struct {
	Instruction  string `json:"instruction"`
	Type         string `json:"type"`
	Modifier     string `json:"modifier"`
	BearingAfter int    `json:"bearing_after"`
}

type lineString struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// decodeGeometry converts the route geometry into (lat, lng) coordinates.
// GeoJSON pairs are [lng, lat]; encoded polylines are (lat, lng).
func decodeGeometry(raw json.RawMessage, geometry Geometry) ([]models.Coordinate, error) {
	switch geometry {
	case GeometryPolyline, GeometryPolyline6:
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("%w: geometry is not an encoded polyline: %v", ErrMalformedResponse, err)
		}
		codec := polyline.Codec{Dim: 2, Scale: 1e5}
		if geometry == GeometryPolyline6 {
			codec.Scale = 1e6
		}
		points, _, err := codec.DecodeCoords([]byte(encoded))
		if err != nil {
			return nil, fmt.Errorf("%w: decode polyline: %v", ErrMalformedResponse, err)
		}
		coords := make([]models.Coordinate, 0, len(points))
		for _, p := range points {
			coords = append(coords, models.Coordinate{Lat: p[0], Lng: p[1]})
		}
		return coords, nil

	default:
		var line lineString
		if err := json.Unmarshal(raw, &line); err != nil {
			return nil, fmt.Errorf("%w: geometry is not GeoJSON: %v", ErrMalformedResponse, err)
		}
		coords := make([]models.Coordinate, 0, len(line.Coordinates))
		for i, pair := range line.Coordinates {
			if len(pair) < 2 {
				return nil, fmt.Errorf("%w: coordinate %d has %d components", ErrMalformedResponse, i, len(pair))
			}
			coords = append(coords, models.Coordinate{Lat: pair[1], Lng: pair[0]})
		}
		return coords, nil
	}
}

// toRoute normalizes the first candidate route
func (r *routeResponse) toRoute(geometry Geometry) (*models.Route, error) {
	if r.Code != "" && r.Code != "Ok" {
		if r.Code == "NoRoute" {
			return nil, ErrNoRoute
		}
		return nil, fmt.Errorf("osrm code %s: %s", r.Code, r.Message)
	}
	if len(r.Routes) == 0 {
		return nil, ErrNoRoute
	}

	first := r.Routes[0]
	coords, err := decodeGeometry(first.Geometry, geometry)
	if err != nil {
		return nil, err
	}
	if len(coords) < 2 {
		return nil, fmt.Errorf("%w: geometry has %d points", ErrMalformedResponse, len(coords))
	}
	for i, c := range coords {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: coordinate %d (%v) out of range", ErrMalformedResponse, i, c)
		}
	}
	if first.Distance < 0 || first.Duration < 0 {
		return nil, fmt.Errorf("%w: negative route totals %v m, %v s", ErrMalformedResponse, first.Distance, first.Duration)
	}
	if len(first.Legs) == 0 {
		return nil, fmt.Errorf("%w: route has no legs", ErrMalformedResponse)
	}

	steps := first.Legs[0].Steps
	instructions := make([]models.Instruction, 0, len(steps))
	for i, s := range steps {
		if s.Distance < 0 || s.Duration < 0 {
			return nil, fmt.Errorf("%w: step %d has negative distance or duration", ErrMalformedResponse, i)
		}
		instructions = append(instructions, models.Instruction{
			Text:     describe(s),
			Distance: s.Distance,
			Time:     s.Duration,
		})
	}

	return &models.Route{
		Distance:     first.Distance,
		Duration:     first.Duration,
		Coordinates:  coords,
		Instructions: instructions,
	}, nil
}

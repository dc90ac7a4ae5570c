package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinate represents a geographic location with latitude and longitude
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid reports whether both components are finite and inside their ranges
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

// ParseCoordinate parses a "lat,lng" string
func ParseCoordinate(input string) (Coordinate, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: want lat,lng", input)
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return Coordinate{}, fmt.Errorf("invalid lat/lng %q", input)
	}

	c := Coordinate{Lat: lat, Lng: lng}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("coordinate %q out of range", input)
	}
	return c, nil
}

// Instruction is a single maneuver along a route, in travel order
type Instruction struct {
	Text     string  `json:"text"`
	Distance float64 `json:"distance"` // meters
	Time     float64 `json:"time"`     // seconds
}

// Route is the normalized result of one successful route acquisition
type Route struct {
	Distance     float64       `json:"distance"` // meters
	Duration     float64       `json:"duration"` // seconds
	Coordinates  []Coordinate  `json:"coordinates"`
	Instructions []Instruction `json:"instructions"`
}

// Bounds returns the bounding box of the route geometry
func (r *Route) Bounds() (BoundingBox, bool) {
	if r == nil || len(r.Coordinates) == 0 {
		return BoundingBox{}, false
	}
	box := BoundingBox{BottomLeft: r.Coordinates[0], TopRight: r.Coordinates[0]}
	for _, c := range r.Coordinates[1:] {
		box = box.Extend(c)
	}
	return box, true
}

// BoundingBox represents a rectangular area defined by two corners
type BoundingBox struct {
	BottomLeft Coordinate
	TopRight   Coordinate
}

// Extend grows the box so that it contains c
func (b BoundingBox) Extend(c Coordinate) BoundingBox {
	b.BottomLeft.Lat = math.Min(b.BottomLeft.Lat, c.Lat)
	b.BottomLeft.Lng = math.Min(b.BottomLeft.Lng, c.Lng)
	b.TopRight.Lat = math.Max(b.TopRight.Lat, c.Lat)
	b.TopRight.Lng = math.Max(b.TopRight.Lng, c.Lng)
	return b
}

// Contains reports whether c lies inside the box, edges included
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.BottomLeft.Lat && c.Lat <= b.TopRight.Lat &&
		c.Lng >= b.BottomLeft.Lng && c.Lng <= b.TopRight.Lng
}

func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.BottomLeft.Lat + b.TopRight.Lat) / 2,
		Lng: (b.BottomLeft.Lng + b.TopRight.Lng) / 2,
	}
}

// Span returns the latitude and longitude extents in degrees
func (b BoundingBox) Span() (lat, lng float64) {
	return b.TopRight.Lat - b.BottomLeft.Lat, b.TopRight.Lng - b.BottomLeft.Lng
}

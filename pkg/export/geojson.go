// Package export renders routes for other tools.
package export

import (
	"errors"
	"fmt"

	"github.com/1F47E/go-navigator/pkg/format"
	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var ErrEmptyRoute = errors.New("route has no geometry")

func point(c models.Coordinate) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// FeatureCollection returns the route path as a LineString feature followed
// by start and end Point features
func FeatureCollection(route *models.Route) (*geojson.FeatureCollection, error) {
	if route == nil || len(route.Coordinates) < 2 {
		return nil, ErrEmptyRoute
	}

	line := make(orb.LineString, 0, len(route.Coordinates))
	for _, c := range route.Coordinates {
		line = append(line, point(c))
	}

	path := geojson.NewFeature(line)
	path.Properties["kind"] = "route"
	path.Properties["distance"] = route.Distance
	path.Properties["duration"] = route.Duration
	path.Properties["distance_text"] = format.Distance(route.Distance)
	path.Properties["duration_text"] = format.Duration(route.Duration)
	path.Properties["instructions"] = len(route.Instructions)
	path.BBox = geojson.NewBBox(line.Bound())

	start := geojson.NewFeature(point(route.Coordinates[0]))
	start.Properties["kind"] = "start"
	end := geojson.NewFeature(point(route.Coordinates[len(route.Coordinates)-1]))
	end.Properties["kind"] = "end"

	fc := geojson.NewFeatureCollection()
	fc.Append(path)
	fc.Append(start)
	fc.Append(end)
	return fc, nil
}

// Marshal encodes the route as GeoJSON
func Marshal(route *models.Route) ([]byte, error) {
	fc, err := FeatureCollection(route)
	if err != nil {
		return nil, err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return data, nil
}

package session

import "github.com/1F47E/go-navigator/pkg/models"

// Event is anything that may change the session
type Event interface {
	event()
}

// PointSelected carries a coordinate picked on the map
type PointSelected struct {
	Coordinate models.Coordinate
}

type ResetRequested struct{}

type SwapRequested struct{}

// FindRouteRequested asks for an acquisition of the selected endpoints
type FindRouteRequested struct{}

// RouteResolved delivers a successful acquisition tagged with the generation
// of the request that produced it
type RouteResolved struct {
	Generation uint64
	Route      *models.Route
}

// RouteFailed delivers a failed acquisition
type RouteFailed struct {
	Generation uint64
	Err        error
}

type DisplayModeRequested struct {
	Mode Mode
}

func (PointSelected) event()        {}
func (ResetRequested) event()       {}
func (SwapRequested) event()        {}
func (FindRouteRequested) event()   {}
func (RouteResolved) event()        {}
func (RouteFailed) event()          {}
func (DisplayModeRequested) event() {}

// Request is an acquisition the caller must perform. Its result goes back as
// RouteResolved or RouteFailed with the same Generation.
type Request struct {
	Generation uint64
	Start      models.Coordinate
	End        models.Coordinate
}

package session

import (
	"fmt"

	"github.com/1F47E/go-navigator/pkg/models"
	"go.uber.org/zap"
)

// Coordinator owns the live session state. Every change goes through Reduce.
// It is not safe for concurrent use; callers drive it from one event loop.
type Coordinator struct {
	state State
	log   *zap.Logger
}

func NewCoordinator(log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{state: Initial(), log: log}
}

// State returns a snapshot of the current state
func (c *Coordinator) State() State {
	return c.state
}

// Dispatch reduces e into the live state and returns the acquisition to run, if any
func (c *Coordinator) Dispatch(e Event) *Request {
	t := Reduce(c.state, e)
	c.state = t.State

	switch t.Outcome {
	case Applied:
		c.log.Debug("session event",
			zap.String("event", eventName(e)),
			zap.Stringer("phase", t.State.Phase()),
			zap.Stringer("mode", t.State.Mode),
			zap.Bool("loading", t.State.Loading),
			zap.Uint64("generation", t.State.Generation))
	case Ignored:
		c.log.Debug("session event ignored",
			zap.String("event", eventName(e)),
			zap.Stringer("phase", c.state.Phase()),
			zap.Bool("loading", c.state.Loading))
	case Stale:
		c.log.Debug("discarding stale route result",
			zap.String("event", eventName(e)),
			zap.Uint64("generation", c.state.Generation))
	}

	if f, ok := e.(RouteFailed); ok && t.Outcome == Applied {
		c.log.Warn("route unavailable", zap.Uint64("generation", f.Generation), zap.Error(f.Err))
	}
	return t.Request
}

func (c *Coordinator) OnPointSelected(coord models.Coordinate) {
	c.Dispatch(PointSelected{Coordinate: coord})
}

func (c *Coordinator) OnReset() {
	c.Dispatch(ResetRequested{})
}

func (c *Coordinator) OnSwap() {
	c.Dispatch(SwapRequested{})
}

// OnFindRouteRequested starts an acquisition. It returns nil when the
// endpoints are incomplete or one is already in flight.
func (c *Coordinator) OnFindRouteRequested() *Request {
	return c.Dispatch(FindRouteRequested{})
}

// OnRouteResolved stores route if generation is current and reports whether
// it was accepted
func (c *Coordinator) OnRouteResolved(generation uint64, route *models.Route) bool {
	before := c.state
	c.Dispatch(RouteResolved{Generation: generation, Route: route})
	return before.Loading && !c.state.Loading
}

// OnRouteFailed records a failed acquisition if generation is current
func (c *Coordinator) OnRouteFailed(generation uint64, err error) bool {
	before := c.state
	c.Dispatch(RouteFailed{Generation: generation, Err: err})
	return before.Loading && !c.state.Loading
}

func (c *Coordinator) SetDisplayMode(mode Mode) {
	c.Dispatch(DisplayModeRequested{Mode: mode})
}

func eventName(e Event) string {
	return fmt.Sprintf("%T", e)
}

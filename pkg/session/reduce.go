package session

import "errors"

// ErrRouteUnavailable is the failure recorded when an acquisition reports
// neither a route nor an error
var ErrRouteUnavailable = errors.New("route unavailable")

// Outcome says what Reduce did with an event
type Outcome int

const (
	Applied Outcome = iota
	Ignored
	Stale
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Ignored:
		return "ignored"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Transition is the result of reducing one event
type Transition struct {
	State   State
	Outcome Outcome
	// Request is set only when the event started an acquisition
	Request *Request
}

// Reduce applies e to s. It never mutates s and performs no I/O; an
// acquisition to run is returned as Transition.Request.
func Reduce(s State, e Event) Transition {
	switch e := e.(type) {
	case PointSelected:
		if s.Loading || !e.Coordinate.Valid() {
			return ignore(s)
		}
		sel, ok := s.Selection.Select(e.Coordinate)
		if !ok {
			return ignore(s)
		}
		s.Selection = sel
		s.Failure = nil
		return apply(s)

	case ResetRequested:
		return apply(State{Mode: ModeMap, Generation: s.Generation + 1})

	case SwapRequested:
		if s.Loading {
			return ignore(s)
		}
		sel, ok := s.Selection.Swap()
		if !ok {
			return ignore(s)
		}
		s.Selection = sel
		s = clearRoute(s)
		s.Failure = nil
		return apply(s)

	case FindRouteRequested:
		if !s.CanFindRoute() {
			return ignore(s)
		}
		s = clearRoute(s)
		s.Failure = nil
		s.Loading = true
		s.Generation++
		return Transition{
			State:   s,
			Outcome: Applied,
			Request: &Request{
				Generation: s.Generation,
				Start:      *s.Selection.Start,
				End:        *s.Selection.End,
			},
		}

	case RouteResolved:
		if !s.Loading || e.Generation != s.Generation {
			return Transition{State: s, Outcome: Stale}
		}
		s.Loading = false
		if e.Route == nil {
			s.Failure = ErrRouteUnavailable
			return apply(s)
		}
		s.Route = e.Route
		return apply(s)

	case RouteFailed:
		if !s.Loading || e.Generation != s.Generation {
			return Transition{State: s, Outcome: Stale}
		}
		s.Loading = false
		s.Failure = e.Err
		if s.Failure == nil {
			s.Failure = ErrRouteUnavailable
		}
		return apply(s)

	case DisplayModeRequested:
		mode := e.Mode
		if mode == ModeGraph && !s.CanShowGraph() {
			mode = ModeMap
		}
		if mode == s.Mode {
			return ignore(s)
		}
		s.Mode = mode
		return apply(s)
	}

	return ignore(s)
}

// clearRoute drops the route. Without a route there is nothing to show in
// graph mode.
func clearRoute(s State) State {
	s.Route = nil
	s.Mode = ModeMap
	return s
}

func apply(s State) Transition {
	return Transition{State: s, Outcome: Applied}
}

func ignore(s State) Transition {
	return Transition{State: s, Outcome: Ignored}
}

package session

import "github.com/1F47E/go-navigator/pkg/models"

// Mode selects which view presents the route
type Mode int

const (
	ModeMap Mode = iota
	ModeGraph
)

func (m Mode) String() string {
	if m == ModeGraph {
		return "graph"
	}
	return "map"
}

// State is one immutable snapshot of the session.
//
// Generation identifies the latest acquisition. It is bumped whenever a new
// request starts or the session is reset, so a late result carrying an older
// generation is discarded.
type State struct {
	Selection  Selection
	Route      *models.Route
	Loading    bool
	Mode       Mode
	Failure    error
	Generation uint64
}

// Initial is the state of a fresh session
func Initial() State {
	return State{Mode: ModeMap}
}

func (s State) Phase() Phase {
	if s.Route != nil && s.Selection.Complete() {
		return PhaseRouteComputed
	}
	return s.Selection.Phase()
}

func (s State) HasRoute() bool {
	return s.Route != nil
}

// CanFindRoute reports whether a Find Route request would start an acquisition
func (s State) CanFindRoute() bool {
	return s.Selection.Complete() && !s.Loading
}

func (s State) CanSwap() bool {
	return s.Selection.Complete() && !s.Loading
}

// CanShowGraph reports whether graph mode has something to show
func (s State) CanShowGraph() bool {
	return s.Route != nil && s.Selection.Complete()
}

// Package session holds the navigator's session state: the selected endpoints,
// the current route, the loading flag and the display mode. State changes only
// through Reduce, and Coordinator owns the single live copy.
package session

import "github.com/1F47E/go-navigator/pkg/models"

// Phase is how far the user has got with a session
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseHasStart
	PhaseHasStartAndEnd
	PhaseRouteComputed
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseHasStart:
		return "has-start"
	case PhaseHasStartAndEnd:
		return "has-start-and-end"
	case PhaseRouteComputed:
		return "route-computed"
	default:
		return "unknown"
	}
}

// Selection is the pair of endpoints picked on the map. End is only set once
// Start is set. Values are never mutated in place.
type Selection struct {
	Start *models.Coordinate
	End   *models.Coordinate
}

func (s Selection) Phase() Phase {
	switch {
	case s.Start == nil:
		return PhaseEmpty
	case s.End == nil:
		return PhaseHasStart
	default:
		return PhaseHasStartAndEnd
	}
}

// Complete reports whether both endpoints are set
func (s Selection) Complete() bool {
	return s.Start != nil && s.End != nil
}

// Select fills the next free endpoint. A third point is not captured and
// ok is false.
func (s Selection) Select(c models.Coordinate) (next Selection, ok bool) {
	switch s.Phase() {
	case PhaseEmpty:
		return Selection{Start: &c}, true
	case PhaseHasStart:
		return Selection{Start: s.Start, End: &c}, true
	default:
		return s, false
	}
}

// Swap exchanges the endpoints when both are present
func (s Selection) Swap() (next Selection, ok bool) {
	if !s.Complete() {
		return s, false
	}
	return Selection{Start: s.End, End: s.Start}, true
}

// Points returns the set endpoints in order
func (s Selection) Points() []models.Coordinate {
	var out []models.Coordinate
	if s.Start != nil {
		out = append(out, *s.Start)
	}
	if s.End != nil {
		out = append(out, *s.End)
	}
	return out
}

package session

import (
	"errors"
	"testing"

	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRoute = &models.Route{
	Distance:     5000,
	Duration:     600,
	Coordinates:  []models.Coordinate{{Lat: 50, Lng: 10}, {Lat: 50.1, Lng: 10.1}},
	Instructions: []models.Instruction{{Text: "Head north", Distance: 5000, Time: 600}},
}

// run reduces events in order and returns the final transition
func run(t *testing.T, s State, events ...Event) Transition {
	t.Helper()
	tr := Transition{State: s}
	for _, e := range events {
		tr = Reduce(tr.State, e)
	}
	return tr
}

func twoPoints(t *testing.T) State {
	t.Helper()
	return run(t, Initial(), PointSelected{berlin}, PointSelected{potsdam}).State
}

func withRoute(t *testing.T) State {
	t.Helper()
	tr := Reduce(twoPoints(t), FindRouteRequested{})
	require.NotNil(t, tr.Request)
	return Reduce(tr.State, RouteResolved{Generation: tr.Request.Generation, Route: sampleRoute}).State
}

func TestReducePointSelected(t *testing.T) {
	s := twoPoints(t)
	assert.Equal(t, PhaseHasStartAndEnd, s.Phase())

	tr := Reduce(s, PointSelected{leipzig})
	assert.Equal(t, Ignored, tr.Outcome)
	assert.Equal(t, s, tr.State)

	tr = Reduce(Initial(), PointSelected{models.Coordinate{Lat: 91}})
	assert.Equal(t, Ignored, tr.Outcome)
	assert.Equal(t, PhaseEmpty, tr.State.Phase())
}

func TestReduceResetFromAnyState(t *testing.T) {
	loading := Reduce(twoPoints(t), FindRouteRequested{}).State
	graph := Reduce(withRoute(t), DisplayModeRequested{ModeGraph}).State
	failed := Reduce(loading, RouteFailed{Generation: loading.Generation, Err: errors.New("boom")}).State

	states := map[string]State{
		"empty":   Initial(),
		"start":   run(t, Initial(), PointSelected{berlin}).State,
		"both":    twoPoints(t),
		"loading": loading,
		"route":   withRoute(t),
		"graph":   graph,
		"failed":  failed,
	}

	for name, s := range states {
		t.Run(name, func(t *testing.T) {
			got := Reduce(s, ResetRequested{}).State
			assert.Equal(t, PhaseEmpty, got.Phase())
			assert.Nil(t, got.Route)
			assert.Equal(t, ModeMap, got.Mode)
			assert.False(t, got.Loading)
			assert.NoError(t, got.Failure)
			assert.Greater(t, got.Generation, s.Generation)
		})
	}
}

func TestReduceSwap(t *testing.T) {
	s := Reduce(withRoute(t), DisplayModeRequested{ModeGraph}).State
	require.Equal(t, ModeGraph, s.Mode)

	once := Reduce(s, SwapRequested{})
	require.Equal(t, Applied, once.Outcome)
	assert.Nil(t, once.State.Route)
	assert.Equal(t, ModeMap, once.State.Mode)
	assert.Equal(t, potsdam, *once.State.Selection.Start)

	twice := Reduce(once.State, SwapRequested{})
	assert.Nil(t, twice.State.Route)
	assert.Equal(t, berlin, *twice.State.Selection.Start)
	assert.Equal(t, potsdam, *twice.State.Selection.End)

	single := run(t, Initial(), PointSelected{berlin}, SwapRequested{})
	assert.Equal(t, Ignored, single.Outcome)
}

func TestReduceFindRoute(t *testing.T) {
	t.Run("needs both points", func(t *testing.T) {
		tr := run(t, Initial(), PointSelected{berlin}, FindRouteRequested{})
		assert.Equal(t, Ignored, tr.Outcome)
		assert.Nil(t, tr.Request)
		assert.False(t, tr.State.Loading)
	})

	t.Run("starts one acquisition", func(t *testing.T) {
		tr := Reduce(twoPoints(t), FindRouteRequested{})
		require.NotNil(t, tr.Request)
		assert.True(t, tr.State.Loading)
		assert.Equal(t, berlin, tr.Request.Start)
		assert.Equal(t, potsdam, tr.Request.End)
		assert.Equal(t, tr.State.Generation, tr.Request.Generation)

		again := Reduce(tr.State, FindRouteRequested{})
		assert.Equal(t, Ignored, again.Outcome)
		assert.Nil(t, again.Request)
	})

	t.Run("recalculate drops the old route", func(t *testing.T) {
		s := Reduce(withRoute(t), DisplayModeRequested{ModeGraph}).State
		tr := Reduce(s, FindRouteRequested{})
		require.NotNil(t, tr.Request)
		assert.Nil(t, tr.State.Route)
		assert.Equal(t, ModeMap, tr.State.Mode)
	})
}

func TestReduceLoadingGuards(t *testing.T) {
	loading := Reduce(twoPoints(t), FindRouteRequested{}).State

	for _, e := range []Event{PointSelected{leipzig}, SwapRequested{}, FindRouteRequested{}, DisplayModeRequested{ModeGraph}} {
		tr := Reduce(loading, e)
		assert.Equal(t, loading, tr.State, "%T", e)
		assert.True(t, tr.State.Loading, "%T", e)
	}
}

func TestReduceResolution(t *testing.T) {
	loading := Reduce(twoPoints(t), FindRouteRequested{}).State

	t.Run("resolved", func(t *testing.T) {
		s := Reduce(loading, RouteResolved{Generation: loading.Generation, Route: sampleRoute}).State
		assert.False(t, s.Loading)
		assert.Equal(t, sampleRoute, s.Route)
		assert.Equal(t, PhaseRouteComputed, s.Phase())
	})

	t.Run("failed", func(t *testing.T) {
		err := errors.New("no route")
		s := Reduce(loading, RouteFailed{Generation: loading.Generation, Err: err}).State
		assert.False(t, s.Loading)
		assert.Nil(t, s.Route)
		assert.ErrorIs(t, s.Failure, err)
		assert.Equal(t, PhaseHasStartAndEnd, s.Phase())
	})

	t.Run("empty result", func(t *testing.T) {
		s := Reduce(loading, RouteResolved{Generation: loading.Generation}).State
		assert.False(t, s.Loading)
		assert.ErrorIs(t, s.Failure, ErrRouteUnavailable)
	})

	t.Run("failure is cleared by next find", func(t *testing.T) {
		s := Reduce(loading, RouteFailed{Generation: loading.Generation, Err: errors.New("x")}).State
		tr := Reduce(s, FindRouteRequested{})
		assert.NoError(t, tr.State.Failure)
		assert.True(t, tr.State.Loading)
	})
}

func TestReduceStaleResults(t *testing.T) {
	first := Reduce(twoPoints(t), FindRouteRequested{})
	reset := Reduce(first.State, ResetRequested{}).State
	s := run(t, reset, PointSelected{berlin}, PointSelected{leipzig}).State
	second := Reduce(s, FindRouteRequested{})
	require.NotEqual(t, first.Request.Generation, second.Request.Generation)

	late := Reduce(second.State, RouteResolved{Generation: first.Request.Generation, Route: sampleRoute})
	assert.Equal(t, Stale, late.Outcome)
	assert.True(t, late.State.Loading)
	assert.Nil(t, late.State.Route)

	lateFail := Reduce(second.State, RouteFailed{Generation: first.Request.Generation, Err: errors.New("x")})
	assert.Equal(t, Stale, lateFail.Outcome)
	assert.NoError(t, lateFail.State.Failure)

	afterReset := Reduce(reset, RouteResolved{Generation: first.Request.Generation, Route: sampleRoute})
	assert.Equal(t, Stale, afterReset.Outcome)
	assert.Nil(t, afterReset.State.Route)
}

func TestReduceDisplayMode(t *testing.T) {
	t.Run("graph without route stays on map", func(t *testing.T) {
		tr := Reduce(twoPoints(t), DisplayModeRequested{ModeGraph})
		assert.Equal(t, ModeMap, tr.State.Mode)
	})

	t.Run("graph with route", func(t *testing.T) {
		s := Reduce(withRoute(t), DisplayModeRequested{ModeGraph}).State
		assert.Equal(t, ModeGraph, s.Mode)

		s = Reduce(s, DisplayModeRequested{ModeMap}).State
		assert.Equal(t, ModeMap, s.Mode)
	})
}

// loading must be true exactly while an acquisition is outstanding
func TestReduceLoadingTracksOutstandingRequest(t *testing.T) {
	events := []Event{
		PointSelected{berlin},
		FindRouteRequested{},
		PointSelected{potsdam},
		SwapRequested{},
		FindRouteRequested{},
		SwapRequested{},
		FindRouteRequested{},
		PointSelected{leipzig},
		DisplayModeRequested{ModeGraph},
		ResetRequested{},
		PointSelected{leipzig},
		PointSelected{berlin},
		FindRouteRequested{},
		FindRouteRequested{},
		SwapRequested{},
	}

	s := Initial()
	var outstanding *Request
	for i, e := range events {
		tr := Reduce(s, e)
		if tr.Request != nil {
			outstanding = tr.Request
		}
		if _, ok := e.(ResetRequested); ok {
			outstanding = nil
		}
		s = tr.State
		assert.Equal(t, outstanding != nil, s.Loading, "event %d %T", i, e)

		// resolve every other request
		if outstanding != nil && i%2 == 0 {
			s = Reduce(s, RouteResolved{Generation: outstanding.Generation, Route: sampleRoute}).State
			outstanding = nil
			assert.False(t, s.Loading)
		}
	}
}

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/1F47E/go-navigator/pkg/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRoute = &models.Route{
	Distance:     5000,
	Duration:     600,
	Coordinates:  []models.Coordinate{{Lat: 50, Lng: 10}, {Lat: 50.1, Lng: 10.1}},
	Instructions: []models.Instruction{{Text: "Head north", Distance: 5000, Time: 600}},
}

type fakeRouter struct {
	route *models.Route
	err   error
	calls int
}

func (f *fakeRouter) Route(_ context.Context, _, _ models.Coordinate) (*models.Route, error) {
	f.calls++
	return f.route, f.err
}

// instant fires frames without waiting
func instant(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Time{}) }
}

func newModel(t *testing.T, router Router, opts ...func(*Options)) Model {
	t.Helper()
	o := Options{
		Router:    router,
		Center:    models.Coordinate{Lat: 20, Lng: 0},
		Zoom:      2,
		FocusZoom: 14,
		Step:      0.1,
		Scheduler: instant,
	}
	for _, fn := range opts {
		fn(&o)
	}
	m, _ := update(t, New(o), tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return update(t, m, msg)
}

// collect runs cmd and any batched commands, returning their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds the acquisition results produced by cmd back into the model
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case routeResolvedMsg, routeFailedMsg:
			m, _ = update(t, m, msg)
		}
	}
	return m
}

func selectTwoPoints(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = press(t, m, "enter")
	for i := 0; i < 5; i++ {
		m, _ = press(t, m, "right")
	}
	m, _ = press(t, m, "enter")
	require.True(t, m.State().Selection.Complete())
	return m
}

func withRoute(t *testing.T, m Model) Model {
	t.Helper()
	m = selectTwoPoints(t, m)
	m, cmd := press(t, m, "f")
	m = deliver(t, m, cmd)
	require.NotNil(t, m.State().Route)
	return m
}

func TestSelectAndFindRoute(t *testing.T) {
	router := &fakeRouter{route: sampleRoute}
	m := newModel(t, router)
	assert.Contains(t, m.View(), "Select a point on the map to set start location")
	assert.Contains(t, m.View(), "press enter")

	m, _ = press(t, m, "enter")
	start := m.State().Selection.Start
	require.NotNil(t, start)
	assert.Equal(t, 14.0, m.view.Zoom)
	assert.Equal(t, *start, m.view.Center)
	assert.Contains(t, m.View(), "Select a point on the map to set destination")

	for i := 0; i < 5; i++ {
		m, _ = press(t, m, "right")
	}
	m, _ = press(t, m, "enter")
	end := m.State().Selection.End
	require.NotNil(t, end)
	assert.Greater(t, end.Lng, start.Lng)
	assert.Contains(t, m.View(), "Find Route")

	// a third selection is not captured
	m, _ = press(t, m, "up")
	m, _ = press(t, m, "enter")
	assert.Equal(t, *end, *m.State().Selection.End)

	m, cmd := press(t, m, "f")
	require.NotNil(t, cmd)
	assert.True(t, m.State().Loading)
	assert.Contains(t, m.View(), "Calculating...")

	m, again := press(t, m, "f")
	assert.Nil(t, again)

	m = deliver(t, m, cmd)
	assert.Equal(t, 1, router.calls)
	assert.False(t, m.State().Loading)
	assert.Equal(t, sampleRoute, m.State().Route)

	view := m.View()
	assert.Contains(t, view, "Recalculate")
	assert.Contains(t, view, "5.0 km")
	assert.Contains(t, view, "10 min")
	assert.Contains(t, view, "1 Directions")
	assert.NotContains(t, view, "Head north")
	assert.Contains(t, view, "nearest waypoint")

	m, _ = press(t, m, "d")
	assert.Contains(t, m.View(), "Head north")
}

func TestRouteFitsViewport(t *testing.T) {
	m := withRoute(t, newModel(t, &fakeRouter{route: sampleRoute}))

	box, _ := sampleRoute.Bounds()
	assert.Equal(t, box.Center(), m.view.Center)
	for _, c := range sampleRoute.Coordinates {
		_, _, ok := m.view.Project(c)
		assert.True(t, ok)
	}
}

func TestRouteFailureIsShown(t *testing.T) {
	m := newModel(t, &fakeRouter{err: errors.New("service down")})
	m = selectTwoPoints(t, m)

	m, cmd := press(t, m, "f")
	m = deliver(t, m, cmd)

	assert.False(t, m.State().Loading)
	assert.Nil(t, m.State().Route)
	assert.Contains(t, m.View(), "Could not calculate route")
	assert.Contains(t, m.View(), "service down")

	// retry is allowed
	_, cmd = press(t, m, "f")
	assert.NotNil(t, cmd)
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	m := newModel(t, &fakeRouter{route: sampleRoute})
	home := m.view
	m = selectTwoPoints(t, m)

	m, cmd := press(t, m, "f")
	m, _ = press(t, m, "r")
	assert.False(t, m.State().Loading)
	assert.Equal(t, home, m.view)

	m = deliver(t, m, cmd)
	assert.Nil(t, m.State().Route)
	assert.Equal(t, session.PhaseEmpty, m.State().Phase())
}

func TestSwapClearsRoute(t *testing.T) {
	m := withRoute(t, newModel(t, &fakeRouter{route: sampleRoute}))
	start, end := *m.State().Selection.Start, *m.State().Selection.End

	m, _ = press(t, m, "s")
	assert.Nil(t, m.State().Route)
	assert.Equal(t, end, *m.State().Selection.Start)
	assert.Equal(t, start, *m.State().Selection.End)
	assert.Contains(t, m.View(), "Find Route")
}

func TestGraphModePlayback(t *testing.T) {
	m := withRoute(t, newModel(t, &fakeRouter{route: sampleRoute}))

	m, cmd := press(t, m, "g")
	assert.Equal(t, session.ModeGraph, m.State().Mode)
	require.True(t, m.player.Running())
	require.NotNil(t, cmd)

	for i := 0; i < 5; i++ {
		m, cmd = update(t, m, cmd())
	}
	assert.InDelta(t, 0.5, m.player.Progress(), 1e-9)
	assert.Contains(t, m.View(), "50%")

	m, _ = press(t, m, "space")
	pending := cmd()
	m, cmd = update(t, m, pending)
	assert.InDelta(t, 0.5, m.player.Progress(), 1e-9)

	m, _ = press(t, m, "space")
	for i := 0; i < 20; i++ {
		m, cmd = update(t, m, cmd())
	}
	assert.Equal(t, 1.0, m.player.Progress())
	view := m.View()
	assert.Contains(t, view, "100%")
	assert.Contains(t, view, "2 / 2 points")

	m, _ = press(t, m, "0")
	assert.Equal(t, 0.0, m.player.Progress())

	m, _ = press(t, m, "+")
	assert.Equal(t, 1.25, m.graphScale)

	m, _ = press(t, m, "g")
	assert.Equal(t, session.ModeMap, m.State().Mode)
	assert.False(t, m.player.Running())
	_, next := update(t, m, cmd())
	assert.Nil(t, next)
}

func TestGraphWithoutRouteStaysOnMap(t *testing.T) {
	m := newModel(t, &fakeRouter{route: sampleRoute})
	m = selectTwoPoints(t, m)

	m, cmd := press(t, m, "g")
	assert.Nil(t, cmd)
	assert.Equal(t, session.ModeMap, m.State().Mode)
	assert.False(t, m.player.Running())
}

func TestResetLeavesGraph(t *testing.T) {
	m := withRoute(t, newModel(t, &fakeRouter{route: sampleRoute}))
	m, _ = press(t, m, "g")
	require.True(t, m.player.Running())

	m, _ = press(t, m, "r")
	assert.Equal(t, session.ModeMap, m.State().Mode)
	assert.False(t, m.player.Running())
	assert.Nil(t, m.State().Route)
}

func TestMouseClickSelects(t *testing.T) {
	m := newModel(t, &fakeRouter{route: sampleRoute})

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	assert.Nil(t, m.State().Selection.Start)
	assert.Equal(t, 10, m.cursorX)
	assert.Equal(t, 5-headerHeight, m.cursorY)

	want := m.cursorCoordinate()
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.NotNil(t, m.State().Selection.Start)
	assert.Equal(t, want, *m.State().Selection.Start)

	// clicks on the sidebar are not map clicks
	m, _ = update(t, m, tea.MouseMsg{X: 115, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Nil(t, m.State().Selection.End)
}

func TestPreselectedFind(t *testing.T) {
	router := &fakeRouter{route: sampleRoute}
	start := models.Coordinate{Lat: 50, Lng: 10}
	end := models.Coordinate{Lat: 50.1, Lng: 10.1}
	m := newModel(t, router, func(o *Options) {
		o.Start, o.End, o.Find = &start, &end, true
	})
	require.True(t, m.State().Loading)

	m = deliver(t, m, m.Init())
	assert.Equal(t, 1, router.calls)
	assert.Equal(t, sampleRoute, m.State().Route)
}

func TestMapZoomKeys(t *testing.T) {
	m := newModel(t, &fakeRouter{})
	m, _ = press(t, m, "+")
	assert.Equal(t, 3.0, m.view.Zoom)
	m, _ = press(t, m, "-")
	m, _ = press(t, m, "-")
	assert.Equal(t, 1.0, m.view.Zoom)
	m, _ = press(t, m, "-")
	assert.Equal(t, 1.0, m.view.Zoom)
}

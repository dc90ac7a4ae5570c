// Package tui is the interactive navigator: a terminal map for picking the
// endpoints, a control panel, route details and an animated graph of the path.
package tui

import (
	"context"
	"time"

	"github.com/1F47E/go-navigator/pkg/geo"
	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/1F47E/go-navigator/pkg/osrm"
	"github.com/1F47E/go-navigator/pkg/playback"
	"github.com/1F47E/go-navigator/pkg/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	headerHeight = 1
	footerHeight = 2
	sidebarWidth = 52
	mapPadding   = 2

	minGraphScale  = 0.5
	maxGraphScale  = 2.0
	graphScaleStep = 0.25
)

// Router acquires a route between two points
type Router interface {
	Route(ctx context.Context, start, end models.Coordinate) (*models.Route, error)
}

type Options struct {
	Router      Router
	Coordinator *session.Coordinator
	Log         *zap.Logger

	Center    models.Coordinate
	Zoom      float64
	FocusZoom float64
	Timeout   time.Duration

	FPS       int
	Step      float64
	Scheduler playback.Scheduler

	// preselected endpoints and an immediate Find Route
	Start *models.Coordinate
	End   *models.Coordinate
	Find  bool
}

type routeResolvedMsg struct {
	generation uint64
	route      *models.Route
}

type routeFailedMsg struct {
	generation uint64
	err        error
}

type Model struct {
	router    Router
	coord     *session.Coordinator
	log       *zap.Logger
	timeout   time.Duration
	focusZoom float64

	playerOpts []playback.Option
	player     playback.Driver
	graphScale float64

	width  int
	height int

	home    geo.Viewport
	view    geo.Viewport
	cursorX int
	cursorY int
	index   *geo.WaypointIndex

	showDirections bool

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	pending tea.Cmd
}

func New(opts Options) Model {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Coordinator == nil {
		opts.Coordinator = session.NewCoordinator(opts.Log)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = osrm.DefaultTimeout
	}
	if opts.Zoom == 0 {
		opts.Zoom = 2
	}
	if opts.FocusZoom == 0 {
		opts.FocusZoom = 14
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	m := Model{
		router:    opts.Router,
		coord:     opts.Coordinator,
		log:       opts.Log,
		timeout:   opts.Timeout,
		focusZoom: opts.FocusZoom,
		playerOpts: []playback.Option{
			playback.WithFPS(opts.FPS),
			playback.WithStep(opts.Step),
			playback.WithScheduler(opts.Scheduler),
		},
		graphScale: 1,
		width:      80,
		height:     24,
		keys:       defaultKeys(),
		help:       help.New(),
		spinner:    s,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	w, h := m.canvasSize()
	m.home = geo.NewViewport(opts.Center, opts.Zoom, w, h)
	m.view = m.home
	m.centerCursor()

	var cmds []tea.Cmd
	var cmd tea.Cmd
	for _, p := range []*models.Coordinate{opts.Start, opts.End} {
		if p != nil {
			m, cmd = m.dispatch(session.PointSelected{Coordinate: *p})
			cmds = append(cmds, cmd)
		}
	}
	if opts.Find {
		m, cmd = m.dispatch(session.FindRouteRequested{})
		cmds = append(cmds, cmd)
	}
	m.pending = tea.Batch(cmds...)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.pending
}

// State exposes the session snapshot the model renders
func (m Model) State() session.State {
	return m.coord.State()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.canvasSize()
		m.home = m.home.Resize(w, h)
		m.view = m.view.Resize(w, h)
		m.cursorX = min(max(m.cursorX, 0), w-1)
		m.cursorY = min(max(m.cursorY, 0), h-1)
		m.help.Width = msg.Width
		m.progress.Width = max(10, w-50)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case routeResolvedMsg:
		prev := m.coord.State()
		if !m.coord.OnRouteResolved(msg.generation, msg.route) {
			return m, nil
		}
		return m.sync(prev)

	case routeFailedMsg:
		prev := m.coord.State()
		if !m.coord.OnRouteFailed(msg.generation, msg.err) {
			return m, nil
		}
		return m.sync(prev)

	case spinner.TickMsg:
		if !m.coord.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case playback.FrameMsg:
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.coord.State()
	graph := state.Mode == session.ModeGraph

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.player = m.player.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		var cmd tea.Cmd
		m, cmd = m.dispatch(session.ResetRequested{})
		m.view = m.home
		m.centerCursor()
		m.showDirections = false
		return m, cmd

	case key.Matches(msg, m.keys.Swap):
		return m.dispatch(session.SwapRequested{})

	case key.Matches(msg, m.keys.Find):
		return m.dispatch(session.FindRouteRequested{})

	case key.Matches(msg, m.keys.View):
		mode := session.ModeGraph
		if graph {
			mode = session.ModeMap
		}
		return m.dispatch(session.DisplayModeRequested{Mode: mode})

	case key.Matches(msg, m.keys.Directions):
		if state.HasRoute() {
			m.showDirections = !m.showDirections
		}
		return m, nil

	case key.Matches(msg, m.keys.ZoomIn):
		if graph {
			m.graphScale = min(maxGraphScale, m.graphScale+graphScaleStep)
		} else {
			m.view = m.view.WithZoom(m.view.Zoom + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.ZoomOut):
		if graph {
			m.graphScale = max(minGraphScale, m.graphScale-graphScaleStep)
		} else {
			m.view = m.view.WithZoom(m.view.Zoom - 1)
		}
		return m, nil
	}

	if graph {
		switch {
		case key.Matches(msg, m.keys.Play):
			m.player = m.player.TogglePlayPause()
		case key.Matches(msg, m.keys.Replay):
			m.player = m.player.Reset()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Select):
		return m.dispatch(session.PointSelected{Coordinate: m.cursorCoordinate()})
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.coord.State().Mode != session.ModeMap {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.view = m.view.WithZoom(m.view.Zoom + 1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.view = m.view.WithZoom(m.view.Zoom - 1)
		return m, nil
	}

	x, y := msg.X, msg.Y-headerHeight
	w, h := m.canvasSize()
	if x < 0 || x >= w || y < 0 || y >= h {
		return m, nil
	}
	m.cursorX, m.cursorY = x, y
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		return m.dispatch(session.PointSelected{Coordinate: m.cursorCoordinate()})
	}
	return m, nil
}

// dispatch feeds e to the coordinator and runs the acquisition it asks for
func (m Model) dispatch(e session.Event) (Model, tea.Cmd) {
	prev := m.coord.State()
	req := m.coord.Dispatch(e)

	m, cmd := m.sync(prev)
	if req == nil {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.fetchRoute(*req), m.spinner.Tick)
}

// sync adjusts the view to a state change: the map flies to a new start,
// fits a new route, and the playback driver lives exactly while the graph
// is shown
func (m Model) sync(prev session.State) (Model, tea.Cmd) {
	cur := m.coord.State()
	var cmd tea.Cmd

	if prev.Route != cur.Route {
		m.index = nil
		m.showDirections = false
		if cur.Route != nil {
			m.index = geo.NewWaypointIndex(cur.Route.Coordinates)
			if box, ok := cur.Route.Bounds(); ok {
				m.view = m.view.Fit(box, mapPadding)
				m.centerCursor()
			}
		}
	}

	if prev.Selection.Start == nil && cur.Selection.Start != nil && cur.Selection.End == nil {
		m.view = m.view.WithCenter(*cur.Selection.Start).WithZoom(m.focusZoom)
		m.centerCursor()
	}

	if prev.Mode != cur.Mode {
		if cur.Mode == session.ModeGraph {
			m.player, cmd = playback.New(m.playerOpts...).Start()
			m.graphScale = 1
		} else {
			m.player = m.player.Stop()
		}
	}
	return m, cmd
}

func (m Model) fetchRoute(req session.Request) tea.Cmd {
	router, timeout := m.router, m.timeout
	return func() tea.Msg {
		if router == nil {
			return routeFailedMsg{generation: req.Generation, err: session.ErrRouteUnavailable}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		route, err := router.Route(ctx, req.Start, req.End)
		if err != nil {
			return routeFailedMsg{generation: req.Generation, err: err}
		}
		return routeResolvedMsg{generation: req.Generation, route: route}
	}
}

func (m Model) canvasSize() (int, int) {
	return max(20, m.width-sidebarWidth), max(6, m.height-headerHeight-footerHeight)
}

func (m *Model) centerCursor() {
	w, h := m.canvasSize()
	m.cursorX, m.cursorY = w/2, h/2
}

// moveCursor moves the map cursor, panning once it reaches an edge
func (m *Model) moveCursor(dx, dy int) {
	w, h := m.canvasSize()
	x, y := m.cursorX+dx, m.cursorY+dy
	px, py := 0, 0
	if x < 0 || x >= w {
		px = dx
		x = m.cursorX
	}
	if y < 0 || y >= h {
		py = dy
		y = m.cursorY
	}
	if px != 0 || py != 0 {
		m.view = m.view.Pan(px, py)
	}
	m.cursorX, m.cursorY = x, y
}

func (m Model) cursorCoordinate() models.Coordinate {
	return m.view.Unproject(m.cursorX, m.cursorY)
}

// Package playback animates the reveal of a route path. A Driver advances a
// progress value in [0, 1] on every frame while playing.
package playback

import (
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultStep = 0.005
	DefaultFPS  = 60
)

type State int

const (
	Playing State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "paused"
	}
	return "playing"
}

// Scheduler arranges for fn to be called once after d and its result to be
// delivered as a message. tea.Tick is the default.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// FrameMsg advances the driver that scheduled it
type FrameMsg struct {
	ID   int
	Time time.Time
	tag  int
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Driver is a value type in the bubbles style: methods return the updated
// copy. A stopped driver ignores its pending frames.
type Driver struct {
	id       int
	tag      int
	running  bool
	progress float64
	state    State
	step     float64
	interval time.Duration
	schedule Scheduler
}

type Option func(*Driver)

// WithStep sets the progress added per frame
func WithStep(step float64) Option {
	return func(d *Driver) {
		if step > 0 && step <= 1 {
			d.step = step
		}
	}
}

func WithFPS(fps int) Option {
	return func(d *Driver) {
		if fps > 0 {
			d.interval = time.Second / time.Duration(fps)
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(d *Driver) {
		if s != nil {
			d.schedule = s
		}
	}
}

// New returns a driver at progress 0 in the Playing state. Frames are not
// scheduled until Start.
func New(opts ...Option) Driver {
	d := Driver{
		id:       nextID(),
		state:    Playing,
		step:     DefaultStep,
		interval: time.Second / DefaultFPS,
		schedule: tea.Tick,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d Driver) ID() int { return d.id }

func (d Driver) Progress() float64 { return d.progress }

func (d Driver) State() State { return d.state }

func (d Driver) Playing() bool { return d.state == Playing }

// Running reports whether the frame loop is active
func (d Driver) Running() bool { return d.running }

func (d Driver) Finished() bool { return d.progress >= 1 }

// Tick advances one frame. Progress only grows while playing and holds at 1.
func (d Driver) Tick() Driver {
	if d.state != Playing {
		return d
	}
	d.progress = math.Min(1, d.progress+d.step)
	return d
}

func (d Driver) TogglePlayPause() Driver {
	if d.state == Playing {
		d.state = Paused
	} else {
		d.state = Playing
	}
	return d
}

// Reset rewinds to 0 and plays
func (d Driver) Reset() Driver {
	d.progress = 0
	d.state = Playing
	return d
}

// Start begins the frame loop. Frames from an earlier loop are invalidated.
func (d Driver) Start() (Driver, tea.Cmd) {
	d.tag++
	d.running = true
	return d, d.frame()
}

// Stop cancels the frame loop. A frame already in flight is dropped on arrival.
func (d Driver) Stop() Driver {
	d.tag++
	d.running = false
	return d
}

// Update handles the driver's own frames and schedules the next one
func (d Driver) Update(msg tea.Msg) (Driver, tea.Cmd) {
	frame, ok := msg.(FrameMsg)
	if !ok || frame.ID != d.id || frame.tag != d.tag || !d.running {
		return d, nil
	}
	d = d.Tick()
	return d, d.frame()
}

func (d Driver) frame() tea.Cmd {
	id, tag := d.id, d.tag
	return d.schedule(d.interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t, tag: tag}
	})
}

// CurrentIndex is the path index of the position marker for progress over n
// points, clamped to the last index. It is -1 for an empty path.
func CurrentIndex(progress float64, n int) int {
	if n <= 0 {
		return -1
	}
	i := int(math.Floor(progress * float64(n)))
	return min(max(i, 0), n-1)
}

// VisibleCount is how many of n points are revealed at progress
func VisibleCount(progress float64, n int) int {
	if n <= 0 {
		return 0
	}
	return min(max(int(math.Floor(progress*float64(n))), 0), n)
}

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/1F47E/go-navigator/pkg/format"
	"github.com/1F47E/go-navigator/pkg/geo"
	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/1F47E/go-navigator/pkg/playback"
	"github.com/charmbracelet/lipgloss"
)

const (
	graphPadding = 2
	graphSamples = 20
	endRevealAt  = 0.9
)

// sampleIndices picks roughly graphSamples evenly spaced waypoints
func sampleIndices(n int) []int {
	step := max(1, n/graphSamples)
	var out []int
	for i := 0; i < n; i += step {
		out = append(out, i)
	}
	return out
}

func (m Model) renderGraph() string {
	w, h := m.canvasSize()
	route := m.coord.State().Route
	if route == nil || len(route.Coordinates) == 0 {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, dimStyle.Render("No route to show"))
	}

	pts := route.Coordinates
	n := len(pts)
	p := m.player.Progress()
	visible := playback.VisibleCount(p, n)

	header := fmt.Sprintf("%s %s   %s %s   %s %d",
		subtitleStyle.Render("Distance"), statStyle.Render(format.Distance(route.Distance)),
		subtitleStyle.Render("Duration"), statStyle.Render(format.Duration(route.Duration)),
		subtitleStyle.Render("Waypoints"), n)

	gh := max(1, h-3)
	c := newCanvas(w, gh)
	sel := m.coord.State().Selection
	drawGraph(c, pts, sel.Start, sel.End, p, m.graphScale)

	state := infoStyle.Render(m.player.State().String())
	if m.player.Finished() {
		state = successStyle.Render("finished")
	}
	footer := fmt.Sprintf("%s %s  %d / %d points  %s  %s",
		m.progress.ViewAs(p), format.Percent(p), visible, n, state,
		dimStyle.Render(fmt.Sprintf("zoom %.2fx", m.graphScale)))

	return strings.Join([]string{header, c.String(), "", footer}, "\n")
}

// drawGraph lays the whole route out on c: the faded path, the revealed
// part, sampled nodes, the selected endpoints and the current position.
// Endpoints are placed where they were selected, which may be off the
// snapped path; without a selection the path ends are used.
func drawGraph(c *canvas, pts []models.Coordinate, start, end *models.Coordinate, progress, scale float64) {
	n := len(pts)
	box, _ := (&models.Route{Coordinates: pts}).Bounds()
	frame := geo.NewFrame(box, float64(c.w-1), float64(c.h-1), graphPadding).Scaled(scale)

	cells := make([][2]int, n)
	for i, pt := range pts {
		x, y := frame.Cell(pt)
		cells[i] = [2]int{x, y}
	}

	for i := 1; i < n; i++ {
		c.line(cells[i-1][0], cells[i-1][1], cells[i][0], cells[i][1], '·', inkFaded)
	}

	visible := playback.VisibleCount(progress, n)
	if visible == 1 {
		c.set(cells[0][0], cells[0][1], '•', inkPath)
	}
	for i := 1; i < visible; i++ {
		c.line(cells[i-1][0], cells[i-1][1], cells[i][0], cells[i][1], '•', inkPath)
	}

	samples := sampleIndices(n)
	for j, idx := range samples {
		if float64(j)/float64(len(samples)) > progress {
			break
		}
		c.set(cells[idx][0], cells[idx][1], rune('0'+j%10), inkNode)
	}

	if start == nil {
		start = &pts[0]
	}
	if end == nil {
		end = &pts[n-1]
	}
	sx, sy := frame.Cell(*start)
	c.set(sx, sy, 'S', inkStart)
	endInk := inkEndDim
	if progress > endRevealAt {
		endInk = inkEnd
	}
	ex, ey := frame.Cell(*end)
	c.set(ex, ey, 'E', endInk)

	if progress > 0 && progress < 1 && !math.IsNaN(progress) {
		i := playback.CurrentIndex(progress, n)
		c.set(cells[i][0], cells[i][1], '◆', inkCurrent)
	}
}

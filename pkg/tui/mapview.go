package tui

import (
	"math"

	"github.com/1F47E/go-navigator/pkg/geo"
)

// graticule spacings in degrees, finest first
var gridSteps = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 90}

// gridStep picks the finest spacing that leaves at least minCells between lines
func gridStep(degreesPerCell, minCells float64) float64 {
	for _, s := range gridSteps {
		if s/degreesPerCell >= minCells {
			return s
		}
	}
	return gridSteps[len(gridSteps)-1]
}

func crosses(lo, hi, step float64) bool {
	return math.Floor(lo/step) != math.Floor(hi/step)
}

func (m Model) renderMap() string {
	w, h := m.canvasSize()
	v := m.view
	c := newCanvas(w, h)

	drawGraticule(c, v)

	state := m.coord.State()
	if state.Route != nil {
		pts := state.Route.Coordinates
		for i := 1; i < len(pts); i++ {
			x0, y0, _ := v.Project(pts[i-1])
			x1, y1, _ := v.Project(pts[i])
			c.line(x0, y0, x1, y1, '•', inkPath)
		}
	}

	if s := state.Selection.Start; s != nil {
		if x, y, ok := v.Project(*s); ok {
			c.set(x, y, 'S', inkStart)
		}
	}
	if e := state.Selection.End; e != nil {
		if x, y, ok := v.Project(*e); ok {
			c.set(x, y, 'E', inkEnd)
		}
	}

	under := c.at(m.cursorX, m.cursorY)
	r := under.r
	if r == ' ' || under.k == inkGrid {
		r = '+'
	}
	c.set(m.cursorX, m.cursorY, r, inkCursor)

	return c.String()
}

func drawGraticule(c *canvas, v geo.Viewport) {
	dpc, dpr := v.DegreesPerColumn(), v.DegreesPerRow()
	lngStep := gridStep(dpc, 10)
	latStep := gridStep(dpr, 5)

	cols := make([]bool, c.w)
	for x := range cols {
		lo := v.Center.Lng + (float64(x)-float64(c.w)/2)*dpc
		cols[x] = crosses(lo, lo+dpc, lngStep)
	}
	for y := 0; y < c.h; y++ {
		hi := v.Center.Lat - (float64(y)-float64(c.h)/2)*dpr
		row := hi <= 90 && hi-dpr >= -90 && crosses(hi-dpr, hi, latStep)
		for x := 0; x < c.w; x++ {
			switch {
			case row && cols[x]:
				c.set(x, y, '┼', inkGrid)
			case row:
				c.set(x, y, '·', inkGrid)
			case cols[x]:
				c.set(x, y, '┊', inkGrid)
			}
		}
	}
}

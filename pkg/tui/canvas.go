package tui

import (
	"strings"
)

type cell struct {
	r rune
	k ink
}

// canvas is a fixed character grid drawn in layers; later writes win
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *canvas) at(x, y int) cell {
	if !c.inside(x, y) {
		return cell{}
	}
	return c.cells[y*c.w+x]
}

func (c *canvas) set(x, y int, r rune, k ink) {
	if c.inside(x, y) {
		c.cells[y*c.w+x] = cell{r: r, k: k}
	}
}

// text writes s left to right from (x, y), clipped to the grid
func (c *canvas) text(x, y int, s string, k ink) {
	for _, r := range s {
		c.set(x, y, r, k)
		x++
	}
}

// line draws a segment with Bresenham's algorithm after clipping it to the grid
func (c *canvas) line(x0, y0, x1, y1 int, r rune, k ink) {
	ax, ay, bx, by, ok := clip(float64(x0), float64(y0), float64(x1), float64(y1), float64(c.w-1), float64(c.h-1))
	if !ok {
		return
	}
	x0, y0, x1, y1 = round(ax), round(ay), round(bx), round(by)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, r, k)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// clip is Liang-Barsky against [0, maxX] x [0, maxY]
func clip(x0, y0, x1, y1, maxX, maxY float64) (ax, ay, bx, by float64, ok bool) {
	if maxX < 0 || maxY < 0 {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0, maxX - x0, y0, maxY - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// String renders the grid, styling runs of cells that share an ink
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		for start := 0; start < len(row); {
			end := start
			var run strings.Builder
			for end < len(row) && row[end].k == row[start].k {
				run.WriteRune(row[end].r)
				end++
			}
			if style, ok := inkStyles[row[start].k]; ok {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = end
		}
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(f float64) int {
	if f < 0 {
		return -int(-f + 0.5)
	}
	return int(f + 0.5)
}

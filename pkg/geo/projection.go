package geo

import (
	"math"

	"github.com/1F47E/go-navigator/pkg/models"
)

const (
	MinZoom = 1.0
	MaxZoom = 18.0

	// columns covering 360 degrees of longitude at zoom 0
	worldColumns = 64.0
	// terminal cells are roughly twice as tall as they are wide
	cellAspect = 2.0
)

// Viewport maps a geographic window onto a Width x Height character grid
// using an equirectangular projection centred on Center.
type Viewport struct {
	Center models.Coordinate
	Zoom   float64
	Width  int
	Height int
}

func NewViewport(center models.Coordinate, zoom float64, width, height int) Viewport {
	return Viewport{Center: center, Zoom: clampZoom(zoom), Width: width, Height: height}
}

// DegreesPerColumn is the longitude covered by one grid column
func (v Viewport) DegreesPerColumn() float64 {
	return 360.0 / (worldColumns * math.Pow(2, v.Zoom))
}

// DegreesPerRow is the latitude covered by one grid row
func (v Viewport) DegreesPerRow() float64 {
	return v.DegreesPerColumn() * cellAspect
}

// Project returns the grid cell containing c. ok is false when the cell is off-grid.
func (v Viewport) Project(c models.Coordinate) (x, y int, ok bool) {
	fx := (c.Lng-v.Center.Lng)/v.DegreesPerColumn() + float64(v.Width)/2
	fy := (v.Center.Lat-c.Lat)/v.DegreesPerRow() + float64(v.Height)/2
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	return x, y, x >= 0 && x < v.Width && y >= 0 && y < v.Height
}

// Unproject returns the coordinate at the centre of grid cell (x, y)
func (v Viewport) Unproject(x, y int) models.Coordinate {
	lng := v.Center.Lng + (float64(x)+0.5-float64(v.Width)/2)*v.DegreesPerColumn()
	lat := v.Center.Lat - (float64(y)+0.5-float64(v.Height)/2)*v.DegreesPerRow()
	return normalize(models.Coordinate{Lat: lat, Lng: lng})
}

// Bounds returns the geographic box visible in the viewport
func (v Viewport) Bounds() models.BoundingBox {
	halfLng := float64(v.Width) / 2 * v.DegreesPerColumn()
	halfLat := float64(v.Height) / 2 * v.DegreesPerRow()
	return models.BoundingBox{
		BottomLeft: models.Coordinate{Lat: v.Center.Lat - halfLat, Lng: v.Center.Lng - halfLng},
		TopRight:   models.Coordinate{Lat: v.Center.Lat + halfLat, Lng: v.Center.Lng + halfLng},
	}
}

// Pan moves the centre by dx columns and dy rows
func (v Viewport) Pan(dx, dy int) Viewport {
	v.Center = normalize(models.Coordinate{
		Lat: v.Center.Lat - float64(dy)*v.DegreesPerRow(),
		Lng: v.Center.Lng + float64(dx)*v.DegreesPerColumn(),
	})
	return v
}

func (v Viewport) WithZoom(zoom float64) Viewport {
	v.Zoom = clampZoom(zoom)
	return v
}

func (v Viewport) WithCenter(c models.Coordinate) Viewport {
	v.Center = normalize(c)
	return v
}

func (v Viewport) Resize(width, height int) Viewport {
	v.Width, v.Height = width, height
	return v
}

// Fit centres the viewport on box and picks the deepest whole zoom level
// at which the box fits inside the grid minus padding cells on each side.
func (v Viewport) Fit(box models.BoundingBox, padding int) Viewport {
	v.Center = normalize(box.Center())
	latSpan, lngSpan := box.Span()
	cols := float64(max(1, v.Width-2*padding))
	rows := float64(max(1, v.Height-2*padding))

	for zoom := MaxZoom; zoom > MinZoom; zoom-- {
		v.Zoom = zoom
		if lngSpan/v.DegreesPerColumn() <= cols && latSpan/v.DegreesPerRow() <= rows {
			return v
		}
	}
	v.Zoom = MinZoom
	return v
}

func clampZoom(zoom float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, zoom))
}

// normalize clamps latitude and wraps longitude into [-180, 180)
func normalize(c models.Coordinate) models.Coordinate {
	c.Lat = math.Max(-90, math.Min(90, c.Lat))
	if c.Lng < -180 || c.Lng > 180 {
		c.Lng = math.Mod(math.Mod(c.Lng+180, 360)+360, 360) - 180
	}
	return c
}

// Frame scales a bounding box onto a fixed drawing surface with padding,
// the way the graph view lays out a whole route.
type Frame struct {
	box     models.BoundingBox
	width   float64
	height  float64
	padding float64
	scale   float64
}

func NewFrame(box models.BoundingBox, width, height, padding float64) Frame {
	return Frame{box: box, width: width, height: height, padding: padding, scale: 1}
}

// Scaled returns a copy of the frame zoomed by scale around the surface centre
func (f Frame) Scaled(scale float64) Frame {
	f.scale = scale
	return f
}

// X maps a longitude to a horizontal surface position. A zero span counts as 1.
func (f Frame) X(lng float64) float64 {
	_, span := f.box.Span()
	if span == 0 {
		span = 1
	}
	x := f.padding + (lng-f.box.BottomLeft.Lng)/span*(f.width-2*f.padding)
	return f.width/2 + (x-f.width/2)*f.scale
}

// Y maps a latitude to a vertical surface position, north up
func (f Frame) Y(lat float64) float64 {
	span, _ := f.box.Span()
	if span == 0 {
		span = 1
	}
	y := f.height - f.padding - (lat-f.box.BottomLeft.Lat)/span*(f.height-2*f.padding)
	return f.height/2 + (y-f.height/2)*f.scale
}

// Cell maps a coordinate to the integer cell of the surface
func (f Frame) Cell(c models.Coordinate) (int, int) {
	return int(math.Round(f.X(c.Lng))), int(math.Round(f.Y(c.Lat)))
}

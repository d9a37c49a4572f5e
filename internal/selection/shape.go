package selection

import (
	"fmt"
	"math"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// Shape is a user-drawn selection outline. The concrete types are
// Rectangle, Ellipse, Polygon and Lasso.
type Shape interface {
	// Outline returns the vertices of the shape's boundary in image
	// coordinates. The outline is closed implicitly.
	Outline() []mask.Point

	// Rasterize turns the shape into a width x height mask.
	Rasterize(width, height int) *mask.Mask
}

// Rectangle is an axis-aligned box dragged from Origin. Negative sizes
// extend up or to the left.
type Rectangle struct {
	Origin mask.Point `json:"origin"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
}

func (r Rectangle) normalized() Rectangle {
	if r.Width < 0 {
		r.Origin.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Origin.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Outline returns the four corners clockwise from the top-left.
func (r Rectangle) Outline() []mask.Point {
	n := r.normalized()
	x0, y0 := n.Origin.X, n.Origin.Y
	x1, y1 := x0+n.Width, y0+n.Height
	return []mask.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// Rasterize covers columns [x, x+width) and rows [y, y+height).
func (r Rectangle) Rasterize(width, height int) *mask.Mask {
	return Rasterize(r.Outline(), width, height, EvenOdd)
}

// Ellipse is inscribed in the box dragged from Origin to Corner.
type Ellipse struct {
	Origin mask.Point `json:"origin"`
	Corner mask.Point `json:"corner"`
}

// Center returns the ellipse center rounded to the nearest pixel, and its
// radii.
func (e Ellipse) Center() (cx, cy int, rx, ry float64) {
	fx := float64(e.Corner.X-e.Origin.X)/2 + float64(e.Origin.X)
	fy := float64(e.Corner.Y-e.Origin.Y)/2 + float64(e.Origin.Y)
	rx = math.Abs(float64(e.Corner.X-e.Origin.X) / 2)
	ry = math.Abs(float64(e.Corner.Y-e.Origin.Y) / 2)
	return roundHalfUp(fx), roundHalfUp(fy), rx, ry
}

// Outline samples the lower-right quadrant in half-pixel steps of y and
// mirrors it into the other three quadrants. A zero vertical radius yields
// no points.
func (e Ellipse) Outline() []mask.Point {
	cx, cy, rx, ry := e.Center()
	if ry == 0 {
		return nil
	}

	var quadrant []mask.Point
	for y := float64(cy); y < float64(cy)+ry; y += 0.5 {
		dy := y - float64(cy)
		x := rx*math.Sqrt(1-dy*dy/(ry*ry)) + float64(cx)
		quadrant = append(quadrant, mask.Point{X: roundHalfUp(x), Y: roundHalfUp(y)})
	}

	n := len(quadrant)
	points := make([]mask.Point, 0, 4*n)
	points = append(points, quadrant...)
	for i := n - 1; i >= 0; i-- {
		points = append(points, mask.Point{X: 2*cx - quadrant[i].X, Y: quadrant[i].Y})
	}
	for i := 0; i < n; i++ {
		points = append(points, mask.Point{X: 2*cx - quadrant[i].X, Y: 2*cy - quadrant[i].Y})
	}
	for i := n - 1; i >= 0; i-- {
		points = append(points, mask.Point{X: quadrant[i].X, Y: 2*cy - quadrant[i].Y})
	}
	return points
}

// Rasterize fills the sampled outline.
func (e Ellipse) Rasterize(width, height int) *mask.Mask {
	return Rasterize(e.Outline(), width, height, NonZero)
}

// Polygon is a sequence of clicked vertices joined by straight edges.
type Polygon struct {
	Points []mask.Point `json:"points"`
}

// Outline returns the vertices.
func (p Polygon) Outline() []mask.Point {
	return append([]mask.Point(nil), p.Points...)
}

// Rasterize fills the polygon with the even-odd rule and includes the pixels
// of its edges.
func (p Polygon) Rasterize(width, height int) *mask.Mask {
	return RasterizeStroke(p.Points, width, height, EvenOdd)
}

// Lasso is a freehand stroke. Self-intersections are filled.
type Lasso struct {
	Points []mask.Point `json:"points"`
}

// Outline returns the stroke joined into an 8-connected pixel path.
func (l Lasso) Outline() []mask.Point {
	return ConnectPoints(l.Points)
}

// Rasterize fills the stroke with the nonzero rule and includes the pixels
// it passes through.
func (l Lasso) Rasterize(width, height int) *mask.Mask {
	return RasterizeStroke(l.Points, width, height, NonZero)
}

// CloseDistance is how near (in pixels) a click must land to the first
// vertex of a polygon or lasso to close it.
const CloseDistance = 4.0

// Closes reports whether a click at p closes an outline that started at
// origin.
func Closes(origin, p mask.Point) bool {
	return math.Hypot(float64(p.X-origin.X), float64(p.Y-origin.Y)) < CloseDistance
}

// Spec is the wire form of a Shape.
type Spec struct {
	Kind   string       `json:"kind"`
	Origin mask.Point   `json:"origin"`
	Corner mask.Point   `json:"corner"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Points []mask.Point `json:"points"`
}

// Shape validates s and returns the shape it describes.
func (s Spec) Shape() (Shape, error) {
	switch s.Kind {
	case "rectangle":
		if s.Width == 0 || s.Height == 0 {
			return nil, fmt.Errorf("rectangle needs a non-zero width and height")
		}
		return Rectangle{Origin: s.Origin, Width: s.Width, Height: s.Height}, nil
	case "ellipse":
		if s.Corner.X == s.Origin.X || s.Corner.Y == s.Origin.Y {
			return nil, fmt.Errorf("ellipse needs a corner that differs from its origin on both axes")
		}
		return Ellipse{Origin: s.Origin, Corner: s.Corner}, nil
	case "polygon":
		if len(s.Points) < 3 {
			return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(s.Points))
		}
		return Polygon{Points: s.Points}, nil
	case "lasso":
		if len(s.Points) < 2 {
			return nil, fmt.Errorf("lasso needs at least 2 points, got %d", len(s.Points))
		}
		return Lasso{Points: s.Points}, nil
	}
	return nil, fmt.Errorf("unknown shape kind: %q", s.Kind)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

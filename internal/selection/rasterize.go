package selection

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// FillRule decides which regions of a self-intersecting or multi-path
// polygon are inside.
type FillRule int

const (
	// EvenOdd fills points crossed an odd number of times by a ray.
	EvenOdd FillRule = iota

	// NonZero fills points whose winding number is not zero. Combined with
	// a reversed inner path this cuts holes (see InvertContour).
	NonZero
)

// String returns the rule's name as used in tool arguments.
func (r FillRule) String() string {
	switch r {
	case EvenOdd:
		return "evenodd"
	case NonZero:
		return "nonzero"
	}
	return fmt.Sprintf("FillRule(%d)", int(r))
}

// ParseFillRule maps a tool argument to a FillRule. The empty string selects
// EvenOdd.
func ParseFillRule(s string) (FillRule, error) {
	switch s {
	case "", "evenodd":
		return EvenOdd, nil
	case "nonzero":
		return NonZero, nil
	}
	return 0, fmt.Errorf("unknown fill rule: %s", s)
}

type edge struct {
	x0, y0 float64
	x1, y1 float64
	dir    int
}

type crossing struct {
	x   float64
	dir int
}

// Rasterize fills the closed polygon points into a width x height mask. The
// polygon is closed implicitly; a repeated first point is harmless.
//
// Pixel (x, y) is set when its center (x+0.5, y+0.5) is inside the polygon,
// so a polygon with integer vertices covers the pixels of its interior and
// its top and left edges.
func Rasterize(points []mask.Point, width, height int, rule FillRule) *mask.Mask {
	return RasterizePaths([][]mask.Point{points}, width, height, rule)
}

// RasterizePaths fills several closed subpaths at once, combining them with
// the fill rule.
func RasterizePaths(paths [][]mask.Point, width, height int, rule FillRule) *mask.Mask {
	m := mask.New(width, height)

	var edges []edge
	for _, p := range paths {
		n := len(p)
		for i := 0; i < n; i++ {
			a, b := p[i], p[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			e := edge{x0: float64(a.X), y0: float64(a.Y), x1: float64(b.X), y1: float64(b.Y), dir: 1}
			if e.y0 > e.y1 {
				e.x0, e.y0, e.x1, e.y1 = e.x1, e.y1, e.x0, e.y0
				e.dir = -1
			}
			edges = append(edges, e)
		}
	}
	if len(edges) == 0 {
		return m
	}

	var xs []crossing
	for y := 0; y < height; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for _, e := range edges {
			if yc < e.y0 || yc >= e.y1 {
				continue
			}
			x := e.x0 + (yc-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
			xs = append(xs, crossing{x: x, dir: e.dir})
		}
		if len(xs) < 2 {
			continue
		}
		sort.Slice(xs, func(i, j int) bool { return xs[i].x < xs[j].x })

		winding := 0
		for i := 0; i < len(xs)-1; i++ {
			if rule == NonZero {
				winding += xs[i].dir
				if winding == 0 {
					continue
				}
			} else if i%2 == 1 {
				continue
			}
			fillSpan(m, y, xs[i].x, xs[i+1].x)
		}
	}
	return m
}

// fillSpan sets the pixels of row y whose centers lie in [xa, xb).
func fillSpan(m *mask.Mask, y int, xa, xb float64) {
	start := max(int(math.Ceil(xa-0.5)), 0)
	end := min(int(math.Ceil(xb-0.5)), m.Width)
	for x := start; x < end; x++ {
		m.Set(x, y)
	}
}

// ConnectPoints joins consecutive points with Bresenham line segments and
// returns the resulting 8-connected path. Each vertex appears once; the path
// is not closed.
func ConnectPoints(points []mask.Point) []mask.Point {
	if len(points) == 0 {
		return nil
	}
	out := []mask.Point{points[0]}
	for i := 1; i < len(points); i++ {
		seg := DrawLine(points[i-1], points[i])
		out = append(out, seg[1:]...)
	}
	return out
}

// DrawLine returns the Bresenham line from a to b, both ends included.
func DrawLine(a, b mask.Point) []mask.Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	line := make([]mask.Point, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	e := dx + dy
	for {
		line = append(line, mask.Point{X: x, Y: y})
		if x == b.X && y == b.Y {
			return line
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// RasterizeStroke fills a freehand or polygonal outline and also sets every
// pixel the outline passes through, so thin strokes are never lost.
func RasterizeStroke(points []mask.Point, width, height int, rule FillRule) *mask.Mask {
	m := Rasterize(points, width, height, rule)
	if len(points) == 0 {
		return m
	}
	closed := append(append([]mask.Point(nil), points...), points[0])
	for _, p := range ConnectPoints(closed) {
		if p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height {
			m.Set(p.X, p.Y)
		}
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

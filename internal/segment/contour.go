package segment

import "github.com/ironsheep/segment-tools-mcp/internal/mask"

// Contour is a closed polygon traced along a mask boundary. The first point
// is repeated at the end.
type Contour struct {
	// Points are image coordinates in tracing order (clockwise in image
	// space for outer contours).
	Points []mask.Point `json:"points"`

	// Inner is true for the boundary of a hole.
	Inner bool `json:"inner"`

	// Label identifies the region within one TraceContours call. Labels
	// increase strictly in tracing order.
	Label int `json:"label"`

	// InitialCount is the number of points before simplification. Zero for
	// a contour that has not been through SimplifyContours.
	InitialCount int `json:"initial_count,omitempty"`
}

// IsClosed reports whether the first and last points coincide.
func (c Contour) IsClosed() bool {
	n := len(c.Points)
	return n > 1 && c.Points[0] == c.Points[n-1]
}

// Labels is the per-pixel label buffer used while tracing a prepared mask.
// Zero is unlabeled, -1 marks background already inspected by the tracer,
// positive values are contour labels.
type Labels []int32

// Compass offsets indexed by direction, clockwise in image space:
//
//	5 6 7
//	4 X 0
//	3 2 1
var directions = [8]mask.Point{
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
	{X: 0, Y: -1},
	{X: 1, Y: -1},
}

const (
	outerStartDir = 6
	innerStartDir = 2
)

// PrepareMask crops m to its bounds plus a one-pixel background frame, so
// every foreground pixel of the result has eight in-range neighbors. The
// offset maps result coordinates back to m.
//
// An empty mask yields a 2x2 all-background result.
func PrepareMask(m *mask.Mask) mask.BoundaryMask {
	b := m.Bounds
	if b.IsEmpty() {
		return mask.BoundaryMask{Data: make([]uint8, 4), Width: 2, Height: 2}
	}

	rw, rh := b.Width()+2, b.Height()+2
	res := mask.BoundaryMask{
		Data:   make([]uint8, rw*rh),
		Width:  rw,
		Height: rh,
		Offset: mask.Point{X: b.MinX - 1, Y: b.MinY - 1},
	}
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			if m.Data[y*m.Width+x] == 1 {
				res.Data[(y-b.MinY+1)*rw+(x-b.MinX+1)] = 1
			}
		}
	}
	return res
}

// TraceContours follows every outer boundary and hole boundary of m.
//
// The mask is scanned row by row. A foreground pixel whose upper neighbor is
// unlabeled background starts an outer contour; one whose lower neighbor is
// unlabeled background starts an inner contour. Each blob yields one outer
// contour and one inner contour per hole. Isolated single pixels produce no
// contour.
func TraceContours(m *mask.Mask) []Contour {
	p := PrepareMask(m)
	w, h := p.Width, p.Height
	labels := make(Labels, len(p.Data))

	var contours []Contour
	label := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			k := y*w + x
			if p.Data[k] != 1 {
				continue
			}
			for _, i := range [2]int{-w, w} {
				if p.Data[k+i] != 0 || labels[k+i] != 0 {
					continue
				}
				inner := i == w
				label++
				if c, ok := TraceContour(p, labels, x, y, inner, label); ok {
					contours = append(contours, c)
				}
			}
		}
	}
	return contours
}

// TraceContour follows one boundary of the prepared mask p starting at the
// local pixel (x, y), writing label into labels for every contour pixel and
// -1 for every background pixel it inspects.
//
// Tracing stops when the walk returns to its first two points in order.
// Returns ok=false for a pixel with no foreground neighbor. Points in the
// result are translated by p.Offset.
func TraceContour(p mask.BoundaryMask, labels Labels, x, y int, inner bool, label int) (Contour, bool) {
	w := p.Width
	dir := outerStartDir
	if inner {
		dir = innerStartDir
	}

	first := mask.Point{X: x, Y: y}
	current, previous := first, first
	var second mask.Point
	haveSecond := false
	var points []mask.Point

	for {
		labels[current.Y*w+current.X] = int32(label)

		found := false
		var next mask.Point
		for j := 0; j < 8; j++ {
			dir = (dir + 1) % 8
			d := directions[dir]
			next = mask.Point{X: current.X + d.X, Y: current.Y + d.Y}
			k := next.Y*w + next.X
			if p.Data[k] == 1 {
				labels[k] = int32(label)
				found = true
				break
			}
			labels[k] = -1
		}
		if !found {
			return Contour{}, false
		}

		current = next
		if haveSecond {
			if previous == first && current == second {
				break
			}
		} else {
			second = next
			haveSecond = true
		}
		points = append(points, mask.Point{X: previous.X + p.Offset.X, Y: previous.Y + p.Offset.Y})
		previous = current
		dir = (dir + 4) % 8
	}

	points = append(points, mask.Point{X: first.X + p.Offset.X, Y: first.Y + p.Offset.Y})
	return Contour{Points: points, Inner: inner, Label: label}, true
}

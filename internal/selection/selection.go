package selection

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// Selection is a category-tagged region: its outline, its run-length
// encoded mask and the bounding box of the outline.
type Selection struct {
	ID          string           `json:"id"`
	CategoryID  string           `json:"category_id"`
	BoundingBox mask.BoundingBox `json:"bounding_box"`
	Contour     []mask.Point     `json:"contour"`
	Mask        mask.RLE         `json:"mask"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
}

// New tags a mask and its outline with a fresh random ID.
func New(categoryID string, contour []mask.Point, m *mask.Mask) *Selection {
	return &Selection{
		ID:          uuid.NewString(),
		CategoryID:  categoryID,
		BoundingBox: ContourBounds(contour),
		Contour:     contour,
		Mask:        mask.EncodeMask(m),
		Width:       m.Width,
		Height:      m.Height,
	}
}

// FromShape rasterizes a drawn shape into a selection. The contour is the
// shape's outline.
func FromShape(s Shape, width, height int, categoryID string) *Selection {
	return New(categoryID, s.Outline(), s.Rasterize(width, height))
}

// FromSegmentation builds a selection from a QuickSelect result, using the
// largest simplified outer contour as the outline. Returns false when the
// result has no outer contour.
func FromSegmentation(res *segment.Result, categoryID string) (*Selection, bool) {
	outer, ok := res.Outer()
	if !ok {
		return nil, false
	}
	return New(categoryID, outer.Points, res.Mask), true
}

// Decode expands the selection's mask.
func (s *Selection) Decode() (*mask.Mask, error) {
	return mask.DecodeMask(s.Mask, s.Width, s.Height)
}

// ContourBounds returns the bounding box of the contour points, or the
// empty sentinel for a 0x0 image when there are none.
func ContourBounds(points []mask.Point) mask.BoundingBox {
	b := mask.EmptyBounds(0, 0)
	for _, p := range points {
		b.Extend(p.X, p.Y)
	}
	return b
}

// Op is a boolean combination of two selections.
type Op int

const (
	// OpAdd keeps pixels set in either selection.
	OpAdd Op = iota

	// OpSubtract clears the overlap of the two selections from the newly
	// selected mask.
	OpSubtract

	// OpIntersect keeps only pixels set in both selections.
	OpIntersect
)

// String returns the operation's name as used in tool arguments.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpIntersect:
		return "intersect"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp maps a tool argument to an Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "add", "union":
		return OpAdd, nil
	case "subtract":
		return OpSubtract, nil
	case "intersect":
		return OpIntersect, nil
	}
	return 0, fmt.Errorf("unknown selection operation: %s", s)
}

// Combine applies op to the current selection and a newly selected one. The
// result keeps the ID and category of current; its outline is re-traced
// from the combined mask.
//
// Returns an error if the selections cover different image sizes or either
// mask does not decode.
func Combine(op Op, current, selected *Selection) (*Selection, error) {
	if current.Width != selected.Width || current.Height != selected.Height {
		return nil, fmt.Errorf("cannot combine %dx%d selection with %dx%d selection",
			current.Width, current.Height, selected.Width, selected.Height)
	}
	a, err := current.Decode()
	if err != nil {
		return nil, fmt.Errorf("current selection: %w", err)
	}
	b, err := selected.Decode()
	if err != nil {
		return nil, fmt.Errorf("selected selection: %w", err)
	}

	pa, pb := mask.ToPlane(a), mask.ToPlane(b)
	var plane []byte
	switch op {
	case OpAdd:
		plane = mask.Union(pa, pb)
	case OpSubtract:
		plane = mask.Subtract(pa, pb)
	case OpIntersect:
		plane = mask.Intersect(pa, pb)
	default:
		return nil, fmt.Errorf("unknown selection operation: %v", op)
	}

	m := mask.FromPlane(plane, current.Width, current.Height)
	var contour []mask.Point
	if outer, ok := segment.LargestOuter(segment.TraceContours(m)); ok {
		contour = outer.Points
	}
	return &Selection{
		ID:          current.ID,
		CategoryID:  current.CategoryID,
		BoundingBox: ContourBounds(contour),
		Contour:     contour,
		Mask:        mask.EncodeMask(m),
		Width:       current.Width,
		Height:      current.Height,
	}, nil
}

// Invert returns the complement of the selection. The mask is inverted
// pixel by pixel; the contour becomes the image frame with the old outline,
// turned clockwise, cut out as a hole (see InvertContour). The bounding box
// is that of the inverted mask.
func (s *Selection) Invert() (*Selection, error) {
	if err := s.Mask.Validate(); err != nil {
		return nil, err
	}
	if s.Mask.Len() != s.Width*s.Height {
		return nil, fmt.Errorf("mask covers %d pixels, selection is %dx%d", s.Mask.Len(), s.Width, s.Height)
	}
	inv := mask.InvertEncoded(s.Mask)
	m, err := mask.DecodeMask(inv, s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	return &Selection{
		ID:          s.ID,
		CategoryID:  s.CategoryID,
		BoundingBox: m.Bounds,
		Contour:     InvertContour(clockwise(s.Contour), Frame(s.Width, s.Height)),
		Mask:        inv,
		Width:       s.Width,
		Height:      s.Height,
	}, nil
}

// clockwise returns points wound the same way as Frame, reversing a copy
// when needed. User-drawn outlines keep the order they were clicked in.
func clockwise(points []mask.Point) []mask.Point {
	if twiceSignedArea(points) >= 0 {
		return points
	}
	out := make([]mask.Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// DefaultFrame is the canvas outline used by InvertContour when no frame
// is given.
var DefaultFrame = Frame(512, 512)

// Frame returns the closed clockwise outline of a width x height canvas.
func Frame(width, height int) []mask.Point {
	return []mask.Point{
		{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: height}, {X: 0, Y: height}, {X: 0, Y: 0},
	}
}

// InvertContour reverses the winding of points and prepends frame. Filled
// with the nonzero rule, the result covers the frame minus the original
// polygon. A nil frame selects DefaultFrame.
//
// The reversed outline is closed on its own first point, so the edge from
// the frame into the hole and the implicit closing edge back out of it
// cancel.
func InvertContour(points []mask.Point, frame []mask.Point) []mask.Point {
	if frame == nil {
		frame = DefaultFrame
	}
	out := make([]mask.Point, 0, len(frame)+len(points)+1)
	out = append(out, frame...)
	for i := len(points) - 1; i >= 0; i-- {
		out = append(out, points[i])
	}
	if n := len(points); n > 0 && points[0] != points[n-1] {
		out = append(out, points[n-1])
	}
	return out
}

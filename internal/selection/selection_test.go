package selection

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

func rectSelection(t *testing.T, x, y, w, h int) *Selection {
	t.Helper()
	return FromShape(Rectangle{Origin: mask.Point{X: x, Y: y}, Width: w, Height: h}, 10, 10, "cat")
}

func decode(t *testing.T, s *Selection) *mask.Mask {
	t.Helper()
	m, err := s.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return m
}

func TestFromShape(t *testing.T) {
	s := rectSelection(t, 2, 2, 4, 3)

	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", s.ID, err)
	}
	if s.CategoryID != "cat" {
		t.Errorf("category: got %q", s.CategoryID)
	}
	if s.Width != 10 || s.Height != 10 {
		t.Errorf("size: got %dx%d, want 10x10", s.Width, s.Height)
	}
	want := mask.BoundingBox{MinX: 2, MinY: 2, MaxX: 6, MaxY: 5}
	if s.BoundingBox != want {
		t.Errorf("bounding box: got %+v, want %+v", s.BoundingBox, want)
	}
	if got := decode(t, s).Count(); got != 12 {
		t.Errorf("area: got %d, want 12", got)
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	m := mask.New(2, 2)
	if New("", nil, m).ID == New("", nil, m).ID {
		t.Error("two selections share an ID")
	}
}

func TestContourBounds(t *testing.T) {
	got := ContourBounds(pts(3, 7, 1, 2, 5, 4))
	want := mask.BoundingBox{MinX: 1, MinY: 2, MaxX: 5, MaxY: 7}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !ContourBounds(nil).IsEmpty() {
		t.Error("no points should give an empty box")
	}
}

func TestFromSegmentation(t *testing.T) {
	m := mask.New(10, 10)
	for y := 3; y < 7; y++ {
		for x := 3; x < 7; x++ {
			m.Set(x, y)
		}
	}
	contours := segment.TraceContours(m)
	res := &segment.Result{Mask: m, Contours: contours, Simplified: segment.SimplifyContours(contours, 1, 30)}

	s, ok := FromSegmentation(res, "leaf")
	if !ok {
		t.Fatal("expected a selection")
	}
	want := mask.BoundingBox{MinX: 3, MinY: 3, MaxX: 6, MaxY: 6}
	if s.BoundingBox != want {
		t.Errorf("bounding box: got %+v, want %+v", s.BoundingBox, want)
	}
	if s.Mask.Foreground() != 16 {
		t.Errorf("area: got %d, want 16", s.Mask.Foreground())
	}

	if _, ok := FromSegmentation(&segment.Result{Mask: mask.New(4, 4)}, "leaf"); ok {
		t.Error("expected no selection without contours")
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name    string
		op      Op
		area    int
		set     []mask.Point
		cleared []mask.Point
	}{
		{"add", OpAdd, 28, pts(0, 0, 5, 5), pts(6, 6)},
		{"intersect", OpIntersect, 4, pts(2, 2, 3, 3), pts(0, 0, 5, 5)},
		// Subtract removes the overlap from the new selection, not from the
		// current one.
		{"subtract", OpSubtract, 12, pts(5, 5, 4, 2), pts(0, 0, 2, 2, 3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := rectSelection(t, 0, 0, 4, 4)
			selected := rectSelection(t, 2, 2, 4, 4)

			got, err := Combine(tt.op, current, selected)
			if err != nil {
				t.Fatalf("Combine failed: %v", err)
			}
			if got.ID != current.ID || got.CategoryID != current.CategoryID {
				t.Error("combined selection should keep the current identity")
			}
			m := decode(t, got)
			if m.Count() != tt.area {
				t.Errorf("area: got %d, want %d", m.Count(), tt.area)
			}
			for _, p := range tt.set {
				if !m.At(p.X, p.Y) {
					t.Errorf("pixel %+v should be set", p)
				}
			}
			for _, p := range tt.cleared {
				if m.At(p.X, p.Y) {
					t.Errorf("pixel %+v should be clear", p)
				}
			}
			if len(got.Contour) == 0 {
				t.Error("expected a re-traced contour")
			}
		})
	}
}

func TestCombine_SizeMismatch(t *testing.T) {
	a := rectSelection(t, 0, 0, 2, 2)
	b := FromShape(Rectangle{Width: 2, Height: 2}, 8, 8, "cat")
	if _, err := Combine(OpAdd, a, b); err == nil {
		t.Error("expected error for different image sizes")
	}
}

func TestCombine_EmptyResult(t *testing.T) {
	a := rectSelection(t, 0, 0, 2, 2)
	b := rectSelection(t, 5, 5, 2, 2)
	got, err := Combine(OpIntersect, a, b)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if got.Mask.Foreground() != 0 || len(got.Contour) != 0 {
		t.Errorf("expected empty selection, got area %d and %d points", got.Mask.Foreground(), len(got.Contour))
	}
}

func TestInvert(t *testing.T) {
	s := rectSelection(t, 2, 2, 4, 3)
	inv, err := s.Invert()
	if err != nil {
		t.Fatalf("Invert failed: %v", err)
	}

	if inv.Mask.Foreground() != 100-12 {
		t.Errorf("area: got %d, want 88", inv.Mask.Foreground())
	}
	frame := Frame(10, 10)
	if !reflect.DeepEqual(inv.Contour[:len(frame)], frame) {
		t.Errorf("contour should start with the image frame, got %v", inv.Contour[:len(frame)])
	}
	want := mask.BoundingBox{MinX: 0, MinY: 0, MaxX: 9, MaxY: 9}
	if inv.BoundingBox != want {
		t.Errorf("bounding box: got %+v, want %+v", inv.BoundingBox, want)
	}

	back, err := inv.Invert()
	if err != nil {
		t.Fatalf("second Invert failed: %v", err)
	}
	if !reflect.DeepEqual(back.Mask, s.Mask) {
		t.Errorf("double inversion: got %v, want %v", back.Mask, s.Mask)
	}
}

func TestInvert_CounterClockwiseOutline(t *testing.T) {
	square := pts(2, 2, 7, 2, 7, 7, 2, 7)
	ccw := pts(2, 2, 2, 7, 7, 7, 7, 2)

	for name, points := range map[string][]mask.Point{"clockwise": square, "counter-clockwise": ccw} {
		t.Run(name, func(t *testing.T) {
			s := FromShape(Polygon{Points: points}, 10, 10, "cat")
			inv, err := s.Invert()
			if err != nil {
				t.Fatalf("Invert failed: %v", err)
			}

			filled := Rasterize(inv.Contour, 10, 10, NonZero)
			if filled.At(4, 4) {
				t.Error("inverted contour covers the inside of the outline")
			}
			if want := 100 - Rasterize(points, 10, 10, EvenOdd).Count(); filled.Count() != want {
				t.Errorf("inverted contour area: got %d, want %d", filled.Count(), want)
			}
		})
	}
}

func TestInvert_BadMask(t *testing.T) {
	s := rectSelection(t, 2, 2, 4, 3)
	s.Width = 5
	if _, err := s.Invert(); err == nil {
		t.Error("expected error when the mask does not cover the image")
	}
}

func TestInvertContour_FillsComplement(t *testing.T) {
	outline := Rectangle{Origin: mask.Point{X: 2, Y: 2}, Width: 4, Height: 4}.Outline()

	inv := InvertContour(outline, Frame(10, 10))
	got := Rasterize(inv, 10, 10, NonZero)
	want := mask.FromPlane(mask.Invert(mask.ToPlane(Rasterize(outline, 10, 10, NonZero))), 10, 10)

	if !reflect.DeepEqual(got.Data, want.Data) {
		t.Error("inverted contour does not fill the complement of the original")
	}
	if got.Count() != 84 {
		t.Errorf("area: got %d, want 84", got.Count())
	}
}

func TestInvertContour_DefaultFrame(t *testing.T) {
	got := InvertContour(pts(1, 1, 3, 1, 3, 3), nil)
	if !reflect.DeepEqual(got[:5], DefaultFrame) {
		t.Errorf("frame: got %v", got[:5])
	}
	if !reflect.DeepEqual(got[5:], pts(3, 3, 3, 1, 1, 1, 3, 3)) {
		t.Errorf("reversed outline: got %v", got[5:])
	}
}

func TestParseOp(t *testing.T) {
	tests := []struct {
		in      string
		want    Op
		wantErr bool
	}{
		{"add", OpAdd, false},
		{"union", OpAdd, false},
		{"subtract", OpSubtract, false},
		{"intersect", OpIntersect, false},
		{"xor", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseOp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseOp(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() == "" {
			t.Errorf("empty name for %v", got)
		}
	}
}

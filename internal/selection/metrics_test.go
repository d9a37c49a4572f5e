package selection

import (
	"math"
	"testing"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

func TestPerimeter(t *testing.T) {
	tests := []struct {
		name   string
		points []mask.Point
		want   float64
	}{
		{"empty", nil, 0},
		{"single", pts(3, 3), 0},
		{"segment out and back", pts(0, 0, 3, 4), 10},
		{"square", pts(0, 0, 2, 0, 2, 2, 0, 2), 8},
		{"already closed", pts(0, 0, 2, 0, 2, 2, 0, 2, 0, 0), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Perimeter(tt.points); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %g, want %g", got, tt.want)
			}
		})
	}
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name   string
		points []mask.Point
		want   float64
	}{
		{"too few", pts(0, 0, 4, 0), 0},
		{"rectangle", pts(0, 0, 4, 0, 4, 3, 0, 3), 12},
		{"rectangle reversed", pts(0, 3, 4, 3, 4, 0, 0, 0), 12},
		{"triangle", pts(0, 0, 4, 0, 0, 4), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonArea(tt.points); got != tt.want {
				t.Errorf("got %g, want %g", got, tt.want)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	s := rectSelection(t, 2, 2, 4, 3)
	got, err := Measure(s)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}

	if got.Area != 12 {
		t.Errorf("area: got %d, want 12", got.Area)
	}
	if math.Abs(got.Coverage-0.12) > 1e-9 {
		t.Errorf("coverage: got %g, want 0.12", got.Coverage)
	}
	if got.Perimeter != 14 {
		t.Errorf("perimeter: got %g, want 14", got.Perimeter)
	}
	if got.PolygonArea != 12 {
		t.Errorf("polygon area: got %g, want 12", got.PolygonArea)
	}
	if got.Centroid != (Centroid{X: 4, Y: 3.5}) {
		t.Errorf("centroid: got %+v, want {4 3.5}", got.Centroid)
	}
	want := mask.BoundingBox{MinX: 2, MinY: 2, MaxX: 5, MaxY: 4}
	if got.BoundingBox != want {
		t.Errorf("bounding box: got %+v, want %+v", got.BoundingBox, want)
	}
	if got.ContourPoints != 4 {
		t.Errorf("contour points: got %d, want 4", got.ContourPoints)
	}
}

func TestMeasure_Empty(t *testing.T) {
	s := New("", nil, mask.New(5, 5))
	got, err := Measure(s)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if got.Area != 0 || got.Coverage != 0 || got.Centroid != (Centroid{}) {
		t.Errorf("empty selection: got %+v", got)
	}
}

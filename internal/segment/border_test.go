package segment

import (
	"testing"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// maskFromRows builds a mask from rows of '#' (foreground) and '.'.
func maskFromRows(t *testing.T, rows ...string) *mask.Mask {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	data := make([]uint8, w*h)
	for y, row := range rows {
		if len(row) != w {
			t.Fatalf("row %d has length %d, want %d", y, len(row), w)
		}
		for x, c := range row {
			if c == '#' {
				data[y*w+x] = 1
			}
		}
	}
	return mask.FromData(data, w, h)
}

func blockMask(w, h, x0, y0, x1, y1 int) *mask.Mask {
	m := mask.New(w, h)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			m.Set(x, y)
		}
	}
	return m
}

func TestBorderIndices_Block(t *testing.T) {
	m := blockMask(10, 10, 4, 4, 6, 6)

	border := BorderIndices(m)
	if len(border) != 8 {
		t.Fatalf("got %d border pixels, want 8", len(border))
	}
	for _, k := range border {
		if k == 5*10+5 {
			t.Error("center pixel reported as border")
		}
	}
}

func TestBorderIndices_CornerRepeats(t *testing.T) {
	m := maskFromRows(t,
		"#..",
		"...",
		"...",
	)
	got := BorderIndices(m)
	if len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Errorf("got %v, want [0 0] (left column and top row)", got)
	}
}

func TestBorderIndices_ZeroSize(t *testing.T) {
	for _, m := range []*mask.Mask{mask.New(5, 0), mask.New(0, 5), mask.New(0, 0)} {
		if got := BorderIndices(m); len(got) != 0 {
			t.Errorf("%dx%d: got %v, want no border", m.Width, m.Height, got)
		}
	}
}

func TestBorderMask(t *testing.T) {
	tests := []struct {
		name      string
		m         *mask.Mask
		wantCount int
		wantSize  [2]int
		offset    mask.Point
	}{
		{"interior block", blockMask(10, 10, 4, 4, 6, 6), 8, [2]int{3, 3}, mask.Point{X: 4, Y: 4}},
		{"full image", blockMask(4, 4, 0, 0, 3, 3), 12, [2]int{4, 4}, mask.Point{}},
		{"touches left edge", blockMask(6, 6, 0, 1, 2, 3), 8, [2]int{3, 3}, mask.Point{X: 0, Y: 1}},
		{"solid 5x5", blockMask(9, 9, 2, 2, 6, 6), 16, [2]int{5, 5}, mask.Point{X: 2, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BorderMask(tt.m)
			if b.Count() != tt.wantCount {
				t.Errorf("count: got %d, want %d", b.Count(), tt.wantCount)
			}
			if b.Width != tt.wantSize[0] || b.Height != tt.wantSize[1] {
				t.Errorf("size: got %dx%d, want %dx%d", b.Width, b.Height, tt.wantSize[0], tt.wantSize[1])
			}
			if b.Offset != tt.offset {
				t.Errorf("offset: got %+v, want %+v", b.Offset, tt.offset)
			}
		})
	}
}

func TestBorderMask_Empty(t *testing.T) {
	b := BorderMask(mask.New(5, 5))
	if b.Width != 0 || b.Height != 0 || len(b.Data) != 0 {
		t.Errorf("expected empty result, got %dx%d", b.Width, b.Height)
	}
}

func uniqueCount(t *testing.T, idx []int) int {
	t.Helper()
	seen := make(map[int]bool)
	for _, k := range idx {
		if seen[k] {
			t.Fatalf("index %d listed twice", k)
		}
		seen[k] = true
	}
	return len(seen)
}

func TestBorderForBlur(t *testing.T) {
	m := blockMask(10, 10, 4, 4, 6, 6)

	if n := uniqueCount(t, BorderForBlur(m, 0, nil)); n != 8 {
		t.Errorf("radius 0: got %d pixels, want 8", n)
	}

	// Radius 1 adds the block center and the 12 pixels just outside each side.
	got := BorderForBlur(m, 1, nil)
	if n := uniqueCount(t, got); n != 21 {
		t.Errorf("radius 1: got %d pixels, want 21", n)
	}
	for _, k := range []int{3*10 + 3, 3*10 + 7, 7*10 + 3, 7*10 + 7} {
		for _, g := range got {
			if g == k {
				t.Errorf("diagonal corner %d should not be in the cross windows", k)
			}
		}
	}
}

func TestBorderForBlur_ClampsAtImageEdge(t *testing.T) {
	m := blockMask(5, 5, 0, 0, 4, 4)
	got := BorderForBlur(m, 3, nil)
	for _, k := range got {
		if k < 0 || k >= 25 {
			t.Fatalf("index %d outside the buffer", k)
		}
	}
	if n := uniqueCount(t, got); n != 25 {
		t.Errorf("got %d pixels, want all 25", n)
	}
}

func TestBorderForBlur_VisitedHidesBorder(t *testing.T) {
	m := blockMask(10, 10, 4, 4, 6, 6)
	visited := make([]uint8, 100)
	for i := range visited {
		visited[i] = 1
	}

	if got := BorderForBlur(m, 2, visited); len(got) != 0 {
		t.Errorf("got %d pixels, want none when all neighbors are visited", len(got))
	}
}

func TestBorderForBlur_NegativeRadiusPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	BorderForBlur(blockMask(4, 4, 1, 1, 2, 2), -1, nil)
}

package segment

import (
	"fmt"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// hasBackgroundNeighbor reports whether any 8-neighbor of interior index k is
// zero in data. k must not lie on the image edge.
func hasBackgroundNeighbor(data []uint8, k, w int) bool {
	below, above := k+w, k-w
	return data[k+1] == 0 || data[k-1] == 0 ||
		data[below] == 0 || data[below+1] == 0 || data[below-1] == 0 ||
		data[above] == 0 || data[above+1] == 0 || data[above-1] == 0
}

// BorderIndices returns the pixel indices of every border pixel of m: set
// pixels with a background 8-neighbor, plus every set pixel on the image
// edge.
//
// Interior pixels come first in row-major order, followed by the left
// column, top row, right column and bottom row. Corner pixels are listed once
// per edge they sit on.
func BorderIndices(m *mask.Mask) []int {
	w, h, data := m.Width, m.Height, m.Data
	var border []int
	if w == 0 || h == 0 {
		return border
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			k := y*w + x
			if data[k] == 0 {
				continue
			}
			if hasBackgroundNeighbor(data, k, w) {
				border = append(border, k)
			}
		}
	}

	for y := 0; y < h; y++ {
		if data[y*w] == 1 {
			border = append(border, y*w)
		}
	}
	for x := 0; x < w; x++ {
		if data[x] == 1 {
			border = append(border, x)
		}
	}
	for y := 0; y < h; y++ {
		if k := y*w + w - 1; data[k] == 1 {
			border = append(border, k)
		}
	}
	for x := 0; x < w; x++ {
		if k := (h-1)*w + x; data[k] == 1 {
			border = append(border, k)
		}
	}
	return border
}

// BorderMask returns the border pixels of m cropped to its bounds. The
// offset of the result is (MinX, MinY).
//
// Image-edge pixels are only considered along the edges the bounds touch.
// An empty mask yields an empty BoundaryMask at offset (MinX, MinY).
func BorderMask(m *mask.Mask) mask.BoundaryMask {
	b := m.Bounds
	res := mask.BoundaryMask{Offset: mask.Point{X: b.MinX, Y: b.MinY}}
	if b.IsEmpty() {
		return res
	}

	rw, rh := b.Width(), b.Height()
	res.Width, res.Height = rw, rh
	res.Data = make([]uint8, rw*rh)

	set := func(k, x, y int) {
		res.Data[(y-b.MinY)*rw+(x-b.MinX)] = 1
	}
	forEachInteriorBorder(m, m.Data, set)
	forEachEdgeBorder(m, set)
	return res
}

// forEachInteriorBorder calls fn for each set pixel of m inside its bounds
// (excluding the image edge) that has a zero 8-neighbor in neighbors.
func forEachInteriorBorder(m *mask.Mask, neighbors []uint8, fn func(k, x, y int)) {
	w, h, b := m.Width, m.Height, m.Bounds
	x0, x1 := max(b.MinX, 1), min(b.MaxX, w-2)
	y0, y1 := max(b.MinY, 1), min(b.MaxY, h-2)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			k := y*w + x
			if m.Data[k] == 0 {
				continue
			}
			if hasBackgroundNeighbor(neighbors, k, w) {
				fn(k, x, y)
			}
		}
	}
}

// forEachEdgeBorder calls fn for each set pixel of m that lies on an image
// edge touched by its bounds: left column, right column, top row, bottom row.
func forEachEdgeBorder(m *mask.Mask, fn func(k, x, y int)) {
	w, h, b, data := m.Width, m.Height, m.Bounds, m.Data

	if b.MinX == 0 {
		for y := b.MinY; y <= b.MaxY; y++ {
			if data[y*w] == 1 {
				fn(y*w, 0, y)
			}
		}
	}
	if b.MaxX == w-1 {
		for y := b.MinY; y <= b.MaxY; y++ {
			if k := y*w + b.MaxX; data[k] == 1 {
				fn(k, b.MaxX, y)
			}
		}
	}
	if b.MinY == 0 {
		for x := b.MinX; x <= b.MaxX; x++ {
			if data[x] == 1 {
				fn(x, x, 0)
			}
		}
	}
	if b.MaxY == h-1 {
		for x := b.MinX; x <= b.MaxX; x++ {
			if k := b.MaxY*w + x; data[k] == 1 {
				fn(k, x, b.MaxY)
			}
		}
	}
}

// window returns the clamped [start, end) range of kernel taps for a pixel at
// coordinate c on an axis of the given length.
func window(c, radius, length int) (start, end int) {
	n := 2*radius + 1
	start = max(radius-c, 0)
	end = min(radius+length-c, n)
	return start, end
}

// BorderForBlur returns the pixels a border-only blur must recompute: the
// border pixels of m followed by the pixels of their horizontal and vertical
// windows of half-size radius. Each index appears once.
//
// Pixels set in visited count as foreground for the neighbor test, so
// background already claimed by an earlier selection does not create a
// border. Panics if radius is negative.
func BorderForBlur(m *mask.Mask, radius int, visited []uint8) []int {
	if radius < 0 {
		panic(fmt.Sprintf("segment: negative blur radius %d", radius))
	}
	if m.Bounds.IsEmpty() {
		return nil
	}
	w, h := m.Width, m.Height

	neighbors := m.Data
	if len(visited) > 0 {
		neighbors = append([]uint8(nil), m.Data...)
		for k, v := range visited {
			if v == 1 {
				neighbors[k] = 1
			}
		}
	}

	var border []int
	collect := func(k, x, y int) { border = append(border, k) }
	forEachInteriorBorder(m, neighbors, collect)
	forEachEdgeBorder(m, collect)

	seen := make([]bool, w*h)
	result := make([]int, 0, min(len(border)*(4*radius+1), w*h))
	for _, k := range border {
		// Edge pixels can repeat; the mark array keeps them unique.
		if !seen[k] {
			seen[k] = true
			result = append(result, k)
		}
		x, y := k%w, k/w

		start, end := window(x, radius, w)
		for i := start; i < end; i++ {
			if k2 := k - radius + i; !seen[k2] {
				seen[k2] = true
				result = append(result, k2)
			}
		}
		start, end = window(y, radius, h)
		for i := start; i < end; i++ {
			if k2 := k + (i-radius)*w; !seen[k2] {
				seen[k2] = true
				result = append(result, k2)
			}
		}
	}
	return result
}

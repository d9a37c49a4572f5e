package mask

import "fmt"

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BoundingBox is the inclusive bounding box of the foreground pixels of a mask.
type BoundingBox struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// EmptyBounds returns the sentinel box for an empty mask of the given size.
func EmptyBounds(width, height int) BoundingBox {
	return BoundingBox{MinX: width + 1, MinY: height + 1, MaxX: -1, MaxY: -1}
}

// IsEmpty reports whether the box encloses no pixels.
func (b BoundingBox) IsEmpty() bool {
	return b.MaxX < b.MinX || b.MaxY < b.MinY
}

// Width returns the number of columns covered by the box.
func (b BoundingBox) Width() int {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxX - b.MinX + 1
}

// Height returns the number of rows covered by the box.
func (b BoundingBox) Height() int {
	if b.IsEmpty() {
		return 0
	}
	return b.MaxY - b.MinY + 1
}

// Contains reports whether (x, y) lies inside the box.
func (b BoundingBox) Contains(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Extend grows the box so that it covers (x, y).
func (b *BoundingBox) Extend(x, y int) {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// Mask is a binary raster with one byte per pixel (0 = background,
// 1 = foreground) and a cached bounding box of the foreground.
type Mask struct {
	Data   []uint8     `json:"-"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Bounds BoundingBox `json:"bounds"`
}

// New allocates an empty mask.
//
// Panics if either dimension is negative.
func New(width, height int) *Mask {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("mask: invalid dimensions %dx%d", width, height))
	}
	return &Mask{
		Data:   make([]uint8, width*height),
		Width:  width,
		Height: height,
		Bounds: EmptyBounds(width, height),
	}
}

// FromData wraps a 0/1 buffer into a mask and computes its tight bounds.
// The buffer is copied.
//
// Panics if len(data) != width*height.
func FromData(data []uint8, width, height int) *Mask {
	if len(data) != width*height {
		panic(fmt.Sprintf("mask: buffer length %d does not match %dx%d", len(data), width, height))
	}
	m := &Mask{
		Data:   append([]uint8(nil), data...),
		Width:  width,
		Height: height,
	}
	m.Bounds = m.TightBounds()
	return m
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	return &Mask{
		Data:   append([]uint8(nil), m.Data...),
		Width:  m.Width,
		Height: m.Height,
		Bounds: m.Bounds,
	}
}

// At reports whether the pixel at (x, y) is foreground. Out-of-range
// coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Data[y*m.Width+x] != 0
}

// Set marks (x, y) as foreground and extends the bounds.
func (m *Mask) Set(x, y int) {
	m.Data[y*m.Width+x] = 1
	m.Bounds.Extend(x, y)
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Data {
		if v != 0 {
			n++
		}
	}
	return n
}

// TightBounds scans the buffer and returns the exact bounding box of the
// foreground pixels, or the empty sentinel.
func (m *Mask) TightBounds() BoundingBox {
	b := EmptyBounds(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		row := m.Data[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			if v != 0 {
				b.Extend(x, y)
			}
		}
	}
	return b
}

// BoundaryMask is a mask cropped to a region of a larger image. Offset maps
// local coordinates back to image space: image = local + Offset.
type BoundaryMask struct {
	Data   []uint8 `json:"-"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Offset Point   `json:"offset"`
}

// At reports whether the local pixel (x, y) is set.
func (b *BoundaryMask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Data[y*b.Width+x] != 0
}

// Count returns the number of set pixels.
func (b *BoundaryMask) Count() int {
	n := 0
	for _, v := range b.Data {
		if v != 0 {
			n++
		}
	}
	return n
}

package mask

import "fmt"

// Foreground is the value of a selected pixel in a plane.
const Foreground = 255

// Union returns a plane where a pixel is foreground if it is foreground in
// either a or b.
//
// Panics if the planes differ in length.
func Union(a, b []byte) []byte {
	checkLengths(a, b)
	out := make([]byte, len(a))
	for i := range a {
		if a[i] == Foreground || b[i] == Foreground {
			out[i] = Foreground
		}
	}
	return out
}

// Intersect returns a plane where a pixel is foreground only if it is
// foreground in both a and b.
//
// Panics if the planes differ in length.
func Intersect(a, b []byte) []byte {
	checkLengths(a, b)
	out := make([]byte, len(a))
	for i := range a {
		if a[i] == Foreground && b[i] == Foreground {
			out[i] = Foreground
		}
	}
	return out
}

// Subtract combines the current selection a with a newly drawn selection b.
// Pixels selected in both become background; every other pixel takes its
// value from b.
//
// This is not "a minus b": pixels selected only in a are dropped, and pixels
// selected only in b are kept. Existing selections depend on this exact rule.
//
// Panics if the planes differ in length.
func Subtract(a, b []byte) []byte {
	checkLengths(a, b)
	out := make([]byte, len(a))
	for i := range a {
		if a[i] == Foreground && b[i] == Foreground {
			out[i] = 0
		} else {
			out[i] = b[i]
		}
	}
	return out
}

// Invert returns the complement of a plane: foreground pixels become 0 and
// every other pixel becomes Foreground.
func Invert(plane []byte) []byte {
	out := make([]byte, len(plane))
	for i, v := range plane {
		if v != Foreground {
			out[i] = Foreground
		}
	}
	return out
}

// InvertEncoded inverts a run-length encoded selection.
func InvertEncoded(rle RLE) RLE {
	return Encode(Invert(DecodeValue(rle, Foreground)))
}

// ToPlane converts a 0/1 mask into a 0/255 plane.
func ToPlane(m *Mask) []byte {
	out := make([]byte, len(m.Data))
	for i, v := range m.Data {
		if v != 0 {
			out[i] = Foreground
		}
	}
	return out
}

// FromPlane converts a 0/255 plane into a mask with tight bounds.
//
// Panics if len(plane) != width*height.
func FromPlane(plane []byte, width, height int) *Mask {
	if len(plane) != width*height {
		panic(fmt.Sprintf("mask: plane length %d does not match %dx%d", len(plane), width, height))
	}
	m := &Mask{Data: make([]uint8, len(plane)), Width: width, Height: height}
	for i, v := range plane {
		if v == Foreground {
			m.Data[i] = 1
		}
	}
	m.Bounds = m.TightBounds()
	return m
}

func checkLengths(a, b []byte) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("mask: plane lengths differ (%d vs %d)", len(a), len(b)))
	}
}

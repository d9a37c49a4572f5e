package mask

import (
	"fmt"
	"math"
)

// RLE is a run-length encoding of a binary pixel stream. Runs alternate
// between background and foreground, starting with background; the first
// run is zero when the stream starts with a foreground pixel.
//
// This is the one persisted mask artifact. Its JSON form is a plain array
// of non-negative integers.
type RLE []int

// Encode run-length encodes a binary buffer. Any non-zero byte counts as
// foreground, so both 0/1 masks and 0/255 planes are accepted.
//
// An empty buffer encodes to an empty RLE.
func Encode(data []byte) RLE {
	if len(data) == 0 {
		return RLE{}
	}

	runs := make(RLE, 0, 16)
	current := false // background first
	count := 0
	for _, v := range data {
		on := v != 0
		if on != current {
			runs = append(runs, count)
			current = on
			count = 0
		}
		count++
	}
	return append(runs, count)
}

// Decode expands an RLE into a 0/1 buffer.
func Decode(rle RLE) []byte {
	return DecodeValue(rle, 1)
}

// DecodeValue expands an RLE into a buffer whose foreground pixels hold on.
// Use 255 to obtain a plane suitable for the mask algebra functions.
//
// Panics if the encoding contains a negative run.
func DecodeValue(rle RLE, on byte) []byte {
	if err := rle.Validate(); err != nil {
		panic(err)
	}

	out := make([]byte, rle.Len())
	pos := 0
	for i, n := range rle {
		if i%2 == 1 {
			for j := pos; j < pos+n; j++ {
				out[j] = on
			}
		}
		pos += n
	}
	return out
}

// Len returns the number of pixels described by the encoding.
func (r RLE) Len() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

// Foreground returns the number of foreground pixels described by the
// encoding without decoding it.
func (r RLE) Foreground() int {
	total := 0
	for i := 1; i < len(r); i += 2 {
		total += r[i]
	}
	return total
}

// Validate checks that every run is non-negative.
func (r RLE) Validate() error {
	for i, n := range r {
		if n < 0 {
			return fmt.Errorf("rle: negative run %d at index %d", n, i)
		}
	}
	return nil
}

// EncodeMask encodes the data of m.
func EncodeMask(m *Mask) RLE {
	return Encode(m.Data)
}

// DecodeMask decodes an RLE into a mask of the given size with tight bounds.
//
// Returns an error if the size is negative, the encoding does not describe
// exactly width*height pixels or it holds a negative run.
func DecodeMask(rle RLE, width, height int) (*Mask, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("rle: invalid size %dx%d", width, height)
	}
	if height > 0 && width > math.MaxInt/height {
		return nil, fmt.Errorf("rle: size %dx%d overflows", width, height)
	}
	if err := rle.Validate(); err != nil {
		return nil, err
	}
	want, total := width*height, 0
	for _, n := range rle {
		// Checked per run so a sum that wraps around cannot pass.
		if n > want-total {
			return nil, fmt.Errorf("rle: encoding covers more than %d pixels (%dx%d)", want, width, height)
		}
		total += n
	}
	if total != want {
		return nil, fmt.Errorf("rle: encoding covers %d pixels, want %d (%dx%d)", total, want, width, height)
	}
	m := &Mask{Data: Decode(rle), Width: width, Height: height}
	m.Bounds = m.TightBounds()
	return m, nil
}

package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Image is an immutable raster consumed by the segmentation engine.
//
// Pixels are stored row-major, Bytes bytes per pixel, with the first three
// bytes of each pixel holding the red, green and blue channels. The engine
// only ever reads Data.
type Image struct {
	Data   []byte
	Width  int
	Height int
	Bytes  int
}

// NewImage wraps an existing pixel buffer.
//
// Returns an error if the dimensions are negative, bytes is smaller than 3,
// or the buffer is too short for width*height*bytes.
func NewImage(data []byte, width, height, bytes int) (Image, error) {
	if width < 0 || height < 0 {
		return Image{}, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if bytes < 3 {
		return Image{}, fmt.Errorf("need at least 3 bytes per pixel, got %d", bytes)
	}
	if len(data) < width*height*bytes {
		return Image{}, fmt.Errorf("buffer holds %d bytes, need %d", len(data), width*height*bytes)
	}
	return Image{Data: data, Width: width, Height: height, Bytes: bytes}, nil
}

// FromImage converts any decoded image into a 4-byte NRGBA buffer whose
// origin is (0, 0).
func FromImage(img image.Image) Image {
	n := imaging.Clone(img)
	return Image{
		Data:   n.Pix,
		Width:  n.Rect.Dx(),
		Height: n.Rect.Dy(),
		Bytes:  4,
	}
}

// Len returns the number of pixels.
func (im Image) Len() int {
	return im.Width * im.Height
}

// Contains reports whether (x, y) is a valid pixel coordinate.
func (im Image) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < im.Width && y < im.Height
}

// RGB returns the first three channels of pixel i (a pixel index, not a
// byte offset).
func (im Image) RGB(i int) (r, g, b uint8) {
	o := i * im.Bytes
	return im.Data[o], im.Data[o+1], im.Data[o+2]
}

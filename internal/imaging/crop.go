package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	OffsetX     int    `json:"offset_x"`
	OffsetY     int    `json:"offset_y"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropMasked cuts the bounding box of m out of img and clears every pixel
// that is not part of the mask, leaving it fully transparent.
//
// The mask must have the same dimensions as img. A scale other than 1 resizes
// the result with a Lanczos filter; the offset always refers to the unscaled
// image.
func CropMasked(img image.Image, m *mask.Mask, scale float64) (*CropResult, error) {
	bounds := img.Bounds()
	if m.Width != bounds.Dx() || m.Height != bounds.Dy() {
		return nil, fmt.Errorf("mask is %dx%d but image is %dx%d", m.Width, m.Height, bounds.Dx(), bounds.Dy())
	}
	box := m.Bounds
	if box.IsEmpty() {
		return nil, fmt.Errorf("selection is empty")
	}

	rect := image.Rect(box.MinX, box.MinY, box.MaxX+1, box.MaxY+1).Add(bounds.Min)
	cropped := imaging.Crop(img, rect)

	// Crop returns an NRGBA with origin (0,0); clear pixels outside the mask.
	for y := 0; y < box.Height(); y++ {
		for x := 0; x < box.Width(); x++ {
			if !m.At(box.MinX+x, box.MinY+y) {
				o := cropped.PixOffset(x, y)
				copy(cropped.Pix[o:o+4], []uint8{0, 0, 0, 0})
			}
		}
	}

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f collapses the crop to nothing", scale)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		OffsetX:     box.MinX,
		OffsetY:     box.MinY,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

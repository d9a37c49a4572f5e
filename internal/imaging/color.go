package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// LabColor represents a color in CIE L*a*b* space (D65 white point).
type LabColor struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// ColorResult contains a color value in several representations.
//
// The Lab form is the one MetricLab thresholds are measured in: two colors
// whose Lab distance times 100 is at most the threshold are considered
// similar.
type ColorResult struct {
	Hex   string   `json:"hex"`   // Hex format "#RRGGBB" (no alpha)
	RGB   RGBColor `json:"rgb"`   // RGB components
	Alpha uint8    `json:"alpha"` // Alpha/opacity component (0-255)
	HSL   HSLColor `json:"hsl"`   // HSL representation
	Lab   LabColor `json:"lab"`   // CIE Lab representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the image bounds.
//
// Coordinates are relative to img.Bounds().Min, matching the pixel indices
// of the buffer produced by FromImage. Color is read non-premultiplied, so a
// half-transparent red still reports R=255.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c, alpha := colorful.MakeColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
	if !alpha {
		// Fully transparent pixel; colorful cannot un-premultiply it.
		c = colorful.Color{}
	}
	_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
	return describe(c, uint8(a>>8)), nil
}

// SampleBuffer reports the color of pixel (x, y) of an engine buffer.
func SampleBuffer(img Image, x, y int) (*ColorResult, error) {
	if !img.Contains(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	r, g, b := img.RGB(y*img.Width + x)
	alpha := uint8(255)
	if img.Bytes > 3 {
		alpha = img.Data[(y*img.Width+x)*img.Bytes+3]
	}
	return describe(toColorful(r, g, b), alpha), nil
}

func describe(c colorful.Color, alpha uint8) *ColorResult {
	r, g, b := c.Clamped().RGB255()
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	ll, la, lb := c.Lab()

	return &ColorResult{
		Hex:   fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB:   RGBColor{R: r, G: g, B: b},
		Alpha: alpha,
		HSL:   HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		Lab: LabColor{
			L: math.Round(ll*1000) / 1000,
			A: math.Round(la*1000) / 1000,
			B: math.Round(lb*1000) / 1000,
		},
	}
}

package imaging

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Metric selects how a pixel's color is compared against the seed color.
type Metric int

const (
	// MetricChannel accepts a pixel when each of its red, green and blue
	// channels differs from the seed by at most the threshold.
	MetricChannel Metric = iota

	// MetricLab accepts a pixel when its CIE Lab distance to the seed,
	// scaled by 100, is at most the threshold. Perceptually uniform, but
	// slower than MetricChannel.
	MetricLab
)

// String returns the metric's name as used in tool arguments.
func (m Metric) String() string {
	switch m {
	case MetricChannel:
		return "channel"
	case MetricLab:
		return "lab"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// ParseMetric maps a tool argument to a Metric. The empty string selects
// MetricChannel.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "channel":
		return MetricChannel, nil
	case "lab":
		return MetricLab, nil
	}
	return 0, fmt.Errorf("unknown color metric: %s", s)
}

// Sampler reads pixels of an Image and compares them against the color of a
// seed pixel.
type Sampler struct {
	img    Image
	metric Metric
	r      int
	g      int
	b      int
	lab    colorful.Color
}

// NewSampler captures the color at (x, y) as the seed.
//
// Panics if (x, y) lies outside the image.
func NewSampler(img Image, x, y int, metric Metric) *Sampler {
	if !img.Contains(x, y) {
		panic(fmt.Sprintf("imaging: seed (%d,%d) outside %dx%d image", x, y, img.Width, img.Height))
	}
	r, g, b := img.RGB(y*img.Width + x)
	return &Sampler{
		img:    img,
		metric: metric,
		r:      int(r),
		g:      int(g),
		b:      int(b),
		lab:    toColorful(r, g, b),
	}
}

// Seed returns the seed color.
func (s *Sampler) Seed() color.NRGBA {
	return color.NRGBA{R: uint8(s.r), G: uint8(s.g), B: uint8(s.b), A: 255}
}

// Matches reports whether pixel i is within threshold of the seed color.
// Both bounds are inclusive; a threshold of 0 means an exact match.
func (s *Sampler) Matches(i, threshold int) bool {
	r, g, b := s.img.RGB(i)
	if s.metric == MetricLab {
		return toColorful(r, g, b).DistanceLab(s.lab)*100 <= float64(threshold)
	}

	c := int(r) - s.r
	if c > threshold || c < -threshold {
		return false
	}
	c = int(g) - s.g
	if c > threshold || c < -threshold {
		return false
	}
	c = int(b) - s.b
	return c <= threshold && c >= -threshold
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

package segment

import (
	"fmt"
	"math"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// gaussKernel returns the 2*radius+1 normalized Gaussian weights with sigma
// equal to radius. A radius of 0 yields the identity kernel {1}.
func gaussKernel(radius int) []float64 {
	if radius < 0 {
		panic(fmt.Sprintf("segment: negative blur radius %d", radius))
	}
	n := 2*radius + 1
	wg := make([]float64, n)
	if radius == 0 {
		wg[0] = 1
		return wg
	}

	s2 := 2 * float64(radius*radius)
	total := 0.0
	for i := 0; i < n; i++ {
		d := float64(i - radius)
		wg[i] = math.Exp(-d * d / s2)
		total += wg[i]
	}
	for i := range wg {
		wg[i] /= total
	}
	return wg
}

// horizontal sums the weighted row window around pixel k at column x.
func horizontal(data []uint8, wg []float64, k, x, radius, w int) float64 {
	val := 0.0
	start, end := window(x, radius, w)
	k1 := k - radius
	for i := start; i < end; i++ {
		val += float64(data[k1+i]) * wg[i]
	}
	return val
}

// vertical sums the weighted column window around pixel k at row y.
func vertical(data []uint8, wg []float64, k, y, radius, w, h int) float64 {
	val := 0.0
	start, end := window(y, radius, h)
	k1 := k - radius*w
	for i := start; i < end; i++ {
		val += float64(data[k1+i*w]) * wg[i]
	}
	return val
}

// Blur smooths m with a cross-shaped Gaussian: each pixel inside the bounds
// becomes 1 when the horizontal window sum plus the vertical window sum
// exceeds 0.5. Pixels outside the bounds are copied unchanged, and the bounds
// are kept as they are.
//
// Windows are clamped to the buffer. Panics if radius is negative.
func Blur(m *mask.Mask, radius int) *mask.Mask {
	wg := gaussKernel(radius)
	w, h, data := m.Width, m.Height, m.Data
	b := m.Bounds

	result := m.Clone()
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			k := y*w + x
			val := horizontal(data, wg, k, x, radius, w) + vertical(data, wg, k, y, radius, w, h)
			if val > 0.5 {
				result.Data[k] = 1
			} else {
				result.Data[k] = 0
			}
		}
	}
	return result
}

// BlurBorderOnly applies the Blur rule only to the pixels returned by
// BorderForBlur, which bounds the work by the length of the boundary
// instead of the area of the mask.
//
// The horizontal window alone decides a pixel when it already exceeds 0.5.
// Bounds grow to cover pixels that turn on but never shrink.
func BlurBorderOnly(m *mask.Mask, radius int, visited []uint8) *mask.Mask {
	wg := gaussKernel(radius)
	border := BorderForBlur(m, radius, visited)
	w, h, data := m.Width, m.Height, m.Data

	result := m.Clone()
	for _, k := range border {
		x, y := k%w, k/w
		val := horizontal(data, wg, k, x, radius, w)
		if val <= 0.5 {
			val += vertical(data, wg, k, y, radius, w, h)
		}
		if val > 0.5 {
			result.Data[k] = 1
			result.Bounds.Extend(x, y)
		} else {
			result.Data[k] = 0
		}
	}
	return result
}

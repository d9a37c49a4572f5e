package segment

import (
	"fmt"

	"github.com/ironsheep/segment-tools-mcp/internal/imaging"
	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// Params configures QuickSelect.
type Params struct {
	// Threshold is the flood fill color tolerance.
	Threshold int `json:"threshold"`

	// Metric selects the color comparison.
	Metric imaging.Metric `json:"-"`

	// BlurRadius is the half-size of the smoothing kernel. Zero disables
	// smoothing.
	BlurRadius int `json:"blur_radius"`

	// BlurPasses is the number of border-only blur iterations. Each pass
	// recomputes the border of the previous result.
	BlurPasses int `json:"blur_passes"`

	// IncludeBorders keeps the one-pixel halo of the flood fill.
	IncludeBorders bool `json:"include_borders"`

	// Tolerance is the Douglas-Peucker distance tolerance in pixels.
	Tolerance float64 `json:"tolerance"`

	// MinSimplifyCount is the smallest contour that gets simplified.
	MinSimplifyCount int `json:"min_simplify_count"`

	// Visited marks pixels that belong to earlier selections. May be nil.
	Visited []uint8 `json:"-"`
}

// DefaultParams returns the settings used by interactive magic-wand
// selection.
func DefaultParams() Params {
	return Params{
		Threshold:        15,
		Metric:           imaging.MetricChannel,
		BlurRadius:       5,
		BlurPasses:       1,
		Tolerance:        1,
		MinSimplifyCount: 30,
	}
}

// MaxBlurPasses is the largest BlurPasses that Validate accepts.
const MaxBlurPasses = 16

// Validate reports settings that QuickSelect cannot run with: negative
// tolerances or radius, and pass counts outside [0, MaxBlurPasses].
func (p Params) Validate() error {
	switch {
	case p.Threshold < 0:
		return fmt.Errorf("threshold must be non-negative, got %d", p.Threshold)
	case p.BlurRadius < 0:
		return fmt.Errorf("blur_radius must be non-negative, got %d", p.BlurRadius)
	case p.BlurPasses < 0 || p.BlurPasses > MaxBlurPasses:
		return fmt.Errorf("blur_passes must be between 0 and %d, got %d", MaxBlurPasses, p.BlurPasses)
	case p.Tolerance < 0:
		return fmt.Errorf("tolerance must be non-negative, got %g", p.Tolerance)
	}
	return nil
}

// Result is the output of QuickSelect.
type Result struct {
	// Mask is the smoothed selection mask.
	Mask *mask.Mask `json:"mask"`

	// Contours are the traced boundaries of Mask.
	Contours []Contour `json:"contours"`

	// Simplified are Contours after Douglas-Peucker reduction.
	Simplified []Contour `json:"simplified"`
}

// Outer returns the simplified outer contour with the most points, or
// false if there is none.
func (r *Result) Outer() (Contour, bool) {
	return LargestOuter(r.Simplified)
}

// LargestOuter returns the outer contour with the largest initial point
// count (or point count for unsimplified contours).
func LargestOuter(contours []Contour) (Contour, bool) {
	best, bestN := -1, -1
	for i, c := range contours {
		if c.Inner {
			continue
		}
		n := c.InitialCount
		if n == 0 {
			n = len(c.Points)
		}
		if n > bestN {
			best, bestN = i, n
		}
	}
	if best < 0 {
		return Contour{}, false
	}
	return contours[best], true
}

// QuickSelect runs the full segmentation pipeline from the seed (x, y):
// flood fill, border-only smoothing, contour tracing and simplification.
//
// Returns false when the seed is already marked in p.Visited.
func QuickSelect(img imaging.Image, x, y int, p Params) (*Result, bool) {
	m := FloodFillOptions{
		Threshold:      p.Threshold,
		Visited:        p.Visited,
		IncludeBorders: p.IncludeBorders,
		Metric:         p.Metric,
	}.Fill(img, x, y)
	if m == nil {
		return nil, false
	}

	if p.BlurRadius > 0 {
		for i := 0; i < max(p.BlurPasses, 1); i++ {
			m = BlurBorderOnly(m, p.BlurRadius, p.Visited)
		}
	}

	contours := TraceContours(m)
	return &Result{
		Mask:       m,
		Contours:   contours,
		Simplified: SimplifyContours(contours, p.Tolerance, p.MinSimplifyCount),
	}, true
}

package segment

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// SimplifyContours reduces each contour with the Douglas-Peucker algorithm.
//
// Contours with fewer than minPointCount points are copied unchanged. For the
// rest, points whose distance to the chord of their enclosing range is at
// most tolerance are dropped. The first and last points are always kept.
// InitialCount of every result is the input point count.
//
// The input is not modified. Panics if tolerance is negative.
func SimplifyContours(contours []Contour, tolerance float64, minPointCount int) []Contour {
	if tolerance < 0 {
		panic(fmt.Sprintf("segment: negative simplify tolerance %g", tolerance))
	}

	result := make([]Contour, 0, len(contours))
	for _, c := range contours {
		points := c.Points
		out := Contour{Inner: c.Inner, Label: c.Label, InitialCount: len(points)}
		if len(points) < minPointCount || len(points) < 3 {
			out.Points = append([]mask.Point(nil), points...)
		} else {
			out.Points = douglasPeucker(points, tolerance)
		}
		result = append(result, out)
	}
	return result
}

type indexRange struct {
	first int
	last  int
}

func douglasPeucker(points []mask.Point, tolerance float64) []mask.Point {
	last := len(points) - 1
	kept := []int{0, last}
	queue := []indexRange{{first: 0, last: last}}

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		if r.last <= r.first+1 {
			continue
		}

		maxd := -1.0
		maxi := r.first
		pf, pl := points[r.first], points[r.last]
		for i := r.first + 1; i < r.last; i++ {
			if d := chordDistance(points[i], pf, pl); d > maxd {
				maxi = i
				maxd = d
			}
		}

		if maxd > tolerance {
			kept = append(kept, maxi)
			queue = append(queue, indexRange{r.first, maxi}, indexRange{maxi, r.last})
		}
	}

	sort.Ints(kept)
	out := make([]mask.Point, len(kept))
	for i, k := range kept {
		out[i] = points[k]
	}
	return out
}

// chordDistance returns the distance from pi to the segment pf-pl. When the
// foot of the perpendicular falls outside the segment, or the endpoints
// coincide, the distance to the nearer endpoint is used.
func chordDistance(pi, pf, pl mask.Point) float64 {
	r1 := math.Hypot(float64(pi.X-pf.X), float64(pi.Y-pf.Y))
	r2 := math.Hypot(float64(pi.X-pl.X), float64(pi.Y-pl.Y))
	dx := float64(pf.X - pl.X)
	dy := float64(pf.Y - pl.Y)
	r12 := math.Hypot(dx, dy)

	switch {
	case r1 >= math.Sqrt(r2*r2+r12*r12):
		return r2
	case r2 >= math.Sqrt(r1*r1+r12*r12):
		return r1
	}
	return math.Abs(dy*float64(pi.X)-dx*float64(pi.Y)+float64(pf.X*pl.Y-pl.X*pf.Y)) / r12
}

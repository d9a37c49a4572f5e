package segment

import (
	"fmt"

	"github.com/ironsheep/segment-tools-mcp/internal/imaging"
	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// FloodFillOptions configures a flood fill.
type FloodFillOptions struct {
	// Threshold is the color tolerance. With MetricChannel it bounds the
	// per-channel difference; with MetricLab it bounds the Lab distance x100.
	Threshold int

	// Visited marks pixels (value 1) that must not be entered. It is copied,
	// never written. May be nil.
	Visited []uint8

	// IncludeBorders adds a one-pixel halo of non-matching pixels around the
	// region. The halo gives the smoother something to blend against.
	IncludeBorders bool

	// Metric selects the color comparison.
	Metric imaging.Metric
}

// span is a horizontal run of a row awaiting a scan. Left and right are
// exclusive; dir is the vertical direction the run was discovered in. The
// seed span has no parent row, so its runs look back over their full width.
type span struct {
	y     int
	left  int
	right int
	dir   int
	seed  bool
}

// FloodFill selects the connected region of pixels whose color is within
// colorThreshold of the pixel at (startX, startY), using per-channel
// comparison.
//
// Returns nil if the start pixel is already set in visited. Panics if the
// start pixel is outside the image or colorThreshold is negative.
func FloodFill(img imaging.Image, startX, startY, colorThreshold int, visited []uint8, includeBorders bool) *mask.Mask {
	return FloodFillOptions{
		Threshold:      colorThreshold,
		Visited:        visited,
		IncludeBorders: includeBorders,
	}.Fill(img, startX, startY)
}

// Fill runs the scanline flood fill from (x, y).
//
// The fill keeps a FIFO queue of spans. Each span is scanned left to right;
// every unvisited matching pixel grows greedily left and right into a maximal
// run, then queues up to two spans in the opposite direction (wherever the run
// widened past its parent) and one span continuing in the same direction.
func (o FloodFillOptions) Fill(img imaging.Image, x, y int) *mask.Mask {
	if o.Threshold < 0 {
		panic(fmt.Sprintf("segment: negative color threshold %d", o.Threshold))
	}
	if o.Visited != nil && len(o.Visited) != img.Len() {
		panic(fmt.Sprintf("segment: visited buffer has %d entries, image has %d pixels", len(o.Visited), img.Len()))
	}
	sampler := imaging.NewSampler(img, x, y, o.Metric)

	w, h := img.Width, img.Height
	visited := make([]uint8, w*h)
	copy(visited, o.Visited)
	if visited[y*w+x] == 1 {
		return nil
	}

	f := &filler{
		sampler:   sampler,
		threshold: o.Threshold,
		visited:   visited,
		result:    mask.New(w, h),
	}
	if o.IncludeBorders {
		f.run(x, y, f.walkWithBorders)
	} else {
		f.run(x, y, f.walk)
	}
	return f.result
}

type filler struct {
	sampler   *imaging.Sampler
	threshold int
	visited   []uint8
	result    *mask.Mask
}

func (f *filler) mark(k int) {
	f.result.Data[k] = 1
	f.visited[k] = 1
}

// walk handles one pixel of a span when halo pixels are excluded. It returns
// the exclusive extents of the run through x, and ok=false if x did not
// start a run.
func (f *filler) walk(row, x int) (xl, xr int, added, ok bool) {
	k := row + x
	if f.visited[k] == 1 || !f.sampler.Matches(k, f.threshold) {
		return 0, 0, false, false
	}
	f.mark(k)

	xl = x - 1
	for xl > -1 {
		k = row + xl
		if f.visited[k] == 1 || !f.sampler.Matches(k, f.threshold) {
			break
		}
		f.mark(k)
		xl--
	}
	w := f.result.Width
	xr = x + 1
	for xr < w {
		k = row + xr
		if f.visited[k] == 1 || !f.sampler.Matches(k, f.threshold) {
			break
		}
		f.mark(k)
		xr++
	}
	return xl, xr, true, true
}

// walkWithBorders marks pixels before testing them, so the first non-matching
// pixel on each side ends up in the result.
func (f *filler) walkWithBorders(row, x int) (xl, xr int, added, ok bool) {
	k := row + x
	if f.visited[k] == 1 {
		return 0, 0, false, false
	}
	f.mark(k)
	if !f.sampler.Matches(k, f.threshold) {
		return 0, 0, true, false
	}

	xl = x - 1
	for xl > -1 {
		k = row + xl
		if f.visited[k] == 1 {
			break
		}
		f.mark(k)
		xl--
		if !f.sampler.Matches(k, f.threshold) {
			break
		}
	}
	w := f.result.Width
	xr = x + 1
	for xr < w {
		k = row + xr
		if f.visited[k] == 1 {
			break
		}
		f.mark(k)
		xr++
		if !f.sampler.Matches(k, f.threshold) {
			break
		}
	}
	return xl, xr, true, true
}

func (f *filler) run(px, py int, walk func(row, x int) (int, int, bool, bool)) {
	w, h := f.result.Width, f.result.Height
	b := mask.EmptyBounds(w, h)

	queue := []span{{y: py, left: px - 1, right: px + 1, dir: 1, seed: true}}
	for len(queue) > 0 {
		el := queue[0]
		queue = queue[1:]

		checkY := false
		row := el.y * w
		for x := el.left + 1; x < el.right; x++ {
			xl, xr, added, ok := walk(row, x)
			if added {
				checkY = true
			}
			if !ok {
				continue
			}

			if xl < b.MinX {
				b.MinX = xl + 1
			}
			if xr > b.MaxX {
				b.MaxX = xr - 1
			}

			if newY := el.y - el.dir; el.seed && newY >= 0 {
				queue = append(queue, span{y: newY, left: xl, right: xr, dir: -el.dir})
			} else if newY >= 0 && newY < h {
				if xl < el.left {
					queue = append(queue, span{y: newY, left: xl, right: el.left, dir: -el.dir})
				}
				if el.right < xr {
					queue = append(queue, span{y: newY, left: el.right, right: xr, dir: -el.dir})
				}
			}
			if newY := el.y + el.dir; newY >= 0 && newY < h {
				if xl < xr {
					queue = append(queue, span{y: newY, left: xl, right: xr, dir: el.dir})
				}
			}
		}
		if checkY {
			if el.y < b.MinY {
				b.MinY = el.y
			}
			if el.y > b.MaxY {
				b.MaxY = el.y
			}
		}
	}
	f.result.Bounds = b
}

// Package segment implements the raster segmentation engine: scanline flood
// fill, border extraction, Gaussian mask smoothing, contour tracing and
// Douglas-Peucker simplification.
//
// Every function is a synchronous, pure computation. Inputs (images, masks,
// visited buffers) are never modified; each call allocates its own result.
// A mask returned from one operation can be handed to the next without
// copying.
//
// # Typical Pipeline
//
// QuickSelect chains the pieces the way an interactive "magic wand" does:
//
//	FloodFill -> BlurBorderOnly (anti-aliased edge) -> TraceContours -> SimplifyContours
//
// # Preconditions
//
// Out-of-range seeds, negative thresholds, radii or tolerances are
// programming errors and panic. The only soft failure is FloodFill returning
// nil when its seed pixel is already marked visited.
package segment

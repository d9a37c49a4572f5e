// Package mask provides the binary raster types shared by the segmentation
// engine, together with the run-length codec and boolean mask algebra.
//
// # Representations
//
// Two byte conventions coexist and this package is where they meet:
//
//   - Mask.Data uses 0 for background and 1 for foreground. Every engine
//     operation (flood fill, blur, tracing) produces and consumes this form.
//   - Planes ([]byte handed to Union, Intersect, Subtract, Invert) use 0 for
//     background and 255 for foreground. This is the form selections are
//     combined in.
//
// ToPlane and FromPlane convert between the two. The run-length codec treats
// any non-zero byte as foreground, so it accepts either form when encoding.
//
// # Bounding Boxes
//
// A BoundingBox is inclusive on all four sides. An empty mask carries the
// sentinel box {MinX: width+1, MinY: height+1, MaxX: -1, MaxY: -1}, which is
// what the incremental min/max updates start from.
//
// # Ownership
//
// A Mask is a value object. Once an operation returns it, later operations
// that change region contents work on a Clone and never write through to the
// caller's buffer.
package mask

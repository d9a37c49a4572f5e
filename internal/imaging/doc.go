// Package imaging loads images and exposes them to the segmentation engine.
//
// Decoded images are held in an ImageCache together with a flattened NRGBA
// pixel buffer (Image) so that repeated selections on the same file do not
// re-read or re-convert it. A Sampler compares buffer pixels against a seed
// color, either per channel or by CIE Lab distance.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Pixel index i of a buffer is y*Width + x
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Image buffers are never
// written after construction and can be shared between goroutines.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//   - Lab: CIE L*a*b* with a D65 white point
//
// # Performance Considerations
//
// A cached buffer costs four bytes per pixel on top of the decoded image.
// Use Evict() or Clear() to manage memory in long-running processes.
package imaging

// Package server implements the MCP (Model Context Protocol) server for the
// segmentation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes region selection
// through the MCP protocol: magic-wand flood fill, drawn shapes, boolean
// combination of selections, contour tracing and export.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Segmentation:
//   - segment_flood_fill: Raw flood fill mask from a seed pixel
//   - segment_quick_select: Flood fill, smooth, trace and simplify into a selection
//   - segment_trace_contours: Outer and hole contours of a mask
//
// Selections:
//   - shape_select: Rectangle, ellipse, polygon or lasso selection
//   - mask_combine: Add, subtract or intersect two selections
//   - mask_invert: Complement a selection
//   - selection_list, selection_delete: Manage stored selections
//
// Output:
//   - selection_metrics: Area, perimeter, centroid, bounding box
//   - selection_export_svg: Contour overlay or traced vector outline
//   - selection_crop: Transparent PNG cut-out of the selected pixels
//
// # State
//
// Loaded images and their pixel buffers are cached by path. Selections are
// kept by ID for the lifetime of the process; tools that create or modify a
// selection return it in full, including its run-length encoded mask.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Arguments are bounded before they reach the engine: blur_radius by the
// image size, blur_passes by segment.MaxBlurPasses, and masks or canvases
// sized by arguments by maxCanvasPixels. A handler panic is reported as a
// tool error.
//
// # Defaults
//
// Omitted segmentation arguments fall back to the Params the server was
// built with (see NewWithDefaults); tools/list advertises the same values.
package server

package server

import (
	"fmt"

	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var (
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}

	selectionIDProperty = map[string]interface{}{
		"type":        "string",
		"description": "ID of a selection returned by an earlier call",
	}

	pointSchema = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "integer"},
			"y": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x", "y"},
	}

	rleProperty = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer"},
		"description": "Run-length encoded mask: alternating background/foreground run lengths, starting with background (the first run may be 0)",
	}
)

// GetToolDefinitions returns all available tools with the built-in
// segmentation defaults
func GetToolDefinitions() []Tool {
	return toolDefinitions(segment.DefaultParams())
}

// toolDefinitions returns all tools, advertising p as the defaults of the
// segmentation arguments.
func toolDefinitions(p segment.Params) []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for subsequent segmentation calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel in hex, RGB, HSL and CIE Lab. Use it to pick a sensible flood fill threshold before selecting.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Segmentation
		{
			Name:        "segment_flood_fill",
			Description: "Flood fill from a seed pixel and return the raw region mask (run-length encoded) with its area and bounding box. No smoothing or contour tracing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Seed X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Seed Y coordinate",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": fmt.Sprintf("Color tolerance. Per-channel difference for 'channel', Lab distance x100 for 'lab'. Default %d", p.Threshold),
						"default":     p.Threshold,
					},
					"metric": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"channel", "lab"},
						"description": fmt.Sprintf("Color comparison. Default '%s'", p.Metric),
					},
					"include_borders": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the one-pixel halo around the region. Default false",
					},
					"visited": rleProperty,
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "segment_quick_select",
			Description: "Magic-wand selection: flood fill from a seed, smooth the region border, trace and simplify its contour. The result is stored and returned as a selection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Seed X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Seed Y coordinate",
					},
					"category_id": map[string]interface{}{
						"type":        "string",
						"description": "Category to tag the selection with",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": fmt.Sprintf("Color tolerance. Default %d", p.Threshold),
						"default":     p.Threshold,
					},
					"metric": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"channel", "lab"},
						"description": fmt.Sprintf("Color comparison. Default '%s'", p.Metric),
					},
					"blur_radius": map[string]interface{}{
						"type":        "integer",
						"description": fmt.Sprintf("Border smoothing radius in pixels, at most the larger image side, 0 disables. Default %d", p.BlurRadius),
						"default":     p.BlurRadius,
					},
					"blur_passes": map[string]interface{}{
						"type":        "integer",
						"description": fmt.Sprintf("Number of border smoothing passes, at most %d. Default %d", segment.MaxBlurPasses, p.BlurPasses),
						"default":     p.BlurPasses,
					},
					"include_borders": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the one-pixel halo around the region. Default false",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": fmt.Sprintf("Contour simplification tolerance in pixels. Default %g", p.Tolerance),
						"default":     p.Tolerance,
					},
					"min_simplify_count": map[string]interface{}{
						"type":        "integer",
						"description": fmt.Sprintf("Contours with fewer points are not simplified. Default %d", p.MinSimplifyCount),
						"default":     p.MinSimplifyCount,
					},
					"visited": rleProperty,
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "segment_trace_contours",
			Description: "Trace the outer and hole contours of a mask, given either a stored selection or a run-length encoded mask, and return them raw and simplified.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"selection_id": selectionIDProperty,
					"mask":         rleProperty,
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Mask width (with mask)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Mask height (with mask)",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": fmt.Sprintf("Simplification tolerance in pixels. Default %g", p.Tolerance),
						"default":     p.Tolerance,
					},
					"min_simplify_count": map[string]interface{}{
						"type":        "integer",
						"description": fmt.Sprintf("Contours with fewer points are not simplified. Default %d", p.MinSimplifyCount),
						"default":     p.MinSimplifyCount,
					},
				},
			},
		},

		// Selections
		{
			Name:        "shape_select",
			Description: "Create a selection from a drawn shape: rectangle (origin, width, height), ellipse (origin, corner), polygon (points) or lasso (points).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas width when no path is given",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas height when no path is given",
					},
					"category_id": map[string]interface{}{
						"type":        "string",
						"description": "Category to tag the selection with",
					},
					"shape": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"kind": map[string]interface{}{
								"type": "string",
								"enum": []string{"rectangle", "ellipse", "polygon", "lasso"},
							},
							"origin": pointSchema,
							"corner": pointSchema,
							"width":  map[string]interface{}{"type": "integer"},
							"height": map[string]interface{}{"type": "integer"},
							"points": map[string]interface{}{
								"type":  "array",
								"items": pointSchema,
							},
						},
						"required": []string{"kind"},
					},
				},
				"required": []string{"shape"},
			},
		},
		{
			Name:        "mask_combine",
			Description: "Combine two selections. 'add' unites them, 'intersect' keeps the overlap, 'subtract' removes the overlap from the selected one. The result replaces the current selection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"op": map[string]interface{}{
						"type": "string",
						"enum": []string{"add", "subtract", "intersect"},
					},
					"current_id":  selectionIDProperty,
					"selected_id": selectionIDProperty,
				},
				"required": []string{"op", "current_id", "selected_id"},
			},
		},
		{
			Name:        "mask_invert",
			Description: "Invert a selection in place: every unselected pixel becomes selected and the outline becomes a hole in the image frame.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"selection_id": selectionIDProperty,
				},
				"required": []string{"selection_id"},
			},
		},
		{
			Name:        "selection_list",
			Description: "List the IDs of all stored selections.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "selection_delete",
			Description: "Forget a stored selection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"selection_id": selectionIDProperty,
				},
				"required": []string{"selection_id"},
			},
		},

		// Output
		{
			Name:        "selection_metrics",
			Description: "Measure a selection: pixel area, coverage, contour perimeter and area, centroid and bounding box.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"selection_id": selectionIDProperty,
				},
				"required": []string{"selection_id"},
			},
		},
		{
			Name:        "selection_export_svg",
			Description: "Render a selection as SVG. 'contour' draws the traced outline (optionally over the image), 'trace' vectorizes the mask with smooth curves. Optionally writes the mask as a PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"selection_id": selectionIDProperty,
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"contour", "trace"},
						"description": "Default 'contour'",
					},
					"stroke": map[string]interface{}{
						"type":        "string",
						"description": "Outline color (contour mode). Default #FF0000",
					},
					"fill": map[string]interface{}{
						"type":        "string",
						"description": "Fill color (contour mode)",
					},
					"stroke_width": map[string]interface{}{
						"type":        "integer",
						"description": "Outline width in pixels (contour mode). Default 2",
					},
					"background_path": map[string]interface{}{
						"type":        "string",
						"description": "Image drawn under the outline (contour mode)",
					},
					"mask_png_path": map[string]interface{}{
						"type":        "string",
						"description": "If set, also save the mask as a black and white PNG here",
					},
				},
				"required": []string{"selection_id"},
			},
		},
		{
			Name:        "selection_crop",
			Description: "Crop the selection's bounding box out of the image, with unselected pixels made transparent, and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":         pathProperty,
					"selection_id": selectionIDProperty,
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "selection_id"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": toolDefinitions(s.defaults),
		},
	}
}

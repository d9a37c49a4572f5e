package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/segment-tools-mcp/internal/imaging"
	"github.com/ironsheep/segment-tools-mcp/internal/mask"
	"github.com/ironsheep/segment-tools-mcp/internal/segment"
	"github.com/ironsheep/segment-tools-mcp/internal/selection"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "segment_quick_select").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.runTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// runTool executes a tool, reporting a panic as a tool error.
func (s *Server) runTool(name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Tool %s panicked: %v", name, r)
			result, err = nil, fmt.Errorf("internal error in %s: %v", name, r)
		}
	}()
	return s.executeTool(name, args)
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache and selections from the store as needed
//  4. Calls the appropriate imaging/segment/selection function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Segmentation
	case "segment_flood_fill":
		return s.handleSegmentFloodFill(args)
	case "segment_quick_select":
		return s.handleSegmentQuickSelect(args)
	case "segment_trace_contours":
		return s.handleSegmentTraceContours(args)

	// Selections
	case "shape_select":
		return s.handleShapeSelect(args)
	case "mask_combine":
		return s.handleMaskCombine(args)
	case "mask_invert":
		return s.handleMaskInvert(args)
	case "selection_list":
		return s.handleSelectionList(args)
	case "selection_delete":
		return s.handleSelectionDelete(args)

	// Output
	case "selection_metrics":
		return s.handleSelectionMetrics(args)
	case "selection_export_svg":
		return s.handleSelectionExportSVG(args)
	case "selection_crop":
		return s.handleSelectionCrop(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.Buffer(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleBuffer(buf, a.X, a.Y)
}

// === Segmentation Handlers ===

type segmentFloodFillArgs struct {
	Path           string   `json:"path"`
	X              int      `json:"x"`
	Y              int      `json:"y"`
	Threshold      *int     `json:"threshold"`
	Metric         string   `json:"metric"`
	IncludeBorders bool     `json:"include_borders"`
	Visited        mask.RLE `json:"visited"`
}

// FloodFillResult is the raw mask produced by segment_flood_fill.
type FloodFillResult struct {
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Area        int              `json:"area"`
	BoundingBox mask.BoundingBox `json:"bounding_box"`
	Mask        mask.RLE         `json:"mask"`
}

func (s *Server) handleSegmentFloodFill(args json.RawMessage) (interface{}, error) {
	var a segmentFloodFillArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	metric, err := s.metric(a.Metric)
	if err != nil {
		return nil, err
	}
	threshold := s.defaults.Threshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold < 0 {
		return nil, fmt.Errorf("threshold must be non-negative, got %d", threshold)
	}

	buf, err := s.seedBuffer(a.Path, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	visited, err := decodeVisited(a.Visited, buf)
	if err != nil {
		return nil, err
	}

	m := segment.FloodFillOptions{
		Threshold:      threshold,
		Visited:        visited,
		IncludeBorders: a.IncludeBorders,
		Metric:         metric,
	}.Fill(buf, a.X, a.Y)
	if m == nil {
		return nil, fmt.Errorf("seed (%d,%d) is already part of a selection", a.X, a.Y)
	}

	return &FloodFillResult{
		Width:       m.Width,
		Height:      m.Height,
		Area:        m.Count(),
		BoundingBox: m.Bounds,
		Mask:        mask.EncodeMask(m),
	}, nil
}

type segmentQuickSelectArgs struct {
	Path             string   `json:"path"`
	X                int      `json:"x"`
	Y                int      `json:"y"`
	CategoryID       string   `json:"category_id"`
	Threshold        *int     `json:"threshold"`
	Metric           string   `json:"metric"`
	BlurRadius       *int     `json:"blur_radius"`
	BlurPasses       *int     `json:"blur_passes"`
	IncludeBorders   bool     `json:"include_borders"`
	Tolerance        *float64 `json:"tolerance"`
	MinSimplifyCount *int     `json:"min_simplify_count"`
	Visited          mask.RLE `json:"visited"`
}

// QuickSelectResult reports a stored selection and how it was traced.
type QuickSelectResult struct {
	Selection *selection.Selection `json:"selection"`
	Area      int                  `json:"area"`
	Contours  int                  `json:"contours"`
	Holes     int                  `json:"holes"`
}

func (s *Server) handleSegmentQuickSelect(args json.RawMessage) (interface{}, error) {
	var a segmentQuickSelectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p := s.defaults
	metric, err := s.metric(a.Metric)
	if err != nil {
		return nil, err
	}
	p.Metric = metric
	p.IncludeBorders = a.IncludeBorders
	if a.Threshold != nil {
		p.Threshold = *a.Threshold
	}
	if a.BlurRadius != nil {
		p.BlurRadius = *a.BlurRadius
	}
	if a.BlurPasses != nil {
		p.BlurPasses = *a.BlurPasses
	}
	if a.Tolerance != nil {
		p.Tolerance = *a.Tolerance
	}
	if a.MinSimplifyCount != nil {
		p.MinSimplifyCount = *a.MinSimplifyCount
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	buf, err := s.seedBuffer(a.Path, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	// A configured default larger than a small image is clamped; an explicit
	// argument is rejected.
	if limit := max(buf.Width, buf.Height); p.BlurRadius > limit {
		if a.BlurRadius != nil {
			return nil, fmt.Errorf("blur_radius %d exceeds the image size %d", p.BlurRadius, limit)
		}
		p.BlurRadius = limit
	}
	if p.Visited, err = decodeVisited(a.Visited, buf); err != nil {
		return nil, err
	}

	res, ok := segment.QuickSelect(buf, a.X, a.Y, p)
	if !ok {
		return nil, fmt.Errorf("seed (%d,%d) is already part of a selection", a.X, a.Y)
	}
	sel, ok := selection.FromSegmentation(res, a.CategoryID)
	if !ok {
		return nil, fmt.Errorf("selection at (%d,%d) vanished after smoothing; try a smaller blur_radius", a.X, a.Y)
	}
	s.selections.put(sel)

	holes := 0
	for _, c := range res.Contours {
		if c.Inner {
			holes++
		}
	}
	return &QuickSelectResult{
		Selection: sel,
		Area:      res.Mask.Count(),
		Contours:  len(res.Contours),
		Holes:     holes,
	}, nil
}

type segmentTraceContoursArgs struct {
	SelectionID      string   `json:"selection_id"`
	Mask             mask.RLE `json:"mask"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	Tolerance        *float64 `json:"tolerance"`
	MinSimplifyCount *int     `json:"min_simplify_count"`
}

// TraceContoursResult holds traced contours before and after simplification.
type TraceContoursResult struct {
	Contours   []segment.Contour `json:"contours"`
	Simplified []segment.Contour `json:"simplified"`
}

func (s *Server) handleSegmentTraceContours(args json.RawMessage) (interface{}, error) {
	var a segmentTraceContoursArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tolerance, minCount := s.defaults.Tolerance, s.defaults.MinSimplifyCount
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}
	if a.MinSimplifyCount != nil {
		minCount = *a.MinSimplifyCount
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be non-negative, got %g", tolerance)
	}

	var m *mask.Mask
	if a.SelectionID != "" {
		sel, err := s.selections.get(a.SelectionID)
		if err != nil {
			return nil, err
		}
		if m, err = sel.Decode(); err != nil {
			return nil, err
		}
	} else {
		if err := checkCanvas(a.Width, a.Height); err != nil {
			return nil, err
		}
		var err error
		if m, err = mask.DecodeMask(a.Mask, a.Width, a.Height); err != nil {
			return nil, err
		}
	}

	contours := segment.TraceContours(m)
	return &TraceContoursResult{
		Contours:   contours,
		Simplified: segment.SimplifyContours(contours, tolerance, minCount),
	}, nil
}

const (
	// maxCanvasPixels bounds masks sized by tool arguments rather than by
	// a loaded image.
	maxCanvasPixels = 1 << 26

	// maxShapePoints bounds polygon and lasso vertex lists.
	maxShapePoints = 1 << 16
)

// checkCanvas rejects mask sizes that are not positive or exceed
// maxCanvasPixels.
func checkCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("mask size must be positive, got %dx%d", width, height)
	}
	if width > maxCanvasPixels/height {
		return fmt.Errorf("mask size %dx%d exceeds %d pixels", width, height, maxCanvasPixels)
	}
	return nil
}

// checkShape rejects shapes whose coordinates stray more than one canvas
// size outside a width x height canvas, or whose outline is too long to
// walk pixel by pixel.
func checkShape(shape selection.Spec, width, height int) error {
	inRange := func(p mask.Point) bool {
		return p.X >= -width && p.X <= 2*width && p.Y >= -height && p.Y <= 2*height
	}
	if !inRange(shape.Origin) || !inRange(shape.Corner) {
		return fmt.Errorf("shape corners must lie within one canvas size of the %dx%d canvas", width, height)
	}
	if shape.Width < -2*width || shape.Width > 2*width || shape.Height < -2*height || shape.Height > 2*height {
		return fmt.Errorf("rectangle %dx%d is too large for the %dx%d canvas", shape.Width, shape.Height, width, height)
	}
	if len(shape.Points) > maxShapePoints {
		return fmt.Errorf("shape has %d points, at most %d allowed", len(shape.Points), maxShapePoints)
	}

	length := 0
	for i, p := range shape.Points {
		if !inRange(p) {
			return fmt.Errorf("point %d (%d,%d) lies too far outside the %dx%d canvas", i, p.X, p.Y, width, height)
		}
		q := shape.Points[(i+1)%len(shape.Points)]
		length += max(abs(q.X-p.X), abs(q.Y-p.Y))
	}
	if length > maxCanvasPixels {
		return fmt.Errorf("shape outline is %d pixels long, at most %d allowed", length, maxCanvasPixels)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// metric parses a metric argument, falling back to the server default when
// it is empty.
func (s *Server) metric(name string) (imaging.Metric, error) {
	if name == "" {
		return s.defaults.Metric, nil
	}
	return imaging.ParseMetric(name)
}

// seedBuffer loads the pixel buffer at path and checks that (x, y) is a
// valid seed.
func (s *Server) seedBuffer(path string, x, y int) (imaging.Image, error) {
	buf, err := s.cache.Buffer(path)
	if err != nil {
		return imaging.Image{}, err
	}
	if !buf.Contains(x, y) {
		return imaging.Image{}, fmt.Errorf("seed (%d,%d) outside %dx%d image", x, y, buf.Width, buf.Height)
	}
	return buf, nil
}

// decodeVisited expands an optional RLE visited mask for img.
func decodeVisited(rle mask.RLE, img imaging.Image) ([]uint8, error) {
	if len(rle) == 0 {
		return nil, nil
	}
	m, err := mask.DecodeMask(rle, img.Width, img.Height)
	if err != nil {
		return nil, fmt.Errorf("visited: %w", err)
	}
	return m.Data, nil
}

// === Selection Handlers ===

type shapeSelectArgs struct {
	Path       string         `json:"path"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	CategoryID string         `json:"category_id"`
	Shape      selection.Spec `json:"shape"`
}

func (s *Server) handleShapeSelect(args json.RawMessage) (interface{}, error) {
	var a shapeSelectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path != "" {
		dims, err := imaging.GetDimensions(s.cache, a.Path)
		if err != nil {
			return nil, err
		}
		a.Width, a.Height = dims.Width, dims.Height
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("need an image path or a positive width and height")
	}
	if err := checkCanvas(a.Width, a.Height); err != nil {
		return nil, err
	}
	if err := checkShape(a.Shape, a.Width, a.Height); err != nil {
		return nil, err
	}

	shape, err := a.Shape.Shape()
	if err != nil {
		return nil, err
	}
	sel := selection.FromShape(shape, a.Width, a.Height, a.CategoryID)
	s.selections.put(sel)
	return sel, nil
}

type maskCombineArgs struct {
	Op         string `json:"op"`
	CurrentID  string `json:"current_id"`
	SelectedID string `json:"selected_id"`
}

func (s *Server) handleMaskCombine(args json.RawMessage) (interface{}, error) {
	var a maskCombineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	op, err := selection.ParseOp(a.Op)
	if err != nil {
		return nil, err
	}
	current, err := s.selections.get(a.CurrentID)
	if err != nil {
		return nil, err
	}
	selected, err := s.selections.get(a.SelectedID)
	if err != nil {
		return nil, err
	}

	combined, err := selection.Combine(op, current, selected)
	if err != nil {
		return nil, err
	}
	s.selections.put(combined)
	return combined, nil
}

type selectionIDArgs struct {
	SelectionID string `json:"selection_id"`
}

func (s *Server) handleMaskInvert(args json.RawMessage) (interface{}, error) {
	var a selectionIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sel, err := s.selections.get(a.SelectionID)
	if err != nil {
		return nil, err
	}
	inv, err := sel.Invert()
	if err != nil {
		return nil, err
	}
	s.selections.put(inv)
	return inv, nil
}

func (s *Server) handleSelectionList(args json.RawMessage) (interface{}, error) {
	return map[string]interface{}{"ids": s.selections.list()}, nil
}

func (s *Server) handleSelectionDelete(args json.RawMessage) (interface{}, error) {
	var a selectionIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if !s.selections.remove(a.SelectionID) {
		return nil, fmt.Errorf("unknown selection: %s", a.SelectionID)
	}
	return map[string]interface{}{"deleted": a.SelectionID}, nil
}

// === Output Handlers ===

func (s *Server) handleSelectionMetrics(args json.RawMessage) (interface{}, error) {
	var a selectionIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sel, err := s.selections.get(a.SelectionID)
	if err != nil {
		return nil, err
	}
	return selection.Measure(sel)
}

type selectionExportSVGArgs struct {
	SelectionID    string `json:"selection_id"`
	Mode           string `json:"mode"`
	Stroke         string `json:"stroke"`
	Fill           string `json:"fill"`
	StrokeWidth    int    `json:"stroke_width"`
	BackgroundPath string `json:"background_path"`
	MaskPNGPath    string `json:"mask_png_path"`
}

// ExportResult contains an SVG rendering of a selection.
type ExportResult struct {
	SVG         string `json:"svg"`
	Mode        string `json:"mode"`
	MaskPNGPath string `json:"mask_png_path,omitempty"`
}

func (s *Server) handleSelectionExportSVG(args json.RawMessage) (interface{}, error) {
	var a selectionExportSVGArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = "contour"
	}
	sel, err := s.selections.get(a.SelectionID)
	if err != nil {
		return nil, err
	}

	res := &ExportResult{Mode: a.Mode}
	switch a.Mode {
	case "contour":
		opts := selection.DefaultOverlay()
		if a.Stroke != "" {
			opts.Stroke = a.Stroke
		}
		if a.Fill != "" {
			opts.Fill = a.Fill
		}
		if a.StrokeWidth > 0 {
			opts.StrokeWidth = a.StrokeWidth
		}
		opts.ImageHref = a.BackgroundPath
		res.SVG = selection.ContourSVG(sel, opts)
	case "trace":
		if res.SVG, err = selection.TraceSVG(sel); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown export mode: %s (want contour or trace)", a.Mode)
	}

	if a.MaskPNGPath != "" {
		if err := selection.SaveMaskPNG(sel, a.MaskPNGPath); err != nil {
			return nil, err
		}
		res.MaskPNGPath = a.MaskPNGPath
	}
	return res, nil
}

type selectionCropArgs struct {
	Path        string  `json:"path"`
	SelectionID string  `json:"selection_id"`
	Scale       float64 `json:"scale"`
}

func (s *Server) handleSelectionCrop(args json.RawMessage) (interface{}, error) {
	var a selectionCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	sel, err := s.selections.get(a.SelectionID)
	if err != nil {
		return nil, err
	}
	m, err := sel.Decode()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropMasked(img, m, a.Scale)
}

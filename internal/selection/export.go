package selection

import (
	"bytes"
	"fmt"
	"image"

	svg "github.com/ajstarks/svgo"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/gotranspile/gotrace"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// MaskImage renders m as a grayscale image: selected pixels white, the rest
// black.
func MaskImage(m *mask.Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Data {
		if v != 0 {
			img.Pix[i] = 255
		}
	}
	return img
}

// SaveMaskPNG writes the selection's mask to path as a black and white PNG.
func SaveMaskPNG(s *Selection, path string) error {
	m, err := s.Decode()
	if err != nil {
		return err
	}
	if err := imgio.Save(path, MaskImage(m), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save mask: %w", err)
	}
	return nil
}

// TraceSVG vectorizes the selection's mask with potrace and returns an SVG
// document of the image's size. Curves are smoothed, so the outline differs
// slightly from the pixel contour.
func TraceSVG(s *Selection) (string, error) {
	m, err := s.Decode()
	if err != nil {
		return "", err
	}

	// potrace traces dark pixels.
	gray := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Data {
		if v == 0 {
			gray.Pix[i] = 255
		}
	}

	bm := gotrace.BitmapFromGray(gray, nil)
	paths, err := gotrace.Trace(bm, nil)
	if err != nil {
		return "", fmt.Errorf("failed to trace mask: %w", err)
	}

	var buf bytes.Buffer
	if err := gotrace.Render("svg", nil, &buf, paths, m.Width, m.Height); err != nil {
		return "", fmt.Errorf("failed to render svg: %w", err)
	}
	return buf.String(), nil
}

// OverlayOptions styles a contour overlay.
type OverlayOptions struct {
	// Stroke is the outline color, e.g. "#FF0000".
	Stroke string

	// Fill is the interior color; empty means no fill.
	Fill string

	// StrokeWidth is the outline width in pixels.
	StrokeWidth int

	// ImageHref, when set, is drawn under the outline (for example a data
	// URI or a file path).
	ImageHref string
}

// DefaultOverlay draws a red two-pixel outline with a translucent fill.
func DefaultOverlay() OverlayOptions {
	return OverlayOptions{Stroke: "#FF0000", Fill: "rgba(255,0,0,0.25)", StrokeWidth: 2}
}

// ContourSVG draws the selection's contour as an SVG polygon over an
// optional background image.
func ContourSVG(s *Selection, opts OverlayOptions) string {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(s.Width, s.Height)
	if opts.ImageHref != "" {
		canvas.Image(0, 0, s.Width, s.Height, opts.ImageHref)
	}

	if len(s.Contour) > 0 {
		xs := make([]int, len(s.Contour))
		ys := make([]int, len(s.Contour))
		for i, p := range s.Contour {
			xs[i], ys[i] = p.X, p.Y
		}
		fill := opts.Fill
		if fill == "" {
			fill = "none"
		}
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-rule:evenodd;stroke:%s;stroke-width:%d",
			fill, opts.Stroke, max(opts.StrokeWidth, 1)))
	}
	canvas.End()
	return buf.String()
}

package selection

import (
	"math"

	"github.com/ironsheep/segment-tools-mcp/internal/mask"
)

// Centroid is the mean position of a selection's pixels.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Metrics describes the size and shape of a selection.
type Metrics struct {
	// Area is the number of selected pixels.
	Area int `json:"area"`

	// Coverage is Area divided by the image area (0.0 to 1.0).
	Coverage float64 `json:"coverage"`

	// Perimeter is the length of the closed contour in pixels.
	Perimeter float64 `json:"perimeter"`

	// PolygonArea is the area enclosed by the contour (shoelace formula).
	// It is smaller than Area for traced contours, which run through pixel
	// centers.
	PolygonArea float64 `json:"polygon_area"`

	// Centroid is the mean of the selected pixel centers. Zero for an empty
	// selection.
	Centroid Centroid `json:"centroid"`

	// BoundingBox is the tight box of the selected pixels.
	BoundingBox mask.BoundingBox `json:"bounding_box"`

	// ContourPoints is the number of contour vertices.
	ContourPoints int `json:"contour_points"`
}

// Measure computes the metrics of s. Returns an error if its mask does not
// decode.
func Measure(s *Selection) (*Metrics, error) {
	m, err := s.Decode()
	if err != nil {
		return nil, err
	}

	res := &Metrics{
		Area:          s.Mask.Foreground(),
		Perimeter:     Perimeter(s.Contour),
		PolygonArea:   PolygonArea(s.Contour),
		BoundingBox:   m.Bounds,
		ContourPoints: len(s.Contour),
	}
	if total := s.Width * s.Height; total > 0 {
		res.Coverage = float64(res.Area) / float64(total)
	}

	if res.Area > 0 {
		var sx, sy float64
		for y := m.Bounds.MinY; y <= m.Bounds.MaxY; y++ {
			for x := m.Bounds.MinX; x <= m.Bounds.MaxX; x++ {
				if m.Data[y*m.Width+x] != 0 {
					sx += float64(x) + 0.5
					sy += float64(y) + 0.5
				}
			}
		}
		res.Centroid = Centroid{X: sx / float64(res.Area), Y: sy / float64(res.Area)}
	}
	return res, nil
}

// Perimeter returns the length of the closed polyline through points.
func Perimeter(points []mask.Point) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		total += math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
	}
	return total
}

// PolygonArea returns the unsigned area of the polygon through points.
func PolygonArea(points []mask.Point) float64 {
	return math.Abs(float64(twiceSignedArea(points))) / 2
}

// twiceSignedArea is the shoelace sum of points. It is positive for
// outlines that run clockwise on screen, like Frame.
func twiceSignedArea(points []mask.Point) int {
	n := len(points)
	if n < 3 {
		return 0
	}
	twice := 0
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		twice += a.X*b.Y - b.X*a.Y
	}
	return twice
}

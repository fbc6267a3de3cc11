package visual

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVG is a Visualizer backed by github.com/ajstarks/svgo, writing an
// indented UTF-8 SVG document to an underlying io.Writer as each draw
// call arrives, preserving primitive order.
type SVG struct {
	canvas   *svg.SVG
	width    int
	height   int
	finished bool
}

// NewSVG starts an SVG document of the given pixel dimensions. An
// optional embedded image href (the staged input, per spec §6's
// `<image href="QR.<ext>">`) is drawn first when non-empty.
func NewSVG(w io.Writer, width, height int, embedHref string) *SVG {
	canvas := svg.New(w)
	canvas.Start(width, height)
	if embedHref != "" {
		canvas.Image(0, 0, width, height, embedHref)
	}
	return &SVG{canvas: canvas, width: width, height: height}
}

// DrawRect draws a rectangle centered at (cx, cy) with the given
// stroke color and optional fill (empty means "none").
func (s *SVG) DrawRect(cx, cy, w, h float64, stroke, fill string) {
	if fill == "" {
		fill = "none"
	}
	style := fmt.Sprintf("stroke:%s;fill:%s;stroke-width:1", stroke, fill)
	x := int(math.Round(cx - w/2))
	y := int(math.Round(cy - h/2))
	s.canvas.Rect(x, y, int(math.Round(w)), int(math.Round(h)), style)
}

// DrawCircle draws a circle of radius r centered at (cx, cy).
func (s *SVG) DrawCircle(cx, cy, r float64, color string) {
	style := fmt.Sprintf("stroke:%s;fill:none;stroke-width:1", color)
	s.canvas.Circle(int(math.Round(cx)), int(math.Round(cy)), int(math.Round(r)), style)
}

// DrawText draws a text label anchored at (x, y).
func (s *SVG) DrawText(x, y float64, text, color string) {
	style := fmt.Sprintf("fill:%s;font-size:10px", color)
	s.canvas.Text(int(math.Round(x)), int(math.Round(y)), text, style)
}

// Finish closes the SVG document. It is idempotent: calling it more
// than once (including from a deferred teardown after an earlier
// explicit call) is a no-op after the first.
func (s *SVG) Finish() error {
	if s.finished {
		return nil
	}
	s.finished = true
	s.canvas.End()
	return nil
}

// Package raster adapts an arbitrary image into the thresholded
// boolean pixel access the rest of the decoder depends on: per-pixel
// is-white tests, row/column scans, and a per-module majority vote.
//
// Grounded on github.com/ericlevine/zxinggo's imagesource.go (the
// luminance conversion) and original_source/src/img.rs (is_white,
// is_white_module, and the clamp-to-empty-scan behavior at the image
// edge).
package raster

import (
	"image"
	"math"

	"github.com/arnegrau/qrlens/geom"
)

// whiteThreshold is the sole thresholding rule (spec §3): a pixel is
// white iff its luminance exceeds this value.
const whiteThreshold = 128

// Grid is a thresholded view over an image's luminance. It never
// mutates the source image and is safe to share read-only across
// every iterator that references it.
type Grid struct {
	width, height int
	luma          []byte // row-major, length width*height
}

// NewGrid converts img into an 8-bit luminance buffer using the same
// weighted RGB formula zxinggo's ImageLuminanceSource uses:
// (306*R + 601*G + 117*B + 0x200) >> 10.
func NewGrid(img image.Image) *Grid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	g := &Grid{width: w, height: h, luma: make([]byte, w*h)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gg, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit-scaled components; reduce to 8-bit
			// before applying the luminance weights.
			r8, g8, b8 := r>>8, gg>>8, b>>8
			lum := (306*r8 + 601*g8 + 117*b8 + 0x200) >> 10
			g.luma[y*w+x] = byte(lum)
		}
	}
	return g
}

// Width returns the grid's pixel width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid's pixel height.
func (g *Grid) Height() int { return g.height }

// IsWhite reports whether the pixel at (x, y) is white. Coordinates
// outside the image bounds are treated as white (never sampled as
// dark), consistent with a scan being clamped to empty rather than
// erroring (spec §4.1).
func (g *Grid) IsWhite(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return true
	}
	return g.luma[y*g.width+x] > whiteThreshold
}

// HorizScan returns the boolean is-white sequence for row y, scanning
// from x=0 to the right edge. An out-of-range y yields an empty scan.
func (g *Grid) HorizScan(y int) []bool {
	if y < 0 || y >= g.height {
		return nil
	}
	row := make([]bool, g.width)
	for x := 0; x < g.width; x++ {
		row[x] = g.IsWhite(x, y)
	}
	return row
}

// VertScan returns the boolean is-white sequence for column x,
// scanning from y=0 to the bottom edge. An out-of-range x yields an
// empty scan.
func (g *Grid) VertScan(x int) []bool {
	if x < 0 || x >= g.width {
		return nil
	}
	col := make([]bool, g.height)
	for y := 0; y < g.height; y++ {
		col[y] = g.IsWhite(x, y)
	}
	return col
}

// IsWhiteModule rasterizes rect by iterating integer coordinates in
// [ceil(Left), floor(Right)) x [ceil(Top), floor(Bottom)) and reports
// whether the fraction of white pixels in that span exceeds 0.5. An
// empty span (zero pixels) counts as white, matching an all-white
// majority vacuously.
func (g *Grid) IsWhiteModule(rect geom.Rect) bool {
	x0 := int(math.Ceil(rect.Left))
	x1 := int(math.Floor(rect.Right))
	y0 := int(math.Ceil(rect.Top))
	y1 := int(math.Floor(rect.Bottom))

	total, white := 0, 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			total++
			if g.IsWhite(x, y) {
				white++
			}
		}
	}
	if total == 0 {
		return true
	}
	return float64(white)/float64(total) > 0.5
}

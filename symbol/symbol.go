// Package symbol reconstructs a QR symbol's module grid from its
// three finder rects (geometry recovery, C4), exposes the region
// iterators over timing/format/alignment modules (C5, C6), and drives
// the zig-zag data traversal state machine that yields demasked data
// bits (C7), including the mask predicates applied at yield time
// (C8's mask step).
//
// Geometry recovery is grounded on original_source/src/qr.rs's
// find_elem_size/find_elem_sizes (refining module size from timing-
// pattern transition counts rather than finder_width/7).
package symbol

import (
	"errors"
	"math"

	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/raster"
)

// ErrBadFinderLayout is returned when NewSymbol is not given exactly
// three finder rects. Coincident or otherwise degenerate layouts of
// three rects are not detected.
var ErrBadFinderLayout = errors.New("symbol: finder rects do not form a valid L-shape")

// finderModules is the module span of a finder pattern (7x7).
const finderModules = 7.0

// Symbol is the reconstructed module grid of a located QR code: its
// pixel bounds, estimated module size, and the alignment-pattern
// positions found within it. It is built once per image and is
// read-only thereafter.
type Symbol struct {
	Bounds             geom.Rect
	ElemWidth          float64
	ElemHeight         float64
	AlignmentPositions []geom.GridPoint

	NumHorizElems int
	NumVertElems  int
}

// NewSymbol performs geometry recovery (C4): it assigns the three
// finder rects to their corners, computes the symbol bounds and
// refined module size, then locates alignment patterns (C6) within
// the resulting grid.
func NewSymbol(finders []geom.Rect, g *raster.Grid) (*Symbol, error) {
	if len(finders) != 3 {
		return nil, ErrBadFinderLayout
	}
	tl, tr, bl, err := assignCorners(finders)
	if err != nil {
		return nil, err
	}

	finderWidth := (tl.Width() + tr.Width() + bl.Width()) / 3
	finderHeight := (tl.Height() + tr.Height() + bl.Height()) / 3

	tlx, tly := tl.Center()
	trx, try := tr.Center()
	blx, bly := bl.Center()

	point := func(x, y float64) geom.Rect { return geom.Rect{Left: x, Top: y, Right: x, Bottom: y} }
	bounds := point(tlx, tly).Hull(point(trx, try)).Hull(point(blx, bly))
	bounds = bounds.Expand(finderWidth/2, finderHeight/2)

	numHoriz := countTransitions(g, bounds, tlx, trx, axisHoriz, finderWidth, finderHeight)
	numVert := countTransitions(g, bounds, tly, bly, axisVert, finderHeight, finderWidth)

	elemWidth := bounds.Width() / float64(numHoriz)
	elemHeight := bounds.Height() / float64(numVert)

	sym := &Symbol{
		Bounds:        bounds,
		ElemWidth:     elemWidth,
		ElemHeight:    elemHeight,
		NumHorizElems: int(math.Floor(bounds.Width() / elemWidth)),
		NumVertElems:  int(math.Floor(bounds.Height() / elemHeight)),
	}
	sym.AlignmentPositions = locateAlignments(g, sym)
	return sym, nil
}

// assignCorners identifies which of the three finder rects is
// top-left, top-right and bottom-left. The top-left finder is the one
// adjacent (by Euclidean center distance) to both others; of the
// remaining pair, whichever shares the top-left's approximate row is
// top-right and whichever shares its approximate column is
// bottom-left.
func assignCorners(finders []geom.Rect) (tl, tr, bl geom.Rect, err error) {
	cx := make([]float64, 3)
	cy := make([]float64, 3)
	for i, f := range finders {
		cx[i], cy[i] = f.Center()
	}
	dist := func(i, j int) float64 {
		dx, dy := cx[i]-cx[j], cy[i]-cy[j]
		return math.Hypot(dx, dy)
	}
	d01, d02, d12 := dist(0, 1), dist(0, 2), dist(1, 2)

	var tlIdx, aIdx, bIdx int
	switch {
	case d01 >= d02 && d01 >= d12:
		tlIdx, aIdx, bIdx = 2, 0, 1
	case d02 >= d01 && d02 >= d12:
		tlIdx, aIdx, bIdx = 1, 0, 2
	default:
		tlIdx, aIdx, bIdx = 0, 1, 2
	}

	rowDistA := math.Abs(cy[aIdx] - cy[tlIdx])
	rowDistB := math.Abs(cy[bIdx] - cy[tlIdx])
	trIdx, blIdx := aIdx, bIdx
	if rowDistB < rowDistA {
		trIdx, blIdx = bIdx, aIdx
	}
	return finders[tlIdx], finders[trIdx], finders[blIdx], nil
}

type axis int

const (
	axisHoriz axis = iota
	axisVert
)

// countTransitions scans the timing row (axisHoriz) or timing column
// (axisVert) between the top-left finder and the opposite finder,
// counting color transitions in the inter-finder span and starting
// the module count at 2*7-1 to account for the two finders
// themselves. alongExtent is the finder dimension parallel to the
// scan (used to estimate the start/end offsets clearing the finders);
// acrossExtent is the finder dimension perpendicular to it (used to
// place the timing row/column itself, 7-0.5 module heights/widths
// from bounds.Top/bounds.Left, per the timing pattern's position, not
// the finders' own center row/column). Grounded on
// original_source/src/qr.rs's find_elem_size's timing_row_center_px/
// timing_col_center_px.
func countTransitions(g *raster.Grid, bounds geom.Rect, startCoord, farCoord float64, ax axis, alongExtent, acrossExtent float64) int {
	count := 2*int(finderModules) - 1

	naiveAlong := alongExtent / finderModules
	naiveAcross := acrossExtent / finderModules
	start := int(math.Round(startCoord + finderModules/2*naiveAlong))
	end := int(math.Round(farCoord - finderModules/2*naiveAlong))
	if start >= end {
		return count
	}

	var prev, cur bool
	if ax == axisHoriz {
		midY := int(math.Round(bounds.Top + (finderModules-0.5)*naiveAcross))
		prev = g.IsWhite(start, midY)
		for x := start + 1; x < end; x++ {
			cur = g.IsWhite(x, midY)
			if cur != prev {
				count++
			}
			prev = cur
		}
		return count
	}

	midX := int(math.Round(bounds.Left + (finderModules-0.5)*naiveAcross))
	prev = g.IsWhite(midX, start)
	for y := start + 1; y < end; y++ {
		cur = g.IsWhite(midX, y)
		if cur != prev {
			count++
		}
		prev = cur
	}
	return count
}

// IdxToModule returns the Rect for module (x, y): anchored at
// Bounds.Left + x*ElemWidth, Bounds.Top + y*ElemHeight, with sides
// ElemWidth/ElemHeight.
func (s *Symbol) IdxToModule(x, y int) geom.Rect {
	left := s.Bounds.Left + float64(x)*s.ElemWidth
	top := s.Bounds.Top + float64(y)*s.ElemHeight
	return geom.Rect{
		Left:   left,
		Top:    top,
		Right:  left + s.ElemWidth,
		Bottom: top + s.ElemHeight,
	}
}

// IsModuleDark reports whether module (x, y) is dark: a majority of
// its interior pixels are non-white.
func (s *Symbol) IsModuleDark(g *raster.Grid, x, y int) bool {
	return !g.IsWhiteModule(s.IdxToModule(x, y))
}

package symbol

import (
	"errors"

	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/raster"
)

// ErrTraversalInvariantBroken is returned when the traversal needs to
// turn around immediately after a horizontal half-step, a
// configuration the supported QR versions never actually produce
// (spec §9's open question).
var ErrTraversalInvariantBroken = errors.New("symbol: traversal turned around after a horizontal half-step")

// finderExclusion is the module span (in each direction from a
// corner) the three finder regions reserve, per spec §4.7.
const finderExclusion = 9
const finderExclusionFar = 8

// DataBit is a single yielded data-traversal result: the module's
// pixel rect, its grid indices, and its demasked value.
type DataBit struct {
	Rect geom.Rect
	X, Y int
	Bit  bool
}

// DataIter is the zig-zag traversal state machine (C7): it walks the
// symbol in vertical column pairs, bottom-to-top then top-to-bottom
// alternately, skipping the finder, timing and alignment regions, and
// yields demasked data bits in the prescribed serpentine order.
type DataIter struct {
	sym        *Symbol
	g          *raster.Grid
	alignments []geom.GridPoint
	maskFn     MaskFunc

	x, y              int
	movingVertically  bool
	movementDirection int
	done              bool
}

// NewDataIter builds a data iterator over sym, sampling darkness from
// g and demasking with maskFn. alignments is the list of located
// alignment-pattern top-left corners (symbol.AlignmentPositions).
//
// The iterator borrows sym, g and alignments; the caller must keep
// them live for as long as the iterator is in use (spec §5).
func NewDataIter(sym *Symbol, g *raster.Grid, alignments []geom.GridPoint, maskFn MaskFunc) *DataIter {
	return &DataIter{
		sym:               sym,
		g:                 g,
		alignments:        alignments,
		maskFn:            maskFn,
		x:                 sym.NumHorizElems - 2,
		y:                 sym.NumVertElems,
		movingVertically:  true,
		movementDirection: -1,
	}
}

type action int

const (
	actionYield action = iota
	actionTerminate
	actionTurnAround
	actionSkip
	actionContinueStraight
)

// Next advances the state machine to the next data module, returning
// ok=false once the iterator has terminated (spec's `x < 0`
// condition) and a non-nil error only for
// ErrTraversalInvariantBroken.
func (it *DataIter) Next() (DataBit, bool, error) {
	for {
		if it.done {
			return DataBit{}, false, nil
		}

		wasVertical := it.movingVertically
		it.halfStep()

		act := it.classify()
		for act == actionContinueStraight {
			it.continueStraight(wasVertical)
			act = it.classify()
		}

		switch act {
		case actionTerminate:
			it.done = true
			return DataBit{}, false, nil

		case actionTurnAround:
			if !wasVertical {
				it.done = true
				return DataBit{}, false, ErrTraversalInvariantBroken
			}
			it.turnAround()
			continue

		case actionSkip:
			continue

		case actionYield:
			return it.sample(), true, nil
		}
	}
}

// halfStep performs one half-step: a diagonal move (x+1, y+=direction)
// when movingVertically is set, or a horizontal move (x-1) otherwise,
// then toggles movingVertically for the next call.
func (it *DataIter) halfStep() {
	if it.movingVertically {
		it.x++
		it.y += it.movementDirection
	} else {
		it.x--
	}
	it.movingVertically = !it.movingVertically
}

// continueStraight takes a single-axis step in the direction of the
// half-step just performed (y+=direction after a diagonal half-step,
// x-1 after a horizontal one), used to skip over a timing row/column
// hit without toggling the alternation the normal half-step would have
// applied. Next classifies the new position again before acting on it.
func (it *DataIter) continueStraight(wasVertical bool) {
	if wasVertical {
		it.y += it.movementDirection
	} else {
		it.x--
	}
}

// turnAround reverses vertical traversal sense and starts a new
// column pair, per spec §4.7.
func (it *DataIter) turnAround() {
	it.x -= 2
	it.y -= it.movementDirection
	it.movementDirection = -it.movementDirection
	it.movingVertically = false
}

func (it *DataIter) classify() action {
	x, y := it.x, it.y
	width, height := it.sym.NumHorizElems, it.sym.NumVertElems

	if x < 0 {
		return actionTerminate
	}
	if y < 0 || y >= height {
		return actionTurnAround
	}

	topLeft := x < finderExclusion && y < finderExclusion
	topRight := x > width-finderExclusionFar && y < finderExclusion
	bottomLeft := x < finderExclusion && y >= height-finderExclusionFar

	if topRight {
		return actionTurnAround
	}
	if topLeft {
		if it.movementDirection == -1 {
			return actionTurnAround
		}
		return actionSkip
	}
	if bottomLeft {
		if it.movementDirection == 1 {
			return actionTurnAround
		}
		return actionSkip
	}
	if x == 6 || y == 6 {
		return actionContinueStraight
	}
	if inAlignmentFootprint(it.alignments, x, y) {
		return actionSkip
	}
	return actionYield
}

func (it *DataIter) sample() DataBit {
	rect := it.sym.IdxToModule(it.x, it.y)
	dark := it.sym.IsModuleDark(it.g, it.x, it.y)
	bit := dark != it.maskFn(it.x, it.y)
	return DataBit{Rect: rect, X: it.x, Y: it.y, Bit: bit}
}

package symbol

import (
	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/raster"
)

// alignmentSpan is the side length (in modules) of an alignment
// pattern's 5x5 footprint.
const alignmentSpan = 5

// expectedDark reports whether the cell at offset (dx, dy) within a
// 5x5 alignment-pattern footprint should be dark. The ring (the outer
// border) and the single center module are dark; the mid-ring cells
// are white. The center falls out of both "white" clauses below
// automatically, so no special case is needed for it.
func expectedDark(dx, dy int) bool {
	white := (dy == 1 || dy == 3) && dx >= 1 && dx <= 3
	white = white || (dx == 1 || dx == 3) && dy >= 1 && dy <= 3
	return !white
}

// locateAlignments scans every grid position (x, y) with
// 0 <= x <= NumHorizElems-5 and 0 <= y <= NumVertElems-5 for the 5x5
// ring-with-center alignment signature, over the entire grid rather
// than any version-restricted subset (spec's open question: matches
// outside canonical positions are possible and are reported as-is).
func locateAlignments(g *raster.Grid, sym *Symbol) []geom.GridPoint {
	var out []geom.GridPoint
	maxX := sym.NumHorizElems - alignmentSpan
	maxY := sym.NumVertElems - alignmentSpan

	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			if matchesAlignment(g, sym, x, y) {
				out = append(out, geom.GridPoint{X: x, Y: y})
			}
		}
	}
	return out
}

func matchesAlignment(g *raster.Grid, sym *Symbol, x, y int) bool {
	for dy := 0; dy < alignmentSpan; dy++ {
		for dx := 0; dx < alignmentSpan; dx++ {
			if sym.IsModuleDark(g, x+dx, y+dy) != expectedDark(dx, dy) {
				return false
			}
		}
	}
	return true
}

// inAlignmentFootprint reports whether (x, y) falls within the 5x5
// footprint of any located alignment pattern.
func inAlignmentFootprint(alignments []geom.GridPoint, x, y int) bool {
	for _, a := range alignments {
		if x >= a.X && x < a.X+alignmentSpan && y >= a.Y && y < a.Y+alignmentSpan {
			return true
		}
	}
	return false
}

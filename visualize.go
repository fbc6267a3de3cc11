package qrlens

import (
	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/raster"
	"github.com/arnegrau/qrlens/symbol"
	"github.com/arnegrau/qrlens/visual"
)

const (
	finderStroke = "red"
	dataFill     = "black"
)

// drawFinders overlays the located finder rects on vis, for debug.svg.
func drawFinders(vis visual.Visualizer, finders []geom.Rect) {
	for _, f := range finders {
		cx, cy := f.Center()
		vis.DrawRect(cx, cy, f.Width(), f.Height(), finderStroke, "")
	}
}

// drawDecodedSymbol overlays every data module whose demasked bit is 1
// on vis, for decoded.svg; the raw pixel darkness of a module is not
// what decides whether it is drawn.
func drawDecodedSymbol(vis visual.Visualizer, g *raster.Grid, sym *symbol.Symbol, maskFn symbol.MaskFunc) {
	it := symbol.NewDataIter(sym, g, sym.AlignmentPositions, maskFn)
	for {
		bit, ok, err := it.Next()
		if err != nil || !ok {
			return
		}
		if !bit.Bit {
			continue
		}
		cx, cy := bit.Rect.Center()
		vis.DrawRect(cx, cy, bit.Rect.Width(), bit.Rect.Height(), "none", dataFill)
	}
}

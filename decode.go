package qrlens

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/arnegrau/qrlens/decoder"
	"github.com/arnegrau/qrlens/finder"
	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/raster"
	"github.com/arnegrau/qrlens/symbol"
	"github.com/arnegrau/qrlens/visual"
)

// Decode is the top-level coordinator (C10): it drives the pixel
// adapter, finder locator, geometry recovery, format-info read, data
// traversal and byte assembler in sequence, surfacing the decoded
// byte stream. debugVis receives the detection overlay (finder
// rects); decodedVis receives only the data modules whose demasked bit
// is 1 (spec §6's debug.svg vs decoded.svg split). Pass visual.Nop{} for either to
// skip that visualization.
func Decode(img image.Image, debugVis, decodedVis visual.Visualizer) (*Result, error) {
	g := raster.NewGrid(img)

	finders, err := finder.Locate(g)
	if err != nil {
		return nil, err
	}

	sym, err := symbol.NewSymbol(finders, g)
	if err != nil {
		return nil, fmt.Errorf("qrlens: geometry recovery: %w", err)
	}
	slog.Debug("recovered symbol geometry",
		"num_horiz_elems", sym.NumHorizElems,
		"num_vert_elems", sym.NumVertElems,
		"alignment_patterns", len(sym.AlignmentPositions))

	drawFinders(debugVis, finders)

	maskID, err := readMaskID(g, sym)
	if err != nil {
		return nil, err
	}
	maskFn, err := symbol.MaskFromID(maskID)
	if err != nil {
		return nil, err
	}
	slog.Debug("resolved mask", "mask_id", fmt.Sprintf("0b%03b", maskID))

	it := symbol.NewDataIter(sym, g, sym.AlignmentPositions, maskFn)
	assembled, err := decoder.Assemble(dataIterAdapter{it})
	if err != nil {
		return nil, err
	}
	slog.Debug("assembled payload",
		"encoding", fmt.Sprintf("0b%04b", assembled.Encoding),
		"length", assembled.Length)

	drawDecodedSymbol(decodedVis, g, sym, maskFn)

	var centers [3]geom.Point
	for i, f := range finders {
		cx, cy := f.Center()
		centers[i] = geom.Point{X: cx, Y: cy}
	}

	return &Result{
		Encoding:      assembled.Encoding,
		Length:        assembled.Length,
		Data:          assembled.Data,
		MaskID:        maskID,
		FinderCenters: centers,
	}, nil
}

// dataIterAdapter satisfies decoder.BitSource by exposing only a
// *symbol.DataIter's bit value, keeping the decoder package decoupled
// from the symbol package (spec's dependency order: C7 -> C8).
type dataIterAdapter struct{ it *symbol.DataIter }

func (a dataIterAdapter) NextBit() (bool, bool, error) {
	bit, ok, err := a.it.Next()
	return bit.Bit, ok, err
}

// readMaskID walks the horizontal format iterator, sampling module
// darkness at each yielded position, and packs positions [2,4] into
// the mask id: position 2 is the id's least significant bit (spec's
// "bits 2..4 ... LSB-first in the order the format iterator yields
// them"). Format/mask bits use the opposite polarity from ordinary
// data modules: a white module is a 1, a dark module is a 0.
func readMaskID(g *raster.Grid, sym *symbol.Symbol) (byte, error) {
	it := symbol.NewHorizFormatIter(sym)
	var bits []bool
	for {
		x, y, ok := it.Next()
		if !ok {
			break
		}
		bits = append(bits, !sym.IsModuleDark(g, x, y))
	}
	if len(bits) < 5 {
		return 0, fmt.Errorf("qrlens: format stream too short to contain a mask id")
	}
	var id byte
	for i, pos := range []int{2, 3, 4} {
		if bits[pos] {
			id |= 1 << uint(i)
		}
	}
	return id, nil
}

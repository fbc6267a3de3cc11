package qrlens

import (
	"image"
	"image/color"
	"testing"

	"github.com/arnegrau/qrlens/decoder"
	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/raster"
	"github.com/arnegrau/qrlens/symbol"
)

// buildVersion1Symbol returns a manually-specified symbol matching a
// version-1 QR's 21x21 module grid (no alignment patterns), and a
// raster.Grid whose data and format modules carry the given payload,
// masked with maskID, rendered at cellPx pixels per module. Finder,
// timing and alignment regions are left blank: the traversal state
// machine never samples them (it turns around, skips or steps
// straight through before reaching a sample), so this is enough to
// exercise geometry, masking, traversal and byte assembly end to end
// without needing pixel-accurate finder-pattern rendering.
func buildVersion1Symbol(t *testing.T, payloadBits []bool, maskID byte, cellPx int) (*symbol.Symbol, *raster.Grid) {
	t.Helper()
	const dim = 21
	size := dim * cellPx

	sym := &symbol.Symbol{
		Bounds:        geom.Rect{Left: 0, Top: 0, Right: float64(size), Bottom: float64(size)},
		ElemWidth:     float64(cellPx),
		ElemHeight:    float64(cellPx),
		NumHorizElems: dim,
		NumVertElems:  dim,
	}

	maskFn, err := symbol.MaskFromID(maskID)
	if err != nil {
		t.Fatalf("MaskFromID: %v", err)
	}

	dark := make([][]bool, dim)
	for y := range dark {
		dark[y] = make([]bool, dim)
	}
	paintFormatMaskID(sym, dark, maskID)

	// Walk the same traversal the decoder will use, over a blank grid,
	// purely to recover the (x,y) sequence data bits are written to.
	blankImg := image.NewGray(image.Rect(0, 0, size, size))
	blankGrid := raster.NewGrid(blankImg)
	seqIter := symbol.NewDataIter(sym, blankGrid, nil, maskFn)
	pos := 0
	for {
		bit, ok, err := seqIter.Next()
		if err != nil {
			t.Fatalf("sequencing traversal: %v", err)
		}
		if !ok {
			break
		}
		if pos >= len(payloadBits) {
			continue
		}
		dark[bit.Y][bit.X] = payloadBits[pos] != maskFn(bit.X, bit.Y)
		pos++
	}
	if pos < len(payloadBits) {
		t.Fatalf("traversal yielded only %d positions, need %d", pos, len(payloadBits))
	}

	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			col := color.Gray{Y: 255}
			if dark[y][x] {
				col = color.Gray{Y: 0}
			}
			for py := 0; py < cellPx; py++ {
				for px := 0; px < cellPx; px++ {
					img.SetGray(x*cellPx+px, y*cellPx+py, col)
				}
			}
		}
	}

	return sym, raster.NewGrid(img)
}

// paintFormatMaskID renders maskID into the horizontal format
// stream's positions [2,4] of dark, a module-grid darkness map later
// rendered to pixels by the caller. Format/mask bits use the opposite
// polarity from ordinary data modules (white is 1, dark is 0), so a
// 1 bit is left white (dark[y][x] = false) and a 0 bit is painted
// dark.
func paintFormatMaskID(sym *symbol.Symbol, dark [][]bool, maskID byte) {
	it := symbol.NewHorizFormatIter(sym)
	idx := 0
	for {
		x, y, ok := it.Next()
		if !ok {
			break
		}
		pos := idx
		idx++
		if pos < 2 || pos > 4 {
			continue
		}
		want := (maskID >> uint(pos-2)) & 1
		dark[y][x] = want == 0
	}
}

func packBits(chunks ...string) []bool {
	var out []bool
	for _, c := range chunks {
		for _, r := range c {
			out = append(out, r == '1')
		}
	}
	return out
}

func TestDecodePipelineByteMode(t *testing.T) {
	payload := packBits(
		"0100",     // encoding nibble: byte mode
		"00000101", // length = 5
		"01001000", // 'H'
		"01000101", // 'E'
		"01001100", // 'L'
		"01001100", // 'L'
		"01001111", // 'O'
	)
	sym, g := buildVersion1Symbol(t, payload, 0b000, 4)

	maskID, err := readMaskID(g, sym)
	if err != nil {
		t.Fatalf("readMaskID: %v", err)
	}
	if maskID != 0b000 {
		t.Fatalf("readMaskID = 0b%03b, want 0b000", maskID)
	}

	maskFn, err := symbol.MaskFromID(maskID)
	if err != nil {
		t.Fatalf("MaskFromID: %v", err)
	}
	it := symbol.NewDataIter(sym, g, sym.AlignmentPositions, maskFn)
	result, err := decoder.Assemble(dataIterAdapter{it})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if result.Encoding != decoder.EncodingByte {
		t.Errorf("Encoding = 0b%04b, want 0b0100", result.Encoding)
	}
	if result.Length != 5 {
		t.Errorf("Length = %d, want 5", result.Length)
	}
	want := []byte("HELLO")
	if string(result.Data) != string(want) {
		t.Errorf("Data = %q, want %q", result.Data, want)
	}
}

// buildSymbolWithFormatID builds a blank version-1 grid whose format
// stream encodes exactly maskID (positions 2,3,4 of the horizontal
// format iterator set accordingly, everything else left white), with
// no payload written to the data region. Format/mask bits use the
// opposite polarity from ordinary data modules (white is 1, dark is
// 0), so a 0 bit is painted dark and a 1 bit is left white.
func buildSymbolWithFormatID(t *testing.T, maskID byte) (*symbol.Symbol, *raster.Grid) {
	t.Helper()
	const dim, cellPx = 21, 4
	size := dim * cellPx

	sym := &symbol.Symbol{
		Bounds:        geom.Rect{Left: 0, Top: 0, Right: float64(size), Bottom: float64(size)},
		ElemWidth:     float64(cellPx),
		ElemHeight:    float64(cellPx),
		NumHorizElems: dim,
		NumVertElems:  dim,
	}

	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	it := symbol.NewHorizFormatIter(sym)
	idx := 0
	for {
		x, y, ok := it.Next()
		if !ok {
			break
		}
		bitPos := idx
		idx++
		if bitPos < 2 || bitPos > 4 {
			continue
		}
		want := (maskID >> uint(bitPos-2)) & 1
		if want == 1 {
			continue
		}
		rect := sym.IdxToModule(x, y)
		for py := int(rect.Top); py < int(rect.Bottom); py++ {
			for px := int(rect.Left); px < int(rect.Right); px++ {
				img.SetGray(px, py, color.Gray{Y: 0})
			}
		}
	}

	return sym, raster.NewGrid(img)
}

func TestDecodePipelineUnsupportedMask(t *testing.T) {
	sym, g := buildSymbolWithFormatID(t, 0b100)

	maskID, err := readMaskID(g, sym)
	if err != nil {
		t.Fatalf("readMaskID: %v", err)
	}
	if maskID != 0b100 {
		t.Fatalf("readMaskID = 0b%03b, want 0b100", maskID)
	}
	if _, err := symbol.MaskFromID(maskID); err == nil {
		t.Errorf("MaskFromID(0b100) succeeded, want ErrUnsupportedMask")
	}
}

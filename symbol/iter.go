package symbol

// HorizTimingIter yields the module coordinates of the horizontal
// timing pattern: (x, 6) for x in [7, NumHorizElems-7). It is pure
// geometry; it never samples the image.
type HorizTimingIter struct {
	x, limit int
}

// NewHorizTimingIter builds a horizontal timing iterator over sym.
func NewHorizTimingIter(sym *Symbol) *HorizTimingIter {
	return &HorizTimingIter{x: 7, limit: sym.NumHorizElems - 7}
}

// Next returns the next (x, y) pair, or ok=false when exhausted.
func (it *HorizTimingIter) Next() (x, y int, ok bool) {
	if it.x >= it.limit {
		return 0, 0, false
	}
	x, y = it.x, 6
	it.x++
	return x, y, true
}

// VertTimingIter yields the module coordinates of the vertical timing
// pattern: (6, y) for y in [7, NumVertElems-7).
type VertTimingIter struct {
	y, limit int
}

// NewVertTimingIter builds a vertical timing iterator over sym.
func NewVertTimingIter(sym *Symbol) *VertTimingIter {
	return &VertTimingIter{y: 7, limit: sym.NumVertElems - 7}
}

// Next returns the next (x, y) pair, or ok=false when exhausted.
func (it *VertTimingIter) Next() (x, y int, ok bool) {
	if it.y >= it.limit {
		return 0, 0, false
	}
	x, y = 6, it.y
	it.y++
	return x, y, true
}

// formatIndices returns, in traversal order, the coordinate values
// the format iterators sweep along their primary axis: [0,7] followed
// by [n-8, n), with the timing-pattern index 6 skipped.
func formatIndices(n int) []int {
	idx := make([]int, 0, 15)
	for v := 0; v <= 7; v++ {
		if v == 6 {
			continue
		}
		idx = append(idx, v)
	}
	for v := n - 8; v < n; v++ {
		idx = append(idx, v)
	}
	return idx
}

// HorizFormatIter yields modules at (x, 8) for x over [0,7] union
// [NumHorizElems-8, NumHorizElems), skipping the timing column x=6.
type HorizFormatIter struct {
	xs []int
	i  int
}

// NewHorizFormatIter builds a horizontal format iterator over sym.
func NewHorizFormatIter(sym *Symbol) *HorizFormatIter {
	return &HorizFormatIter{xs: formatIndices(sym.NumHorizElems)}
}

// Next returns the next (x, y) pair, or ok=false when exhausted.
func (it *HorizFormatIter) Next() (x, y int, ok bool) {
	if it.i >= len(it.xs) {
		return 0, 0, false
	}
	x, y = it.xs[it.i], 8
	it.i++
	return x, y, true
}

// VertFormatIter mirrors HorizFormatIter on column 8, traversed from
// bottom to top, skipping the timing row y=6.
type VertFormatIter struct {
	ys []int
	i  int
}

// NewVertFormatIter builds a vertical format iterator over sym.
func NewVertFormatIter(sym *Symbol) *VertFormatIter {
	ys := formatIndices(sym.NumVertElems)
	reversed := make([]int, len(ys))
	for i, v := range ys {
		reversed[len(ys)-1-i] = v
	}
	return &VertFormatIter{ys: reversed}
}

// Next returns the next (x, y) pair, or ok=false when exhausted.
func (it *VertFormatIter) Next() (x, y int, ok bool) {
	if it.i >= len(it.ys) {
		return 0, 0, false
	}
	x, y = 8, it.ys[it.i]
	it.i++
	return x, y, true
}

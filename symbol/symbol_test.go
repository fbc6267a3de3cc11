package symbol

import (
	"image"
	"image/color"
	"testing"

	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/raster"
)

func TestAssignCorners(t *testing.T) {
	topLeft := geom.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	topRight := geom.Rect{Left: 100, Top: 0, Right: 110, Bottom: 10}
	bottomLeft := geom.Rect{Left: 0, Top: 100, Right: 10, Bottom: 110}

	// Every permutation of the three finders should resolve to the
	// same tl/tr/bl assignment: the finder closest to both others is
	// top-left, and of the remaining two, the one sharing its row is
	// top-right.
	perms := [][]geom.Rect{
		{topLeft, topRight, bottomLeft},
		{topRight, bottomLeft, topLeft},
		{bottomLeft, topLeft, topRight},
		{topRight, topLeft, bottomLeft},
	}
	for i, perm := range perms {
		tl, tr, bl, err := assignCorners(perm)
		if err != nil {
			t.Fatalf("perm %d: assignCorners: %v", i, err)
		}
		if tl != topLeft {
			t.Errorf("perm %d: tl = %+v, want %+v", i, tl, topLeft)
		}
		if tr != topRight {
			t.Errorf("perm %d: tr = %+v, want %+v", i, tr, topRight)
		}
		if bl != bottomLeft {
			t.Errorf("perm %d: bl = %+v, want %+v", i, bl, bottomLeft)
		}
	}
}

// alternatingGrid builds a width x height raster.Grid whose pixels at
// row y alternate white/black every period pixels, starting white.
func alternatingGrid(width, height, period int) *raster.Grid {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			col := color.Gray{Y: 255}
			if (x/period)%2 == 1 {
				col = color.Gray{Y: 0}
			}
			img.SetGray(x, y, col)
		}
	}
	return raster.NewGrid(img)
}

func TestCountTransitionsHorizontal(t *testing.T) {
	// period-4 alternation between the sampled x range [17, 39)
	// crosses color 5 times, on top of the base 2*7-1 = 13 the two
	// finders themselves contribute.
	g := alternatingGrid(200, 20, 4)
	bounds := geom.Rect{Left: 0, Top: 0, Right: 200, Bottom: 20}
	count := countTransitions(g, bounds, 3, 53, axisHoriz, 28, 4)
	if want := 2*int(finderModules) - 1 + 5; count != want {
		t.Errorf("count = %d, want %d", count, want)
	}
}

func TestNewSymbolRejectsWrongFinderCount(t *testing.T) {
	g := alternatingGrid(40, 40, 4)
	_, err := NewSymbol([]geom.Rect{{Left: 0, Top: 0, Right: 4, Bottom: 4}}, g)
	if err != ErrBadFinderLayout {
		t.Errorf("NewSymbol with 1 finder: err = %v, want ErrBadFinderLayout", err)
	}
}

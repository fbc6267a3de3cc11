package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/arnegrau/qrlens/geom"
)

func checkerboard(w, h, cell int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func TestIsWhiteThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 129})
	img.SetGray(1, 0, color.Gray{Y: 128})
	g := NewGrid(img)

	if !g.IsWhite(0, 0) {
		t.Errorf("luminance 129 should be white")
	}
	if g.IsWhite(1, 0) {
		t.Errorf("luminance 128 should be dark, threshold is strictly >128")
	}
}

func TestIsWhiteClampsOutOfRange(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	g := NewGrid(img)
	if !g.IsWhite(-1, 0) || !g.IsWhite(100, 0) || !g.IsWhite(0, -1) || !g.IsWhite(0, 100) {
		t.Errorf("out-of-range pixels must clamp to white")
	}
}

func TestScansClampToEmpty(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	g := NewGrid(img)
	if row := g.HorizScan(-1); row != nil {
		t.Errorf("HorizScan(-1) = %v, want nil", row)
	}
	if col := g.VertScan(10); col != nil {
		t.Errorf("VertScan(10) = %v, want nil", col)
	}
	if row := g.HorizScan(0); len(row) != 4 {
		t.Errorf("HorizScan(0) len = %d, want 4", len(row))
	}
}

func TestIsWhiteModuleMajority(t *testing.T) {
	img := checkerboard(8, 8, 4)
	g := NewGrid(img)

	white := geom.Rect{Left: 0, Top: 0, Right: 4, Bottom: 4}
	if !g.IsWhiteModule(white) {
		t.Errorf("uniform white region reported dark")
	}

	dark := geom.Rect{Left: 4, Top: 0, Right: 8, Bottom: 4}
	if g.IsWhiteModule(dark) {
		t.Errorf("uniform dark region reported white")
	}
}

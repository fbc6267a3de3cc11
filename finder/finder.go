// Package finder locates QR finder patterns in a thresholded image by
// their 1:1:3:1:1 run-length signature, fuses horizontal and vertical
// candidates into rectangles, and clusters those rectangles down to
// the three finder centers a well-formed symbol must have.
//
// Grounded on original_source/src/qr.rs's FinderCandidate1D,
// find_candidates, find_patterns and add_rect_to_bucket, and on the
// clustering-by-averaging idea in
// github.com/ericlevine/zxinggo's qrcode/detector/detector.go
// (aboutEquals / combineEstimate), adapted from a perspective-aware
// transform pipeline to the axis-aligned one this decoder uses.
package finder

import (
	"errors"
	"fmt"

	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/raster"
	"github.com/arnegrau/qrlens/rle"
)

// ErrWrongFinderCount is returned when clustering does not collapse
// to exactly three finder candidates.
var ErrWrongFinderCount = errors.New("finder: did not locate exactly three finder patterns")

// almostSameTolerance bounds the relative difference |a/b - 1| the
// signature test allows between run lengths that should be equal.
const almostSameTolerance = 0.2

func almostSame(a, b float64) bool {
	if b == 0 {
		return a == 0
	}
	return absf(a/b-1) < almostSameTolerance
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Candidate1D is a finder-pattern signature match along a single scan
// line: Center is the coordinate of the middle (3-unit) run's
// midpoint, and Length is the total span of the 5-run window.
type Candidate1D struct {
	Center float64
	Length float64
}

// FindCandidates slides a 5-run window over runs and reports every
// window matching the 1:1:3:1:1 finder signature: the third run is
// about 3x the first, and the first, second, fourth and fifth runs
// are about equal to each other.
func FindCandidates(runs []rle.Run) []Candidate1D {
	var out []Candidate1D
	for i := 0; i+5 <= len(runs); i++ {
		r0, r1, r2, r3, r4 := runs[i], runs[i+1], runs[i+2], runs[i+3], runs[i+4]
		unit := float64(r0.Len)
		if !almostSame(float64(r2.Len), 3*unit) {
			continue
		}
		if !almostSame(float64(r1.Len), unit) || !almostSame(float64(r3.Len), unit) || !almostSame(float64(r4.Len), unit) {
			continue
		}
		out = append(out, Candidate1D{
			Center: float64(r2.Start) + float64(r2.Len)/2,
			Length: float64(r4.Start+r4.Len) - float64(r0.Start),
		})
	}
	return out
}

// clusterTolerance bounds how far apart (in pixels) two combined
// rects' centers may be and still merge into one cluster.
const clusterTolerance = 10.0

// fusionTolerance bounds how far apart a horizontal and vertical
// candidate's centers may be, along the opposite axis, and still be
// treated as the same finder.
const fusionTolerance = 1.0

// Locate scans every row and column of g for the finder signature,
// fuses row/column candidates whose centers agree, clusters the
// fused rects, and returns exactly three finder rects (centered,
// spanning roughly 7 modules). It fails with ErrWrongFinderCount
// otherwise.
func Locate(g *raster.Grid) ([]geom.Rect, error) {
	width, height := g.Width(), g.Height()

	// Horizontal candidates: per row, the x-candidates found by
	// scanning that row's run sequence.
	type hCandidate struct {
		y      int
		center float64
		length float64
	}
	var hCandidates []hCandidate
	for y := 0; y < height; y++ {
		runs := rle.Encode(g.HorizScan(y))
		for _, c := range FindCandidates(runs) {
			hCandidates = append(hCandidates, hCandidate{y: y, center: c.Center, length: c.Length})
		}
	}

	// Vertical candidates: per column, the y-candidates found by
	// scanning that column's run sequence.
	type vCandidate struct {
		x      int
		center float64
		length float64
	}
	var vCandidates []vCandidate
	for x := 0; x < width; x++ {
		runs := rle.Encode(g.VertScan(x))
		for _, c := range FindCandidates(runs) {
			vCandidates = append(vCandidates, vCandidate{x: x, center: c.Center, length: c.Length})
		}
	}

	// 2-D fusion: pair a horizontal candidate (known y, x-center)
	// with a vertical candidate (known x, y-center) whose centers
	// agree within fusionTolerance on both axes.
	var fused []geom.Rect
	for _, h := range hCandidates {
		for _, v := range vCandidates {
			if absf(float64(v.x)-h.center) > fusionTolerance {
				continue
			}
			if absf(float64(h.y)-v.center) > fusionTolerance {
				continue
			}
			cx := (h.center + float64(v.x)) / 2
			cy := (float64(h.y) + v.center) / 2
			fused = append(fused, geom.FromCenterAndSize(cx, cy, h.length, v.length))
		}
	}

	clusters := cluster(fused)
	if len(clusters) != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrWrongFinderCount, len(clusters))
	}
	return clusters, nil
}

// cluster buckets rects by center proximity within clusterTolerance
// (first matching bucket wins), then collapses each bucket to its
// arithmetic-mean rect.
func cluster(rects []geom.Rect) []geom.Rect {
	type bucket struct {
		sumL, sumT, sumR, sumB float64
		n                      int
	}
	var buckets []bucket

	for _, r := range rects {
		cx, cy := r.Center()
		placed := false
		for i := range buckets {
			b := &buckets[i]
			n := float64(b.n)
			bcx := (b.sumL + b.sumR) / (2 * n)
			bcy := (b.sumT + b.sumB) / (2 * n)
			if absf(cx-bcx) <= clusterTolerance && absf(cy-bcy) <= clusterTolerance {
				b.sumL += r.Left
				b.sumT += r.Top
				b.sumR += r.Right
				b.sumB += r.Bottom
				b.n++
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{sumL: r.Left, sumT: r.Top, sumR: r.Right, sumB: r.Bottom, n: 1})
		}
	}

	out := make([]geom.Rect, len(buckets))
	for i, b := range buckets {
		n := float64(b.n)
		out[i] = geom.Rect{Left: b.sumL / n, Top: b.sumT / n, Right: b.sumR / n, Bottom: b.sumB / n}
	}
	return out
}

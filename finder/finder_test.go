package finder

import (
	"testing"

	"github.com/arnegrau/qrlens/geom"
	"github.com/arnegrau/qrlens/rle"
)

func TestFindCandidates(t *testing.T) {
	runs := []rle.Run{
		{Start: 0, Len: 2, Value: false},
		{Start: 2, Len: 2, Value: true},
		{Start: 4, Len: 6, Value: false},
		{Start: 10, Len: 2, Value: true},
		{Start: 12, Len: 2, Value: false},
	}

	got := FindCandidates(runs)
	if len(got) != 1 {
		t.Fatalf("FindCandidates() returned %d candidates, want 1", len(got))
	}
	if got[0].Center != 7.0 {
		t.Errorf("Center = %v, want 7.0", got[0].Center)
	}
	if got[0].Length != 14.0 {
		t.Errorf("Length = %v, want 14.0", got[0].Length)
	}
}

func TestFindCandidatesRejectsMismatch(t *testing.T) {
	runs := []rle.Run{
		{Start: 0, Len: 2, Value: false},
		{Start: 2, Len: 2, Value: true},
		{Start: 4, Len: 6, Value: false},
		{Start: 10, Len: 5, Value: true}, // way off from unit=2
		{Start: 15, Len: 2, Value: false},
	}
	if got := FindCandidates(runs); len(got) != 0 {
		t.Errorf("FindCandidates() = %v, want none", got)
	}
}

func TestClusterCollapsesNearbyRects(t *testing.T) {
	rects := []rectFixture{
		{10, 10, 24, 24},
		{11, 9, 25, 23},
		{200, 10, 214, 24},
	}
	got := cluster(toRects(rects))
	if len(got) != 2 {
		t.Fatalf("cluster() produced %d clusters, want 2", len(got))
	}
}

type rectFixture struct{ l, t, r, b float64 }

func toRects(fs []rectFixture) []geom.Rect {
	out := make([]geom.Rect, len(fs))
	for i, f := range fs {
		out[i] = geom.Rect{Left: f.l, Top: f.t, Right: f.r, Bottom: f.b}
	}
	return out
}

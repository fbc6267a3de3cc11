// Package visual implements the write-only debug-visualization sink
// (C9) the core draws into during detection and traversal: rects,
// circles and labels, finished exactly once on teardown.
//
// Grounded on original_source/src/viz.rs's Visualizer (draw_circle,
// draw_rect, draw_text, finish, and its Drop-on-teardown discipline,
// expressed in Go as an explicit Finish call rather than a
// destructor) and on github.com/ericlevine/zxinggo's
// cmd/barcodescan/main.go idiom of deferring a Close/Finish call at
// the call site that owns the resource.
package visual

// Visualizer is the capability set the core depends on for optional
// debug output. It never affects the decoded bit stream (spec §4.10);
// a Nop implementation must always be safe to pass.
type Visualizer interface {
	DrawRect(cx, cy, w, h float64, stroke string, fill string)
	DrawCircle(cx, cy, r float64, color string)
	DrawText(x, y float64, text string, color string)
	Finish() error
}

// Nop is a Visualizer that discards every call. It is the zero value
// a caller passes when no debug output is wanted.
type Nop struct{}

func (Nop) DrawRect(cx, cy, w, h float64, stroke, fill string) {}
func (Nop) DrawCircle(cx, cy, r float64, color string)         {}
func (Nop) DrawText(x, y float64, text string, color string)   {}
func (Nop) Finish() error                                      { return nil }

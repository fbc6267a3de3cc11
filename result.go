package qrlens

import "github.com/arnegrau/qrlens/geom"

// Result is the decoded output surfaced to callers and to the CLI.
// Encoding, Length and Data are the core's C8 output; MaskID (the mask
// id read from the format stream) and FinderCenters (the centers of the
// three located finders) are diagnostics. The CLI's output lines and
// the debug SVG overlay do not read them.
type Result struct {
	Encoding byte
	Length   int
	Data     []byte
	MaskID   byte

	FinderCenters [3]geom.Point
}

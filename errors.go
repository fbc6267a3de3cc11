// Package qrlens decodes a single QR symbol from a grayscale raster
// image into its encoded byte payload: it locates the finder
// patterns, reconstructs the module grid, traverses the functional
// regions, demasks, and assembles the resulting bitstream into bytes.
//
// Grounded on github.com/ericlevine/zxinggo's top-level package shape
// (a root package exposing the coordinator and its sentinel errors,
// with the actual pipeline stages split across subpackages).
package qrlens

import (
	"errors"

	"github.com/arnegrau/qrlens/decoder"
	"github.com/arnegrau/qrlens/finder"
	"github.com/arnegrau/qrlens/symbol"
)

// Sentinel errors for the two failure modes owned by the coordinator
// itself (spec §7); the pipeline-stage failures are defined in their
// owning subpackages and re-exported here so callers have one place
// to errors.Is against.
var (
	// ErrIoFailure is returned when a file open/read/copy or SVG
	// write fails.
	ErrIoFailure = errors.New("qrlens: i/o failure")

	// ErrImageDecodeFailure is returned when the input could not be
	// decoded into a pixel buffer.
	ErrImageDecodeFailure = errors.New("qrlens: could not decode image")

	// ErrWrongFinderCount is returned when clustering did not yield
	// exactly three finder candidates.
	ErrWrongFinderCount = finder.ErrWrongFinderCount

	// ErrUnsupportedMask is returned when the decoded mask id is not
	// one of {0b000, 0b010}.
	ErrUnsupportedMask = symbol.ErrUnsupportedMask

	// ErrUnsupportedEncoding is returned when the encoding nibble is
	// not one of {0b0010, 0b0100}.
	ErrUnsupportedEncoding = decoder.ErrUnsupportedEncoding

	// ErrTruncated is returned when the data bit stream ended before
	// the requested byte count was read.
	ErrTruncated = decoder.ErrTruncated

	// ErrTraversalInvariantBroken is returned when the data traversal
	// needed to turn around after a horizontal half-step.
	ErrTraversalInvariantBroken = symbol.ErrTraversalInvariantBroken
)

// Package decoder assembles the demasked data-traversal bitstream
// into the encoding nibble, length byte and payload bytes (C8).
//
// Grounded on the packed-byte accumulation loop in
// github.com/ericlevine/zxinggo's
// qrcode/decoder/bitmatrixparser.go (ReadCodewords): MSB-first bit
// packing into bytes, simplified here to the fixed nibble+length+
// payload framing spec.md's C8 describes instead of codeword-block
// deinterleaving.
package decoder

import (
	"errors"
	"fmt"
)

// ErrUnsupportedEncoding is returned when the decoded encoding nibble
// is not one of the two this decoder implements.
var ErrUnsupportedEncoding = errors.New("decoder: unsupported encoding mode")

// ErrTruncated is returned when the underlying bit stream ends before
// the requested number of bits has been read.
var ErrTruncated = errors.New("decoder: bit stream truncated")

// EncodingByte and EncodingAlphanumeric are the only two encoding
// nibbles this decoder surfaces to the caller.
const (
	EncodingByte         byte = 0b0100
	EncodingAlphanumeric byte = 0b0010
)

// BitSource yields the demasked data bits one at a time, in traversal
// order. It is satisfied by an adapter over *symbol.DataIter.
type BitSource interface {
	NextBit() (bit bool, ok bool, err error)
}

// Result is the assembled byte stream: the encoding nibble, the
// declared payload length, and exactly that many payload bytes.
type Result struct {
	Encoding byte
	Length   int
	Data     []byte
}

// Assemble reads the encoding nibble (4 bits, MSB-first), the length
// byte (8 bits, MSB-first), then exactly Length payload bytes
// (8 bits each, MSB-first) from src.
func Assemble(src BitSource) (Result, error) {
	nibble, err := readBits(src, 4)
	if err != nil {
		return Result{}, err
	}
	encoding := byte(nibble)
	if encoding != EncodingByte && encoding != EncodingAlphanumeric {
		return Result{}, fmt.Errorf("%w: 0b%04b", ErrUnsupportedEncoding, encoding)
	}

	lengthBits, err := readBits(src, 8)
	if err != nil {
		return Result{}, err
	}
	length := int(lengthBits)

	data := make([]byte, length)
	for i := 0; i < length; i++ {
		b, err := readBits(src, 8)
		if err != nil {
			return Result{}, err
		}
		data[i] = byte(b)
	}

	return Result{Encoding: encoding, Length: length, Data: data}, nil
}

// readBits packs n bits from src into a value, MSB-first, failing
// with ErrTruncated if src runs out early.
func readBits(src BitSource, n int) (uint32, error) {
	var v uint32
	for i := 0; i < n; i++ {
		bit, ok, err := src.NextBit()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrTruncated
		}
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v, nil
}

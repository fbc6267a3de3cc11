package decoder

import (
	"fmt"
	"strings"
)

// alphanumericAlphabet is the 45-character QR alphanumeric-mode
// charset, indexed by the value packed into each 11-bit character
// pair (or 6-bit trailing single character).
const alphanumericAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// AlphanumericString is a non-core, best-effort helper (not part of
// C8) that reinterprets a byte-mode-packed payload as the original
// 11-bit-pair/6-bit-single alphanumeric groups and renders it as text,
// for callers that want a human string instead of a raw byte dump.
// It never changes what Assemble returns; Result.Data is always the
// raw byte sequence spec.md's C8 describes.
func AlphanumericString(data []byte, length int) (string, error) {
	bits := bitsOf(data)

	var sb strings.Builder
	remaining := length
	pos := 0
	for remaining > 0 {
		if remaining >= 2 {
			v, err := takeBits(bits, &pos, 11)
			if err != nil {
				return "", err
			}
			hi, lo := v/45, v%45
			if int(hi) >= len(alphanumericAlphabet) || int(lo) >= len(alphanumericAlphabet) {
				return "", fmt.Errorf("decoder: alphanumeric value %d out of range", v)
			}
			sb.WriteByte(alphanumericAlphabet[hi])
			sb.WriteByte(alphanumericAlphabet[lo])
			remaining -= 2
			continue
		}
		v, err := takeBits(bits, &pos, 6)
		if err != nil {
			return "", err
		}
		if int(v) >= len(alphanumericAlphabet) {
			return "", fmt.Errorf("decoder: alphanumeric value %d out of range", v)
		}
		sb.WriteByte(alphanumericAlphabet[v])
		remaining--
	}
	return sb.String(), nil
}

// bitsOf unpacks a byte slice into its MSB-first bit sequence.
func bitsOf(data []byte) []bool {
	bits := make([]bool, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1 == 1)
		}
	}
	return bits
}

// takeBits reads n bits from bits starting at *pos, MSB-first,
// advancing *pos and failing with ErrTruncated if not enough remain.
func takeBits(bits []bool, pos *int, n int) (uint32, error) {
	if *pos+n > len(bits) {
		return 0, ErrTruncated
	}
	var v uint32
	for i := 0; i < n; i++ {
		v <<= 1
		if bits[*pos] {
			v |= 1
		}
		*pos++
	}
	return v, nil
}

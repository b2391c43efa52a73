// Package rle implements byte-oriented run-length encoding.
//
// The encoded form is a sequence of (count, value) byte pairs with count in
// 1..255. Longer runs are split across several pairs.
package rle

import (
	"github.com/presskit/press"
)

const maxRun = 255

// DefaultMaxOutput is the limit on decompressed size when Codec.MaxOutput
// is zero.
const DefaultMaxOutput = 1 << 30

// Encode appends the run-length encoding of src to dst.
func Encode(dst, src []byte) []byte {
	for i := 0; i < len(src); {
		v := src[i]
		n := 1
		for i+n < len(src) && src[i+n] == v && n < maxRun {
			n++
		}
		dst = append(dst, byte(n), v)
		i += n
	}
	return dst
}

// Decode appends the bytes described by the pairs in src to dst.
func Decode(dst, src []byte) ([]byte, error) {
	return decode(dst, src, DefaultMaxOutput)
}

func decode(dst, src []byte, maxOutput int) ([]byte, error) {
	if len(src)%2 != 0 {
		return dst, press.Corrupt("rle", "odd input length %d", len(src))
	}

	var total int
	for i := 0; i < len(src); i += 2 {
		if src[i] == 0 {
			return dst, press.Corrupt("rle", "zero run length at offset %d", i)
		}
		total += int(src[i])
	}
	if total > maxOutput {
		return dst, press.Corrupt("rle", "output of %d bytes exceeds limit of %d", total, maxOutput)
	}

	out := dst
	for i := 0; i < len(src); i += 2 {
		for n := src[i]; n > 0; n-- {
			out = append(out, src[i+1])
		}
	}
	return out, nil
}

// Codec adapts Encode and Decode to press.Codec.
type Codec struct {
	// MaxOutput limits the size of decompressed data.
	// The default is DefaultMaxOutput.
	MaxOutput int
}

var _ press.Codec = Codec{}

func (Codec) Name() string { return "rle" }

func (Codec) Compress(dst, src []byte) ([]byte, error) {
	return Encode(dst, src), nil
}

func (c Codec) Decompress(dst, src []byte) ([]byte, error) {
	maxOutput := c.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	return decode(dst, src, maxOutput)
}

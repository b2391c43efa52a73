package huffman

import (
	"fmt"
	"strconv"
)

// maxCodeBits is the longest code a Code can hold.
const maxCodeBits = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits, right-aligned. The most
	// significant of the Size low bits is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(s string) (Code, error) {
	if len(s) == 0 || len(s) > maxCodeBits {
		return Code{}, fmt.Errorf("huffman: invalid code length %d", len(s))
	}
	var hc Code
	for _, c := range s {
		switch c {
		case '0':
			hc = hc.append(0)
		case '1':
			hc = hc.append(1)
		default:
			return Code{}, fmt.Errorf("huffman: invalid bit %q in code %q", c, s)
		}
	}
	return hc, nil
}

// HasPrefix reports whether prefix is a prefix of hc. A code is a prefix of
// itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

func (hc Code) append(bit uint64) Code {
	return Code{Size: hc.Size + 1, Bits: hc.Bits<<1 | bit}
}

package lz77

import (
	"encoding/binary"
	"math/bits"
	"runtime"
)

// HashChain is a Searcher that links every position to the previous
// position holding the same byte, so that only candidates whose first byte
// matches are examined. It finds the same matches as WindowSearch.
type HashChain struct {
	// Window is how many bytes to look back for the start of a match.
	// The default is DefaultWindow.
	Window int

	src []byte

	// chain[i] is the previous index holding the byte src[i], or -1.
	chain []int
}

func (q *HashChain) Reset(src []byte) {
	q.src = src

	var table [256]int
	for i := range table {
		table[i] = -1
	}

	chain := q.chain[:0]
	for i, b := range src {
		chain = append(chain, table[b])
		table[b] = i
	}
	q.chain = chain
}

func (q *HashChain) Search(dst []AbsoluteMatch, pos int) []AbsoluteMatch {
	if pos >= len(q.chain) {
		return dst
	}
	limit := pos - windowSize(q.Window)

	// The chain runs from the nearest candidate to the farthest; ties go
	// to the farthest so that the result agrees with WindowSearch.
	var length int
	best := -1
	for candidate := q.chain[pos]; candidate >= 0 && candidate >= limit; candidate = q.chain[candidate] {
		end := extendMatch(q.src, candidate, pos)
		if end-pos >= length {
			best = candidate
			length = end - pos
		}
	}

	if best < 0 {
		return dst
	}
	return append(dst, AbsoluteMatch{
		Start: pos,
		End:   pos + length,
		Match: best,
	})
}

// extendMatch returns the largest k such that k <= len(src) and that
// src[i:i+k-j] and src[j:k] have the same contents.
//
// It assumes that:
//
//	0 <= i && i < j && j <= len(src)
func extendMatch(src []byte, i, j int) int {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		// As long as we are 8 or more bytes before the end of src, we can load and
		// compare 8 bytes at a time. If those 8 bytes are equal, repeat.
		for j+8 < len(src) {
			iBytes := binary.LittleEndian.Uint64(src[i:])
			jBytes := binary.LittleEndian.Uint64(src[j:])
			if iBytes != jBytes {
				// The first differing byte is the lowest set byte of the XOR,
				// since the load is little-endian.
				return j + bits.TrailingZeros64(iBytes^jBytes)>>3
			}
			i, j = i+8, j+8
		}
	case "386":
		for j+4 < len(src) {
			iBytes := binary.LittleEndian.Uint32(src[i:])
			jBytes := binary.LittleEndian.Uint32(src[j:])
			if iBytes != jBytes {
				return j + bits.TrailingZeros32(iBytes^jBytes)>>3
			}
			i, j = i+4, j+4
		}
	}
	for ; j < len(src) && src[i] == src[j]; i, j = i+1, j+1 {
	}
	return j
}

package press

import "fmt"

// A CorruptDataError reports compressed data that is structurally invalid:
// a malformed header or table, a truncated payload, or a bit sequence that
// does not decode.
type CorruptDataError struct {
	Codec  string
	Reason string
}

func (e *CorruptDataError) Error() string {
	return e.Codec + ": corrupt data: " + e.Reason
}

// Corrupt returns a *CorruptDataError for codec with a formatted reason.
func Corrupt(codec, format string, args ...interface{}) error {
	return &CorruptDataError{Codec: codec, Reason: fmt.Sprintf(format, args...)}
}

// An InvalidTokenError reports an LZ77 token that cannot be replayed.
type InvalidTokenError struct {
	Index  int // position of the token in its stream
	Offset int
	Length int
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("lz77: invalid token %d (offset %d, length %d): %s", e.Index, e.Offset, e.Length, e.Reason)
}

// An InvalidTreeError reports a Huffman tree that cannot produce a code
// table. It indicates a bug in the caller rather than bad input.
type InvalidTreeError struct {
	Reason string
}

func (e *InvalidTreeError) Error() string {
	return "huffman: invalid tree: " + e.Reason
}

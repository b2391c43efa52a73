// Package lz77 implements a sliding-window LZ77 codec whose tokens are
// (offset, length, literal) triples.
//
// Compression is greedy: at each position the longest match starting in the
// window is taken, with ties going to the farthest candidate. Matches may
// overlap the position being encoded, so a run like "aaaaaaaa" becomes a
// literal followed by a single self-referential match.
package lz77

import (
	"github.com/presskit/press"
)

const (
	// DefaultWindow is the window size used when none is given.
	DefaultWindow = 20

	// DefaultMaxOutput is the limit on decompressed size when
	// Codec.MaxOutput is zero.
	DefaultMaxOutput = 1 << 30
)

func windowSize(w int) int {
	if w < 1 {
		return DefaultWindow
	}
	return w
}

// Compress tokenizes src with a search window of window bytes. A window
// less than 1 selects DefaultWindow.
func Compress(src []byte, window int) []Token {
	return CompressWith(src, &HashChain{Window: window})
}

// CompressWith tokenizes src using the matches found by s.
func CompressWith(src []byte, s Searcher) []Token {
	if len(src) == 0 {
		return nil
	}
	s.Reset(src)
	var p GreedyParser
	return p.Parse(make([]Token, 0, len(src)/4+1), src, s)
}

// Decompress replays tokens and returns the reconstructed bytes.
func Decompress(tokens []Token) ([]byte, error) {
	return decompress(nil, tokens, DefaultMaxOutput)
}

func decompress(dst []byte, tokens []Token, maxOutput int) ([]byte, error) {
	out := dst
	base := len(dst)
	for i, t := range tokens {
		written := len(out) - base
		if err := checkToken(i, t, written, len(tokens)); err != nil {
			return dst, err
		}

		size := t.Length
		if t.HasLiteral {
			size++
		}
		if size > maxOutput-written {
			return dst, &press.InvalidTokenError{Index: i, Offset: t.Offset, Length: t.Length, Reason: "output exceeds size limit"}
		}

		if t.Length > 0 {
			start := len(out) - t.Offset
			if t.Offset >= t.Length {
				out = append(out, out[start:start+t.Length]...)
			} else {
				// Overlapping copy: later bytes come from ones written here.
				for k := 0; k < t.Length; k++ {
					out = append(out, out[start+k])
				}
			}
		}
		if t.HasLiteral {
			out = append(out, t.Literal)
		}
	}
	return out, nil
}

func checkToken(i int, t Token, written, n int) error {
	var reason string
	switch {
	case t.Offset < 0 || t.Length < 0:
		reason = "negative offset or length"
	case t.Offset == 0 && t.Length > 0:
		reason = "length without offset"
	case t.Offset > 0 && t.Length == 0:
		reason = "offset without length"
	case t.Offset > written:
		reason = "offset reaches before start of output"
	case !t.HasLiteral && t.Length == 0:
		reason = "empty token"
	case !t.HasLiteral && i != n-1:
		reason = "missing literal before end of stream"
	default:
		return nil
	}
	return &press.InvalidTokenError{Index: i, Offset: t.Offset, Length: t.Length, Reason: reason}
}

// Codec adapts Compress and Decompress to press.Codec, using the record
// format of AppendTokens.
type Codec struct {
	// Window is the search window. The default is DefaultWindow.
	Window int

	// MaxOutput limits the size of decompressed data.
	// The default is DefaultMaxOutput.
	MaxOutput int
}

var _ press.Codec = Codec{}

func (c Codec) Name() string { return "lz77" }

func (c Codec) Compress(dst, src []byte) ([]byte, error) {
	return AppendTokens(dst, Compress(src, c.Window))
}

func (c Codec) Decompress(dst, src []byte) ([]byte, error) {
	tokens, err := ParseTokens(src)
	if err != nil {
		return dst, err
	}
	maxOutput := c.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	return decompress(dst, tokens, maxOutput)
}

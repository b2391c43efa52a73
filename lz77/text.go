package lz77

import "fmt"

// A TextEncoder produces a human-readable representation of a token
// stream. Literals are written as they are and matches are replaced with
// <Length,Offset> symbols.
type TextEncoder struct{}

func (t TextEncoder) Encode(dst []byte, tokens []Token) []byte {
	for _, tok := range tokens {
		if tok.Length > 0 {
			dst = fmt.Appendf(dst, "<%d,%d>", tok.Length, tok.Offset)
		}
		if tok.HasLiteral {
			dst = append(dst, tok.Literal)
		}
	}
	return dst
}

package lz77

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/presskit/press"
)

// A Token is the basic unit of LZ77 compression: copy Length bytes from
// Offset bytes back in the output, then append Literal.
//
// A token with Offset and Length both 0 is a plain literal. Only the last
// token of a stream may lack a literal, when its match runs to the end of
// the input.
type Token struct {
	Offset     int
	Length     int
	Literal    byte
	HasLiteral bool
}

// String formats t as (offset,length,literal), with '-' for a missing
// literal.
func (t Token) String() string {
	buf := make([]byte, 0, 16)
	buf = append(buf, '(')
	buf = strconv.AppendInt(buf, int64(t.Offset), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(t.Length), 10)
	buf = append(buf, ',')
	if t.HasLiteral {
		buf = strconv.AppendQuoteRuneToASCII(buf, rune(t.Literal))
	} else {
		buf = append(buf, '-')
	}
	return string(append(buf, ')'))
}

// Serialized tokens are fixed-size records, big-endian:
//
//	offset  uint32
//	length  uint32
//	flags   uint8 (bit 0: literal present; other bits must be zero)
//	literal uint8 (zero when no literal is present)
const (
	recordSize  = 10
	flagLiteral = 1
)

// AppendTokens appends the serialized form of tokens to dst.
func AppendTokens(dst []byte, tokens []Token) ([]byte, error) {
	for i, t := range tokens {
		if t.Offset < 0 || t.Length < 0 || uint64(t.Offset) > math.MaxUint32 || uint64(t.Length) > math.MaxUint32 {
			return dst, &press.InvalidTokenError{Index: i, Offset: t.Offset, Length: t.Length, Reason: "out of range for serialization"}
		}
	}

	for _, t := range tokens {
		dst = binary.BigEndian.AppendUint32(dst, uint32(t.Offset))
		dst = binary.BigEndian.AppendUint32(dst, uint32(t.Length))
		if t.HasLiteral {
			dst = append(dst, flagLiteral, t.Literal)
		} else {
			dst = append(dst, 0, 0)
		}
	}
	return dst, nil
}

// ParseTokens decodes a token stream written by AppendTokens. It checks the
// record structure only; Decompress validates the tokens themselves.
func ParseTokens(data []byte) ([]Token, error) {
	if len(data)%recordSize != 0 {
		return nil, press.Corrupt("lz77", "stream length %d is not a multiple of %d", len(data), recordSize)
	}

	tokens := make([]Token, 0, len(data)/recordSize)
	for rec := data; len(rec) > 0; rec = rec[recordSize:] {
		flags, literal := rec[8], rec[9]
		if flags&^flagLiteral != 0 {
			return nil, press.Corrupt("lz77", "token %d has unknown flags %#x", len(tokens), flags)
		}
		if flags == 0 && literal != 0 {
			return nil, press.Corrupt("lz77", "token %d has a literal byte but no literal flag", len(tokens))
		}
		tokens = append(tokens, Token{
			Offset:     int(binary.BigEndian.Uint32(rec)),
			Length:     int(binary.BigEndian.Uint32(rec[4:])),
			Literal:    literal,
			HasLiteral: flags == flagLiteral,
		})
	}
	return tokens, nil
}

package huffman

import (
	"encoding/binary"

	"github.com/presskit/press"
)

// A Block is the result of Huffman-compressing one input.
//
// Its serialized layout is, big-endian:
//
//	byte 0:          Padding (0-7)
//	bytes 1-2:       number of table entries (uint16)
//	4 bytes / entry: symbol, code length (1-16), code bits (uint16, right-aligned)
//	8 bytes:         Length (uint64)
//	remaining bytes: Payload
type Block struct {
	// Padding is the number of zero bits appended to the last payload byte.
	Padding byte

	// Length is the number of symbols encoded in Payload, which is also the
	// length of the original input. A single-symbol block relies on it
	// alone, since its payload is empty.
	Length uint64

	Table   *CodeTable
	Payload []byte
}

// MarshalBinary encodes b in the layout described on Block.
func (b *Block) MarshalBinary() ([]byte, error) {
	return b.AppendBinary(make([]byte, 0, 11+4*b.Table.Len()+len(b.Payload)))
}

// AppendBinary appends the encoding of b to dst.
func (b *Block) AppendBinary(dst []byte) ([]byte, error) {
	dst = append(dst, b.Padding)
	dst, err := b.Table.appendBinary(dst)
	if err != nil {
		return nil, err
	}
	dst = binary.BigEndian.AppendUint64(dst, b.Length)
	return append(dst, b.Payload...), nil
}

// ParseBlock decodes a Block written by MarshalBinary. The Block's Payload
// aliases data.
func ParseBlock(data []byte) (*Block, error) {
	if len(data) < 1 {
		return nil, press.Corrupt("huffman", "empty block")
	}
	padding := data[0]
	if padding > 7 {
		return nil, press.Corrupt("huffman", "padding count %d out of range", padding)
	}
	t, n, err := parseTable(data[1:])
	if err != nil {
		return nil, err
	}
	rest := data[1+n:]
	if len(rest) < 8 {
		return nil, press.Corrupt("huffman", "length field truncated")
	}
	return &Block{
		Padding: padding,
		Length:  binary.BigEndian.Uint64(rest),
		Table:   t,
		Payload: rest[8:],
	}, nil
}

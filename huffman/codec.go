package huffman

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/presskit/press"
)

// DefaultMaxOutput is the largest output Decompress produces before it
// treats a block as corrupt.
const DefaultMaxOutput = 1 << 30

// Compress Huffman-codes src. The result decompresses to src exactly; an
// empty src gives a block with an empty table and no payload.
func Compress(src []byte) *Block {
	if len(src) == 0 {
		return &Block{Table: new(CodeTable)}
	}

	f := Count(src)
	t, err := Derive(BuildTree(f))
	if err != nil {
		// BuildTree always returns a complete tree for a non-empty table.
		panic(err)
	}

	b := &Block{Length: uint64(len(src)), Table: t}
	if t.Len() == 1 {
		return b
	}

	var buf bytes.Buffer
	buf.Grow(int((t.WeightedLength(f) + 7) / 8))
	w := bitio.NewWriter(&buf)
	for _, sym := range src {
		hc := t.codes[sym]
		w.TryWriteBits(hc.Bits, hc.Size)
	}
	b.Padding = w.TryAlign()
	if w.TryError != nil {
		// bytes.Buffer never fails to write.
		panic(w.TryError)
	}
	b.Payload = buf.Bytes()
	return b
}

// Decompress reverses Compress, refusing outputs longer than
// DefaultMaxOutput.
func Decompress(b *Block) ([]byte, error) {
	return decompress(nil, b, DefaultMaxOutput)
}

func decompress(dst []byte, b *Block, maxOutput int) ([]byte, error) {
	if b.Padding > 7 {
		return dst, press.Corrupt("huffman", "padding count %d out of range", b.Padding)
	}
	if b.Length > uint64(maxOutput) {
		return dst, press.Corrupt("huffman", "declared length %d exceeds limit %d", b.Length, maxOutput)
	}

	switch b.Table.Len() {
	case 0:
		if b.Length != 0 || len(b.Payload) != 0 || b.Padding != 0 {
			return dst, press.Corrupt("huffman", "empty table with non-empty payload")
		}
		return dst, nil

	case 1:
		if len(b.Payload) != 0 || b.Padding != 0 {
			return dst, press.Corrupt("huffman", "single-symbol block with a payload")
		}
		sym := b.Table.Symbols()[0]
		return append(dst, bytes.Repeat([]byte{sym}, int(b.Length))...), nil
	}

	d, err := newDecoder(b.Table)
	if err != nil {
		return dst, press.Corrupt("huffman", "%v", err)
	}

	if len(b.Payload) == 0 {
		return dst, press.Corrupt("huffman", "missing payload")
	}
	// Every code is at least one bit long.
	dataBits := uint64(len(b.Payload))*8 - uint64(b.Padding)
	if b.Length > dataBits {
		return dst, press.Corrupt("huffman", "payload of %d bits cannot hold %d symbols", dataBits, b.Length)
	}

	out := dst
	r := bitio.NewReader(bytes.NewReader(b.Payload))
	var consumed uint64
	for n := uint64(0); n < b.Length; n++ {
		cur := int32(0)
		for !d.nodes[cur].leaf {
			if consumed == dataBits {
				if cur == 0 {
					return dst, press.Corrupt("huffman", "payload truncated after %d of %d symbols", n, b.Length)
				}
				return dst, press.Corrupt("huffman", "payload ends in the middle of a code")
			}
			bit, err := r.ReadBool()
			if err != nil {
				return dst, press.Corrupt("huffman", "reading payload: %v", err)
			}
			consumed++
			if cur = d.step(cur, bit); cur < 0 {
				return dst, press.Corrupt("huffman", "bit sequence matches no code")
			}
		}
		out = append(out, d.nodes[cur].symbol)
	}

	if consumed != dataBits {
		return dst, press.Corrupt("huffman", "%d unused bits after the last symbol", dataBits-consumed)
	}
	if b.Padding > 0 {
		pad, err := r.ReadBits(b.Padding)
		if err != nil || pad != 0 {
			return dst, press.Corrupt("huffman", "invalid padding bits")
		}
	}
	return out, nil
}

// Codec implements press.Codec with serialized Blocks.
type Codec struct {
	// MaxOutput is the largest output Decompress will produce.
	// The default is DefaultMaxOutput.
	MaxOutput int
}

func (Codec) Name() string {
	return "huffman"
}

// Compress appends the serialized Block for src to dst. It fails with
// ErrCodeTooLong if a code does not fit the serialized table.
func (c Codec) Compress(dst, src []byte) ([]byte, error) {
	out, err := Compress(src).AppendBinary(dst)
	if err != nil {
		return dst, err
	}
	return out, nil
}

func (c Codec) Decompress(dst, src []byte) ([]byte, error) {
	b, err := ParseBlock(src)
	if err != nil {
		return dst, err
	}
	maxOutput := c.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	return decompress(dst, b, maxOutput)
}

var _ press.Codec = Codec{}

package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/presskit/press"
)

// maxStoredBits is the longest code the serialized table can carry.
const maxStoredBits = 16

// ErrCodeTooLong is returned when a table holds a code longer than the 16
// bits the serialized layout can store. Codes this long only come from very
// skewed frequency distributions; they are reported, never truncated.
var ErrCodeTooLong = errors.New("huffman: code longer than 16 bits cannot be serialized")

// A CodeTable maps each symbol present in an input to its code. The codes
// of a CodeTable are prefix-free.
type CodeTable struct {
	codes [256]Code
	n     int
}

// Derive walks the tree rooted at root and returns the code of every leaf:
// a left edge appends a 0 bit and a right edge a 1 bit. A tree consisting
// of a single leaf gets the code "0".
func Derive(root *Node) (*CodeTable, error) {
	if root == nil {
		return nil, &press.InvalidTreeError{Reason: "empty tree"}
	}

	t := new(CodeTable)
	if root.IsLeaf() {
		t.codes[root.Symbol] = MakeCode(1, 0)
		t.n = 1
		return t, nil
	}

	type stackItem struct {
		n    *Node
		path Code
	}

	stack := []stackItem{{n: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.n.IsLeaf() {
			if t.codes[top.n.Symbol].Size != 0 {
				return nil, &press.InvalidTreeError{Reason: fmt.Sprintf("symbol %d appears twice", top.n.Symbol)}
			}
			t.codes[top.n.Symbol] = top.path
			t.n++
			continue
		}
		if top.n.Left == nil || top.n.Right == nil {
			return nil, &press.InvalidTreeError{Reason: "internal node with a single child"}
		}
		assert.Assertf(top.path.Size < maxCodeBits, "code for path %s would exceed %d bits", top.path, maxCodeBits)

		stack = append(stack,
			stackItem{top.n.Right, top.path.append(1)},
			stackItem{top.n.Left, top.path.append(0)})
	}
	return t, nil
}

// NewCodeTable builds a CodeTable from explicit codes. It fails if a code is
// empty or too long, or if one code is a prefix of another.
func NewCodeTable(codes map[byte]Code) (*CodeTable, error) {
	t := new(CodeTable)
	for sym, hc := range codes {
		if hc.Size == 0 || hc.Size > maxCodeBits {
			return nil, fmt.Errorf("huffman: symbol %d: invalid code size %d", sym, hc.Size)
		}
		t.codes[sym] = hc
		t.n++
	}
	if err := t.checkPrefixFree(); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of symbols in the table.
func (t *CodeTable) Len() int {
	return t.n
}

// Code returns the code for sym, and whether sym is in the table.
func (t *CodeTable) Code(sym byte) (Code, bool) {
	hc := t.codes[sym]
	return hc, hc.Size != 0
}

// Symbols returns the symbols in the table, in ascending order.
func (t *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, t.n)
	for sym, hc := range t.codes {
		if hc.Size != 0 {
			syms = append(syms, byte(sym))
		}
	}
	return syms
}

// MaxSize returns the bit length of the longest code.
func (t *CodeTable) MaxSize() byte {
	var max byte
	for _, hc := range t.codes {
		if hc.Size > max {
			max = hc.Size
		}
	}
	return max
}

// WeightedLength returns the number of bits needed to encode an input with
// the frequencies in f.
func (t *CodeTable) WeightedLength(f *FrequencyTable) uint64 {
	var total uint64
	for sym, hc := range t.codes {
		total += uint64(hc.Size) * f.Count(byte(sym))
	}
	return total
}

// Equal reports whether t and other hold the same codes.
func (t *CodeTable) Equal(other *CodeTable) bool {
	return t.n == other.n && t.codes == other.codes
}

// Dump writes a programmer-readable debugging dump of the table to w.
func (t *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", t.n)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.MaxSize())
	for _, sym := range t.Symbols() {
		fmt.Fprintf(&buf, "\tCode(%d %q) = %s\n", sym, rune(sym), t.codes[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// MarshalBinary encodes the table as a uint16 symbol count followed by one
// (symbol, code length, code bits) record per symbol, big-endian.
func (t *CodeTable) MarshalBinary() ([]byte, error) {
	return t.appendBinary(make([]byte, 0, 2+4*t.n))
}

// UnmarshalBinary decodes a table written by MarshalBinary. data must hold
// exactly one table.
func (t *CodeTable) UnmarshalBinary(data []byte) error {
	parsed, n, err := parseTable(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return press.Corrupt("huffman", "%d trailing bytes after code table", len(data)-n)
	}
	*t = *parsed
	return nil
}

func (t *CodeTable) appendBinary(dst []byte) ([]byte, error) {
	dst = binary.BigEndian.AppendUint16(dst, uint16(t.n))
	for _, sym := range t.Symbols() {
		hc := t.codes[sym]
		if hc.Size > maxStoredBits {
			return nil, fmt.Errorf("%w: symbol %d has a %d-bit code", ErrCodeTooLong, sym, hc.Size)
		}
		dst = append(dst, sym, hc.Size)
		dst = binary.BigEndian.AppendUint16(dst, uint16(hc.Bits))
	}
	return dst, nil
}

// parseTable decodes a table from the start of data and returns it along
// with the number of bytes it used.
func parseTable(data []byte) (*CodeTable, int, error) {
	if len(data) < 2 {
		return nil, 0, press.Corrupt("huffman", "code table header truncated")
	}
	count := int(binary.BigEndian.Uint16(data))
	if count > 256 {
		return nil, 0, press.Corrupt("huffman", "code table lists %d symbols", count)
	}
	end := 2 + 4*count
	if len(data) < end {
		return nil, 0, press.Corrupt("huffman", "code table truncated: need %d bytes, have %d", end, len(data))
	}

	t := new(CodeTable)
	for rec := data[2:end]; len(rec) > 0; rec = rec[4:] {
		sym, size, bits := rec[0], rec[1], uint64(binary.BigEndian.Uint16(rec[2:]))
		if size == 0 || size > maxStoredBits {
			return nil, 0, press.Corrupt("huffman", "symbol %d has invalid code length %d", sym, size)
		}
		if bits>>size != 0 {
			return nil, 0, press.Corrupt("huffman", "symbol %d: code bits %#x do not fit in %d bits", sym, bits, size)
		}
		if t.codes[sym].Size != 0 {
			return nil, 0, press.Corrupt("huffman", "symbol %d listed twice", sym)
		}
		t.codes[sym] = MakeCode(size, bits)
		t.n++
	}

	if t.n == 1 {
		for _, hc := range t.codes {
			if hc.Size != 0 && hc != MakeCode(1, 0) {
				return nil, 0, press.Corrupt("huffman", "single-symbol table with code %s", hc)
			}
		}
	}
	if err := t.checkPrefixFree(); err != nil {
		return nil, 0, press.Corrupt("huffman", "%v", err)
	}
	return t, end, nil
}

// checkPrefixFree makes sure that no code is a prefix of another one.
func (t *CodeTable) checkPrefixFree() error {
	syms := t.Symbols()
	for i, a := range syms {
		for _, b := range syms[i+1:] {
			ca, cb := t.codes[a], t.codes[b]
			if ca.HasPrefix(cb) || cb.HasPrefix(ca) {
				return fmt.Errorf("huffman: codes %s (symbol %d) and %s (symbol %d) are not prefix-free", ca, a, cb, b)
			}
		}
	}
	return nil
}

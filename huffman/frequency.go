package huffman

// A FrequencyTable counts how often each byte value occurs in an input.
// It is not modified after it is built.
type FrequencyTable struct {
	counts   [256]uint64
	distinct int
	total    uint64
}

// Count builds the FrequencyTable of src. An empty src gives an empty table.
func Count(src []byte) *FrequencyTable {
	f := new(FrequencyTable)
	for _, b := range src {
		f.counts[b]++
	}
	f.finish()
	return f
}

// NewFrequencyTable builds a FrequencyTable from explicit counts.
// Symbols with a count of 0 are left out.
func NewFrequencyTable(counts map[byte]uint64) *FrequencyTable {
	f := new(FrequencyTable)
	for sym, n := range counts {
		f.counts[sym] = n
	}
	f.finish()
	return f
}

func (f *FrequencyTable) finish() {
	for _, n := range f.counts {
		if n != 0 {
			f.distinct++
			f.total += n
		}
	}
}

// Count returns the number of occurrences of sym.
func (f *FrequencyTable) Count(sym byte) uint64 {
	return f.counts[sym]
}

// Len returns the number of distinct symbols.
func (f *FrequencyTable) Len() int {
	return f.distinct
}

// Total returns the sum of all counts.
func (f *FrequencyTable) Total() uint64 {
	return f.total
}

// Symbols returns the symbols with a non-zero count, in ascending order.
func (f *FrequencyTable) Symbols() []byte {
	syms := make([]byte, 0, f.distinct)
	for sym, n := range f.counts {
		if n != 0 {
			syms = append(syms, byte(sym))
		}
	}
	return syms
}

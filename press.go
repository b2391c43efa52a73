// Package press holds the pieces shared by a small family of lossless
// codecs.
//
// Each codec lives in its own package:
//   - huffman: canonical Huffman coding with a serialized code table
//   - lz77: sliding-window LZ77 matching and token replay
//   - rle: byte run-length coding
//   - reference: standard codecs (brotli, flate, zstd, ...) for comparison
//
// They all implement Codec, so a caller (the press command, a web handler, a
// batch job) can pick one by name and treat them alike.
package press

// A Codec compresses and decompresses whole blocks of data.
//
// Implementations hold configuration only, so a Codec may be used from
// several goroutines at once.
type Codec interface {
	// Name returns the name the codec is registered under.
	Name() string

	// Compress appends the compressed form of src to dst and returns dst.
	Compress(dst, src []byte) ([]byte, error)

	// Decompress appends the original bytes encoded in src to dst and returns
	// dst. Malformed input is reported with a *CorruptDataError or an
	// *InvalidTokenError, and dst is returned unchanged.
	Decompress(dst, src []byte) ([]byte, error)
}

// Ratio returns the space saved by compression as a percentage:
// (1 - compressed/original) * 100. It returns 0 when original is 0.
func Ratio(original, compressed int) float64 {
	if original == 0 {
		return 0
	}
	return (1 - float64(compressed)/float64(original)) * 100
}

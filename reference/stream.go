package reference

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/presskit/press"
)

// Brotli is the brotli format (RFC 7932). Level ranges from 0 to 11.
type Brotli struct {
	Level     int
	MaxOutput int
}

var _ press.Codec = Brotli{}

func (Brotli) Name() string { return "brotli" }

func (c Brotli) Compress(dst, src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = brotli.DefaultCompression
	}
	return compressStream(dst, src, func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriterLevel(w, level), nil
	})
}

func (c Brotli) Decompress(dst, src []byte) ([]byte, error) {
	return decompressStream("brotli", dst, brotli.NewReader(bytes.NewReader(src)), maxOutput(c.MaxOutput))
}

// Flate is raw DEFLATE (RFC 1951). Level ranges from -2 (Huffman only) to 9.
type Flate struct {
	Level     int
	MaxOutput int
}

var _ press.Codec = Flate{}

func (Flate) Name() string { return "flate" }

func (c Flate) Compress(dst, src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = flate.DefaultCompression
	}
	return compressStream(dst, src, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})
}

func (c Flate) Decompress(dst, src []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(src))
	defer r.Close()
	return decompressStream("flate", dst, r, maxOutput(c.MaxOutput))
}

// Gzip is the gzip file format (RFC 1952), with the same levels as Flate.
type Gzip struct {
	Level     int
	MaxOutput int
}

var _ press.Codec = Gzip{}

func (Gzip) Name() string { return "gzip" }

func (c Gzip) Compress(dst, src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	return compressStream(dst, src, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriterLevel(w, level)
	})
}

func (c Gzip) Decompress(dst, src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return dst, press.Corrupt("gzip", "%v", err)
	}
	defer r.Close()
	return decompressStream("gzip", dst, r, maxOutput(c.MaxOutput))
}

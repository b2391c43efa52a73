package reference

import (
	"encoding/binary"
	"fmt"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/presskit/press"
)

// Zstd is the Zstandard format (RFC 8878). Level follows the zstd
// command-line levels, 1 to 22; each is mapped to the nearest level the
// encoder implements.
type Zstd struct {
	Level     int
	MaxOutput int
}

var _ press.Codec = Zstd{}

func (Zstd) Name() string { return "zstd" }

func (c Zstd) Compress(dst, src []byte) ([]byte, error) {
	level := zstd.SpeedDefault
	if c.Level != 0 {
		level = zstd.EncoderLevelFromZstd(c.Level)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return dst, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, dst), nil
}

func (c Zstd) Decompress(dst, src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(maxOutput(c.MaxOutput))),
	)
	if err != nil {
		return dst, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(src, dst)
	if err != nil {
		return dst, press.Corrupt("zstd", "%v", err)
	}
	return out, nil
}

// S2 is the S2 block format, an extension of Snappy. Level 0 or 1 selects
// the default encoder, 2 the better one, and 3 or more the best.
type S2 struct {
	Level     int
	MaxOutput int
}

var _ press.Codec = S2{}

func (S2) Name() string { return "s2" }

func (c S2) Compress(dst, src []byte) ([]byte, error) {
	var out []byte
	switch {
	case c.Level <= 1:
		out = s2.Encode(nil, src)
	case c.Level == 2:
		out = s2.EncodeBetter(nil, src)
	default:
		out = s2.EncodeBest(nil, src)
	}
	return append(dst, out...), nil
}

func (c S2) Decompress(dst, src []byte) ([]byte, error) {
	n, err := s2.DecodedLen(src)
	if err := checkDecodedLen("s2", n, err, maxOutput(c.MaxOutput)); err != nil {
		return dst, err
	}
	out, err := s2.Decode(nil, src)
	if err != nil {
		return dst, press.Corrupt("s2", "%v", err)
	}
	return append(dst, out...), nil
}

// Snappy is the Snappy block format. It has no levels.
type Snappy struct {
	MaxOutput int
}

var _ press.Codec = Snappy{}

func (Snappy) Name() string { return "snappy" }

func (Snappy) Compress(dst, src []byte) ([]byte, error) {
	return append(dst, snappy.Encode(nil, src)...), nil
}

func (c Snappy) Decompress(dst, src []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(src)
	if err := checkDecodedLen("snappy", n, err, maxOutput(c.MaxOutput)); err != nil {
		return dst, err
	}
	out, err := snappy.Decode(nil, src)
	if err != nil {
		return dst, press.Corrupt("snappy", "%v", err)
	}
	return append(dst, out...), nil
}

// LZ4 is an LZ4 block preceded by a small header, since the block format
// does not record the uncompressed size:
//
//	uvarint  uncompressed length
//	byte     0 if an LZ4 block follows, 1 if the data is stored as is
//
// Level 0 selects the fast compressor and 1 to 9 the high-compression one
// with increasing search depth.
type LZ4 struct {
	Level     int
	MaxOutput int
}

var _ press.Codec = LZ4{}

const (
	lz4Block  = 0
	lz4Stored = 1
)

func (LZ4) Name() string { return "lz4" }

func (c LZ4) Compress(dst, src []byte) ([]byte, error) {
	if c.Level < 0 || c.Level > 9 {
		return dst, fmt.Errorf("lz4: invalid compression level %d", c.Level)
	}

	block := make([]byte, lz4.CompressBlockBound(len(src)))
	var n int
	var err error
	if c.Level == 0 {
		var comp lz4.Compressor
		n, err = comp.CompressBlock(src, block)
	} else {
		comp := lz4.CompressorHC{Level: lz4.CompressionLevel(1 << (8 + c.Level))}
		n, err = comp.CompressBlock(src, block)
	}
	if err != nil {
		return dst, err
	}

	dst = binary.AppendUvarint(dst, uint64(len(src)))
	if n == 0 || n >= len(src) {
		dst = append(dst, lz4Stored)
		return append(dst, src...), nil
	}
	dst = append(dst, lz4Block)
	return append(dst, block[:n]...), nil
}

func (c LZ4) Decompress(dst, src []byte) ([]byte, error) {
	length, k := binary.Uvarint(src)
	if k <= 0 {
		return dst, press.Corrupt("lz4", "bad length header")
	}
	if length > uint64(maxOutput(c.MaxOutput)) {
		return dst, press.Corrupt("lz4", "declared length %d exceeds limit of %d bytes", length, maxOutput(c.MaxOutput))
	}
	src = src[k:]
	if len(src) == 0 {
		return dst, press.Corrupt("lz4", "missing block type")
	}
	kind, src := src[0], src[1:]

	switch kind {
	case lz4Stored:
		if uint64(len(src)) != length {
			return dst, press.Corrupt("lz4", "stored block has %d bytes, want %d", len(src), length)
		}
		return append(dst, src...), nil
	case lz4Block:
		out := make([]byte, length)
		n, err := lz4.UncompressBlock(src, out)
		if err != nil {
			return dst, press.Corrupt("lz4", "%v", err)
		}
		if uint64(n) != length {
			return dst, press.Corrupt("lz4", "block decoded to %d bytes, want %d", n, length)
		}
		return append(dst, out...), nil
	default:
		return dst, press.Corrupt("lz4", "unknown block type %d", kind)
	}
}

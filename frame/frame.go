// Package frame implements a self-describing container for compressed
// data. A frame names the codec that produced it and carries the length and
// xxHash32 checksum of the original data, so that it can be decompressed
// without further information and verified afterwards.
//
// The layout, with integers big-endian:
//
//	4 bytes  magic "PRS\x01"
//	1 byte   codec name length n (1..255)
//	n bytes  codec name
//	8 bytes  original length
//	4 bytes  xxHash32 of the original data, seed 0
//	rest     codec output
package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/xxHash/xxHash32"
	"github.com/presskit/press"
)

// Magic begins every frame.
const Magic = "PRS\x01"

const maxNameLen = 255

// A Header is the fixed part of a frame, before the codec output.
type Header struct {
	Codec    string
	Length   uint64
	Checksum uint32

	// Size is the length of the encoded header in bytes.
	Size int
}

// Encode compresses src with c and appends the resulting frame to dst.
func Encode(dst []byte, c press.Codec, src []byte) ([]byte, error) {
	name := c.Name()
	if len(name) == 0 || len(name) > maxNameLen {
		return dst, fmt.Errorf("frame: codec name %q must be 1 to %d bytes", name, maxNameLen)
	}

	out := append(dst, Magic...)
	out = append(out, byte(len(name)))
	out = append(out, name...)
	out = binary.BigEndian.AppendUint64(out, uint64(len(src)))
	out = binary.BigEndian.AppendUint32(out, xxHash32.Checksum(src, 0))

	out, err := c.Compress(out, src)
	if err != nil {
		return dst, fmt.Errorf("frame: %w", err)
	}
	return out, nil
}

// ReadHeader parses the header at the start of src.
func ReadHeader(src []byte) (Header, error) {
	var h Header
	if len(src) < len(Magic) || string(src[:len(Magic)]) != Magic {
		return h, press.Corrupt("frame", "bad magic number")
	}
	rest := src[len(Magic):]
	if len(rest) < 1 {
		return h, press.Corrupt("frame", "truncated header")
	}
	n := int(rest[0])
	if n == 0 {
		return h, press.Corrupt("frame", "empty codec name")
	}
	rest = rest[1:]
	if len(rest) < n+12 {
		return h, press.Corrupt("frame", "truncated header")
	}

	h.Codec = string(rest[:n])
	h.Length = binary.BigEndian.Uint64(rest[n:])
	h.Checksum = binary.BigEndian.Uint32(rest[n+8:])
	h.Size = len(Magic) + 1 + n + 12
	return h, nil
}

// Decode decompresses the frame in src, appending the original data to dst.
// lookup returns the codec for the name recorded in the frame.
func Decode(dst, src []byte, lookup func(name string) (press.Codec, error)) ([]byte, Header, error) {
	h, err := ReadHeader(src)
	if err != nil {
		return dst, h, err
	}
	c, err := lookup(h.Codec)
	if err != nil {
		return dst, h, fmt.Errorf("frame: %w", err)
	}

	out, err := c.Decompress(dst, src[h.Size:])
	if err != nil {
		return dst, h, err
	}
	data := out[len(dst):]
	if uint64(len(data)) != h.Length {
		return dst, h, press.Corrupt("frame", "decompressed %d bytes, header says %d", len(data), h.Length)
	}
	if sum := xxHash32.Checksum(data, 0); sum != h.Checksum {
		return dst, h, press.Corrupt("frame", "checksum mismatch: got %08x, want %08x", sum, h.Checksum)
	}
	return out, h, nil
}

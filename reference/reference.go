// Package reference wraps standard compression formats from third-party
// libraries as press.Codecs, so that the native codecs can be compared
// against them.
//
// Every codec treats a zero Level as the library's default level and a zero
// MaxOutput as DefaultMaxOutput. Decoder failures are reported as
// *press.CorruptDataError.
package reference

import (
	"bytes"
	"io"

	"github.com/presskit/press"
)

// DefaultMaxOutput is the limit on decompressed size when a codec's
// MaxOutput is zero.
const DefaultMaxOutput = 1 << 30

func maxOutput(n int) int {
	if n <= 0 {
		return DefaultMaxOutput
	}
	return n
}

// compressStream appends the output of a streaming compressor to dst.
func compressStream(dst, src []byte, newWriter func(w io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	w, err := newWriter(buf)
	if err != nil {
		return dst, err
	}
	if _, err := w.Write(src); err != nil {
		return dst, err
	}
	if err := w.Close(); err != nil {
		return dst, err
	}
	return buf.Bytes(), nil
}

// decompressStream appends everything r produces to dst, failing if there
// is more than limit bytes of it.
func decompressStream(name string, dst []byte, r io.Reader, limit int) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	n, err := buf.ReadFrom(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return dst, press.Corrupt(name, "%v", err)
	}
	if n > int64(limit) {
		return dst, press.Corrupt(name, "output exceeds limit of %d bytes", limit)
	}
	return buf.Bytes(), nil
}

// checkDecodedLen validates the length a block format declares up front.
func checkDecodedLen(name string, n int, err error, limit int) error {
	if err != nil {
		return press.Corrupt(name, "%v", err)
	}
	if n > limit {
		return press.Corrupt(name, "declared length %d exceeds limit of %d bytes", n, limit)
	}
	return nil
}

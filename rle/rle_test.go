package rle

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/presskit/press"
)

func TestEncode(t *testing.T) {
	for _, tt := range []struct {
		src  []byte
		want []byte
	}{
		{nil, nil},
		{[]byte("a"), []byte{1, 'a'}},
		{[]byte("aaabccdddd"), []byte{3, 'a', 1, 'b', 2, 'c', 4, 'd'}},
		{[]byte("3333"), []byte{4, '3'}},
		{bytes.Repeat([]byte{'x'}, 600), []byte{255, 'x', 255, 'x', 90, 'x'}},
	} {
		got := Encode(nil, tt.src)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Encode(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	sample, err := os.ReadFile("../testdata/sample.txt")
	if err != nil {
		t.Fatal(err)
	}
	for _, data := range [][]byte{
		{},
		[]byte("z"),
		[]byte("112233444"),
		bytes.Repeat([]byte("ab"), 300),
		append(bytes.Repeat([]byte{0}, 256), bytes.Repeat([]byte{255}, 511)...),
		sample,
	} {
		var c Codec
		compressed, err := c.Compress(nil, data)
		if err != nil {
			t.Fatal(err)
		}
		out, err := c.Decompress([]byte("prefix:"), compressed)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out, append([]byte("prefix:"), data...)) {
			t.Fatalf("decompressed output doesn't match for %d-byte input", len(data))
		}
	}
}

func TestDecode_Corrupt(t *testing.T) {
	for _, tt := range []struct {
		name string
		data []byte
		max  int
	}{
		{"odd length", []byte{2, 'a', 1}, 0},
		{"zero count", []byte{2, 'a', 0, 'b'}, 0},
		{"too long", []byte{200, 'a', 200, 'b'}, 300},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Codec{MaxOutput: tt.max}.Decompress(nil, tt.data)
			var e *press.CorruptDataError
			if !errors.As(err, &e) {
				t.Fatalf("expected CorruptDataError, got %v", err)
			}
			if out != nil {
				t.Errorf("expected no output, got %q", out)
			}
		})
	}
}

func BenchmarkEncode(b *testing.B) {
	data, err := os.ReadFile("../testdata/sample.txt")
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportMetric(press.Ratio(len(data), len(Encode(nil, data))), "ratio")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Encode(nil, data)
	}
}

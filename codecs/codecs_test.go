package codecs

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestNames(t *testing.T) {
	names := Names()
	if !reflect.DeepEqual(names[:3], []string{"huffman", "lz77", "rle"}) {
		t.Errorf("native codecs should come first, got %v", names)
	}
	if !reflect.DeepEqual(Native(), []string{"huffman", "lz77", "rle"}) {
		t.Errorf("Native() = %v", Native())
	}
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			t.Errorf("%s registered twice", name)
		}
		seen[name] = true
	}
}

func TestNew(t *testing.T) {
	data := []byte("she sells sea shells by the sea shore, sea shells, sea shells")
	for _, name := range Names() {
		c, err := New(name, Options{Window: 8, Level: 1})
		if err != nil {
			t.Fatal(err)
		}
		if c.Name() != name {
			t.Errorf("New(%q) returned a codec named %q", name, c.Name())
		}
		compressed, err := c.Compress(nil, data)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		out, err := c.Decompress(nil, compressed)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(out, data) {
			t.Errorf("%s: decompressed output doesn't match", name)
		}
	}
}

func TestNew_Unknown(t *testing.T) {
	for _, name := range []string{"", "zip", "HUFFMAN"} {
		if _, err := New(name, Options{}); !errors.Is(err, ErrUnknownCodec) {
			t.Errorf("New(%q): expected ErrUnknownCodec, got %v", name, err)
		}
	}
	if _, err := Lookup(Options{})("bzip2"); !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("expected ErrUnknownCodec, got %v", err)
	}
}

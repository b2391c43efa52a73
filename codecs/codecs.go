// Package codecs is the registry of every press.Codec, by name.
package codecs

import (
	"errors"
	"fmt"

	"github.com/presskit/press"
	"github.com/presskit/press/huffman"
	"github.com/presskit/press/lz77"
	"github.com/presskit/press/reference"
	"github.com/presskit/press/rle"
)

// ErrUnknownCodec is returned by New for a name that is not registered.
var ErrUnknownCodec = errors.New("unknown codec")

// Options configures a codec. Each codec uses the fields that apply to it
// and ignores the rest; zero values select the codec's defaults.
type Options struct {
	// Window is the LZ77 search window.
	Window int

	// Level is the compression level of a reference codec.
	Level int

	// MaxOutput limits the size of decompressed data.
	MaxOutput int
}

type entry struct {
	name   string
	native bool
	new    func(Options) press.Codec
}

var registry = []entry{
	{"huffman", true, func(o Options) press.Codec { return huffman.Codec{MaxOutput: o.MaxOutput} }},
	{"lz77", true, func(o Options) press.Codec { return lz77.Codec{Window: o.Window, MaxOutput: o.MaxOutput} }},
	{"rle", true, func(o Options) press.Codec { return rle.Codec{MaxOutput: o.MaxOutput} }},
	{"brotli", false, func(o Options) press.Codec { return reference.Brotli{Level: o.Level, MaxOutput: o.MaxOutput} }},
	{"flate", false, func(o Options) press.Codec { return reference.Flate{Level: o.Level, MaxOutput: o.MaxOutput} }},
	{"gzip", false, func(o Options) press.Codec { return reference.Gzip{Level: o.Level, MaxOutput: o.MaxOutput} }},
	{"zstd", false, func(o Options) press.Codec { return reference.Zstd{Level: o.Level, MaxOutput: o.MaxOutput} }},
	{"s2", false, func(o Options) press.Codec { return reference.S2{Level: o.Level, MaxOutput: o.MaxOutput} }},
	{"snappy", false, func(o Options) press.Codec { return reference.Snappy{MaxOutput: o.MaxOutput} }},
	{"lz4", false, func(o Options) press.Codec { return reference.LZ4{Level: o.Level, MaxOutput: o.MaxOutput} }},
}

// New returns the codec registered as name, configured by opts.
func New(name string, opts Options) (press.Codec, error) {
	for _, e := range registry {
		if e.name == name {
			return e.new(opts), nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownCodec, name)
}

// Lookup returns a function that resolves names with New and opts, in the
// form frame.Decode expects.
func Lookup(opts Options) func(name string) (press.Codec, error) {
	return func(name string) (press.Codec, error) {
		return New(name, opts)
	}
}

// Names lists every registered codec: the native ones first, then the
// reference ones.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Native lists the codecs implemented in this module.
func Native() []string {
	var names []string
	for _, e := range registry {
		if e.native {
			names = append(names, e.name)
		}
	}
	return names
}

package lz77

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"reflect"
	"testing"

	"github.com/presskit/press"
)

func testInputs() map[string][]byte {
	random := make([]byte, 4096)
	rand.New(rand.NewSource(1)).Read(random)

	skewed := make([]byte, 4096)
	r := rand.New(rand.NewSource(2))
	for i := range skewed {
		skewed[i] = "aaaaabbbc"[r.Intn(9)]
	}

	return map[string][]byte{
		"empty":    {},
		"one byte": []byte("x"),
		"repeated": bytes.Repeat([]byte("a"), 1000),
		"periodic": bytes.Repeat([]byte("abc"), 100),
		"sentence": []byte("the quick brown fox jumps over the lazy dog; the quick brown fox"),
		"random":   random,
		"skewed":   skewed,
	}
}

func TestCompress(t *testing.T) {
	for _, tt := range []struct {
		name   string
		src    string
		window int
		want   []Token
	}{
		{
			name: "empty",
			src:  "",
		},
		{
			name: "no repeats",
			src:  "abcdef",
			want: []Token{
				{Literal: 'a', HasLiteral: true},
				{Literal: 'b', HasLiteral: true},
				{Literal: 'c', HasLiteral: true},
				{Literal: 'd', HasLiteral: true},
				{Literal: 'e', HasLiteral: true},
				{Literal: 'f', HasLiteral: true},
			},
		},
		{
			name:   "overlapping run",
			src:    "aaaaaaaa",
			window: 7,
			want: []Token{
				{Literal: 'a', HasLiteral: true},
				{Offset: 1, Length: 7},
			},
		},
		{
			name: "match then literal",
			src:  "abcabcabcd",
			want: []Token{
				{Literal: 'a', HasLiteral: true},
				{Literal: 'b', HasLiteral: true},
				{Literal: 'c', HasLiteral: true},
				{Offset: 3, Length: 6, Literal: 'd', HasLiteral: true},
			},
		},
		{
			name: "tie goes to farthest",
			src:  "abXabYab",
			want: []Token{
				{Literal: 'a', HasLiteral: true},
				{Literal: 'b', HasLiteral: true},
				{Literal: 'X', HasLiteral: true},
				{Offset: 3, Length: 2, Literal: 'Y', HasLiteral: true},
				{Offset: 6, Length: 2},
			},
		},
		{
			name:   "outside window",
			src:    "abcdefab",
			window: 3,
			want: []Token{
				{Literal: 'a', HasLiteral: true},
				{Literal: 'b', HasLiteral: true},
				{Literal: 'c', HasLiteral: true},
				{Literal: 'd', HasLiteral: true},
				{Literal: 'e', HasLiteral: true},
				{Literal: 'f', HasLiteral: true},
				{Literal: 'a', HasLiteral: true},
				{Literal: 'b', HasLiteral: true},
			},
		},
		{
			name:   "inside window",
			src:    "abcdefab",
			window: 6,
			want: []Token{
				{Literal: 'a', HasLiteral: true},
				{Literal: 'b', HasLiteral: true},
				{Literal: 'c', HasLiteral: true},
				{Literal: 'd', HasLiteral: true},
				{Literal: 'e', HasLiteral: true},
				{Literal: 'f', HasLiteral: true},
				{Offset: 6, Length: 2},
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range []Searcher{&WindowSearch{Window: tt.window}, &HashChain{Window: tt.window}} {
				got := CompressWith([]byte(tt.src), s)
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("%T: got %v, want %v", s, got, tt.want)
				}
			}
		})
	}
}

func TestCompress_DefaultWindow(t *testing.T) {
	// 'a' repeats 21 bytes later: just outside the default window.
	src := []byte("abcdefghijklmnopqrstua")
	for _, window := range []int{0, -5, DefaultWindow} {
		tokens := Compress(src, window)
		if len(tokens) != len(src) {
			t.Errorf("window %d: got %d tokens, want %d literals", window, len(tokens), len(src))
		}
	}
	tokens := Compress(src, 21)
	if last := tokens[len(tokens)-1]; last != (Token{Offset: 21, Length: 1}) {
		t.Errorf("window 21: got %v", tokens)
	}
}

func TestSearchersAgree(t *testing.T) {
	for name, data := range testInputs() {
		for _, window := range []int{1, 2, 5, DefaultWindow, 255, 4096} {
			naive := CompressWith(data, &WindowSearch{Window: window})
			chained := CompressWith(data, &HashChain{Window: window})
			if !reflect.DeepEqual(naive, chained) {
				t.Errorf("%s, window %d: searchers produced different tokens", name, window)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for name, data := range testInputs() {
		t.Run(name, func(t *testing.T) {
			for _, window := range []int{0, 1, 7, 300} {
				out, err := Decompress(Compress(data, window))
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(out, data) {
					t.Fatalf("window %d: decompressed output doesn't match", window)
				}
			}

			c := Codec{Window: 64}
			compressed, err := c.Compress(nil, data)
			if err != nil {
				t.Fatal(err)
			}
			out, err := c.Decompress(nil, compressed)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(out, data) {
				t.Fatal("decompressed output doesn't match after serialization")
			}
		})
	}
}

func TestRoundTripFile(t *testing.T) {
	data, err := os.ReadFile("../testdata/sample.txt")
	if err != nil {
		t.Fatal(err)
	}
	tokens := Compress(data, 0)
	if len(tokens) >= len(data) {
		t.Errorf("expected matches, got %d tokens for %d bytes", len(tokens), len(data))
	}
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
		t.Fatal("decompressed output doesn't match")
	}
}

func TestDecompress_Overlap(t *testing.T) {
	out, err := Decompress([]Token{
		{Literal: 'a', HasLiteral: true},
		{Literal: 'b', HasLiteral: true},
		{Offset: 2, Length: 5, Literal: '!', HasLiteral: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "abababa!" {
		t.Errorf("got %q, want %q", out, "abababa!")
	}
}

func TestDecompress_Invalid(t *testing.T) {
	for _, tt := range []struct {
		name   string
		tokens []Token
		index  int
	}{
		{"negative offset", []Token{{Offset: -1, Length: 1, HasLiteral: true}}, 0},
		{"negative length", []Token{{Literal: 'a', HasLiteral: true}, {Offset: 1, Length: -1}}, 1},
		{"offset past start", []Token{{Literal: 'a', HasLiteral: true}, {Offset: 2, Length: 1}}, 1},
		{"length without offset", []Token{{Length: 3, HasLiteral: true}}, 0},
		{"offset without length", []Token{{Literal: 'a', HasLiteral: true}, {Offset: 1, HasLiteral: true}}, 1},
		{"empty token", []Token{{}}, 0},
		{"missing literal mid-stream", []Token{{Literal: 'a', HasLiteral: true}, {Offset: 1, Length: 1}, {Literal: 'b', HasLiteral: true}}, 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Decompress(tt.tokens)
			var e *press.InvalidTokenError
			if !errors.As(err, &e) {
				t.Fatalf("expected InvalidTokenError, got %v", err)
			}
			if e.Index != tt.index {
				t.Errorf("error names token %d, want %d", e.Index, tt.index)
			}
			if out != nil {
				t.Errorf("expected no output, got %q", out)
			}
		})
	}
}

func TestCodec_MaxOutput(t *testing.T) {
	data := bytes.Repeat([]byte("z"), 100)
	c := Codec{MaxOutput: 99}
	compressed, err := c.Compress(nil, data)
	if err != nil {
		t.Fatal(err)
	}
	var e *press.InvalidTokenError
	if _, err := c.Decompress(nil, compressed); !errors.As(err, &e) {
		t.Fatalf("expected InvalidTokenError, got %v", err)
	}
	c.MaxOutput = 100
	if _, err := c.Decompress(nil, compressed); err != nil {
		t.Fatal(err)
	}
}

func TestTextEncoder(t *testing.T) {
	got := TextEncoder{}.Encode(nil, Compress([]byte("abcabcabcd"), 0))
	if string(got) != "abc<6,3>d" {
		t.Errorf("got %q, want %q", got, "abc<6,3>d")
	}
	got = TextEncoder{}.Encode(nil, Compress([]byte("aaaaaaaa"), 0))
	if string(got) != "a<7,1>" {
		t.Errorf("got %q, want %q", got, "a<7,1>")
	}
}

func TestTokenString(t *testing.T) {
	for _, tt := range []struct {
		tok  Token
		want string
	}{
		{Token{Literal: 'a', HasLiteral: true}, "(0,0,'a')"},
		{Token{Offset: 1, Length: 7}, "(1,7,-)"},
		{Token{Offset: 3, Length: 2, Literal: 0, HasLiteral: true}, `(3,2,'\x00')`},
	} {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("aaaaaaaa"), 7)
	f.Add([]byte("abXabYab"), 20)
	f.Add([]byte{}, 0)
	f.Fuzz(func(t *testing.T, data []byte, window int) {
		if window > 1<<12 {
			window = 1 << 12
		}
		naive := CompressWith(data, &WindowSearch{Window: window})
		chained := CompressWith(data, &HashChain{Window: window})
		if !reflect.DeepEqual(naive, chained) {
			t.Fatal("searchers produced different tokens")
		}
		out, err := Decompress(chained)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out, data) {
			t.Fatal("decompressed output doesn't match")
		}
	})
}

func FuzzDecompress(f *testing.F) {
	seed, _ := AppendTokens(nil, Compress([]byte("abcabcabcd"), 0))
	f.Add(seed)
	f.Fuzz(func(t *testing.T, data []byte) {
		c := Codec{MaxOutput: 1 << 20}
		out, err := c.Decompress(nil, data)
		if err != nil {
			return
		}
		if len(out) > c.MaxOutput {
			t.Fatalf("output of %d bytes exceeds limit", len(out))
		}
	})
}

func benchmark(b *testing.B, s Searcher) {
	b.StopTimer()
	b.ReportAllocs()
	data, err := os.ReadFile("../testdata/sample.txt")
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	compressed, _ := AppendTokens(nil, CompressWith(data, s))
	b.ReportMetric(press.Ratio(len(data), len(compressed)), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		CompressWith(data, s)
	}
}

func BenchmarkWindowSearch(b *testing.B) {
	benchmark(b, &WindowSearch{})
}

func BenchmarkHashChain(b *testing.B) {
	benchmark(b, &HashChain{})
}

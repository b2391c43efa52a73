package lz77

// An AbsoluteMatch stores a match as indexes into the input.
type AbsoluteMatch struct {
	// Start is the index of the first byte.
	Start int

	// End is the index of the byte after the last byte
	// (so that End - Start = Length).
	End int

	// Match is the index of the earlier data that matches
	// (Start - Match = Offset). It may be as close as Start-1, in which
	// case the match overlaps the bytes it copies.
	Match int
}

// A Searcher is the source of matches for a GreedyParser.
type Searcher interface {
	// Reset prepares the Searcher to look for matches in src.
	Reset(src []byte)

	// Search looks for matches for the bytes starting at pos and appends
	// them to dst. Each match appended is longer than the ones before it.
	Search(dst []AbsoluteMatch, pos int) []AbsoluteMatch
}

// WindowSearch is a Searcher that tries every start position in the window
// in turn, from the farthest to the nearest. Of several longest matches it
// keeps the first one found.
type WindowSearch struct {
	// Window is how many bytes to look back for the start of a match.
	// The default is DefaultWindow.
	Window int

	src []byte
}

func (w *WindowSearch) Reset(src []byte) {
	w.src = src
}

func (w *WindowSearch) Search(dst []AbsoluteMatch, pos int) []AbsoluteMatch {
	start := pos - windowSize(w.Window)
	if start < 0 {
		start = 0
	}

	var length int
	for candidate := start; candidate < pos; candidate++ {
		end := extendMatch(w.src, candidate, pos)
		if end-pos > length {
			dst = append(dst, AbsoluteMatch{
				Start: pos,
				End:   end,
				Match: candidate,
			})
			length = end - pos
		}
	}
	return dst
}

// A GreedyParser implements the greedy matching strategy: it goes from the
// start of the input to the end, taking the longest match at each position
// and the byte after it as the token's literal.
type GreedyParser struct {
	matchCache []AbsoluteMatch
}

// Parse gets matches for src from s, which must already be Reset to src,
// and appends the resulting tokens to dst.
func (p *GreedyParser) Parse(dst []Token, src []byte, s Searcher) []Token {
	matches := p.matchCache[:0]

	for pos := 0; pos < len(src); {
		matches = s.Search(matches[:0], pos)
		m := longestMatch(matches)
		if m.End <= m.Start {
			dst = append(dst, Token{Literal: src[pos], HasLiteral: true})
			pos++
			continue
		}

		t := Token{
			Offset: m.Start - m.Match,
			Length: m.End - m.Start,
		}
		if m.End < len(src) {
			t.Literal = src[m.End]
			t.HasLiteral = true
		}
		dst = append(dst, t)
		pos = m.End + 1
	}

	p.matchCache = matches[:0]
	return dst
}

func longestMatch(matches []AbsoluteMatch) AbsoluteMatch {
	var longest AbsoluteMatch

	for _, m := range matches {
		if m.End-m.Start > longest.End-longest.Start {
			longest = m
		}
	}

	return longest
}

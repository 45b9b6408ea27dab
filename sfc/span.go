package sfc

// Span is a half-open [Lo, Hi) slice of the cursor's code point buffer.
// Spans are non-owning views; Text materializes a string only when asked.
type Span struct {
	Lo, Hi int
}

// IsEmpty reports whether the span covers no code points. The zero span is
// used throughout the tree for "absent".
func (s Span) IsEmpty() bool { return s.Lo == s.Hi }

// Len returns the number of code points covered.
func (s Span) Len() int { return s.Hi - s.Lo }

func (s Span) text(src []rune) string {
	if s.IsEmpty() {
		return ""
	}
	return string(src[s.Lo:s.Hi])
}

// eq compares the span's text against lit without allocating.
func (s Span) eq(src []rune, lit string) bool {
	i := s.Lo
	for _, want := range lit {
		if i >= s.Hi || src[i] != want {
			return false
		}
		i++
	}
	return i == s.Hi
}

// eqFold is eq with ASCII case folding of the span's text.
func (s Span) eqFold(src []rune, lit string) bool {
	i := s.Lo
	for _, want := range lit {
		if i >= s.Hi || foldASCII(src[i]) != want {
			return false
		}
		i++
	}
	return i == s.Hi
}

// eqSpan compares two spans over the same buffer.
func (s Span) eqSpan(src []rune, other Span) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if src[s.Lo+i] != src[other.Lo+i] {
			return false
		}
	}
	return true
}

// startsWith reports whether lit is a prefix of the span's text.
func (s Span) startsWith(src []rune, lit string) bool {
	i := s.Lo
	for _, want := range lit {
		if i >= s.Hi || src[i] != want {
			return false
		}
		i++
	}
	return true
}

// matchSome probes every candidate in parallel against the span's text and
// returns the index of the one that matches, or -1. With allowPrefix, a
// candidate that is a proper prefix of the span also matches. A disabled
// count terminates the scan as soon as every candidate has failed.
func (s Span) matchSome(src []rune, allowPrefix bool, candidates []string) int {
	return s.match(src, allowPrefix, false, candidates)
}

// matchSomeFold is matchSome with ASCII case folding of the span's text;
// candidates are expected to be lower case.
func (s Span) matchSomeFold(src []rune, allowPrefix bool, candidates []string) int {
	return s.match(src, allowPrefix, true, candidates)
}

func (s Span) match(src []rune, allowPrefix, fold bool, candidates []string) int {
	cands := make([][]rune, len(candidates))
	for i, c := range candidates {
		cands[i] = []rune(c)
	}
	next := make([]int, len(cands))
	disabled := make([]bool, len(cands))
	disabledCount := 0
	prefixIdx := -1

	for i := s.Lo; i < s.Hi; i++ {
		a := src[i]
		if fold {
			a = foldASCII(a)
		}
		for j := range cands {
			if disabled[j] {
				continue
			}
			if next[j] < len(cands[j]) {
				if cands[j][next[j]] == a {
					next[j]++
					continue
				}
			} else if allowPrefix {
				prefixIdx = j
				continue
			}
			disabled[j] = true
			disabledCount++
		}
		if disabledCount == len(cands) {
			return prefixIdx
		}
	}
	for j := range cands {
		if !disabled[j] && next[j] == len(cands[j]) {
			return j
		}
	}
	return -1
}

func foldASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

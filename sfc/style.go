package sfc

// The scoped-style scanner records offsets inside each rule's selector: the
// colon that opens a pseudo-class chain, and the rule's opening brace unless
// it directly follows a pseudo-class. Combinators record nothing, so a
// compound selector such as `.foo > .bar` yields a single offset:
//
//	foo {}
//	    ^
//	.foo > .bar:hover {}
//	           ^      ^
//
// The external scope-rewriting pass uses these offsets to splice attribute
// selectors into the style text.

type selectorNext int

const (
	selectorContent selectorNext = iota
	styleClose
)

// scanScopedStyle scans a scoped <style> body, collecting the selector
// offsets described above, and stops right after the closing </style> tag.
func scanScopedStyle(c *Cursor) ([]int, error) {
	ends := []int{}
	for {
		if _, err := c.readSkipSpace(); err != nil {
			return nil, err
		}
		c.pos--

		next, err := scanSelector(c, &ends)
		if err != nil {
			return nil, err
		}
		if next == styleClose {
			return ends, nil
		}
		if err := scanSelectorContent(c); err != nil {
			return nil, err
		}
	}
}

// scanSelectorContent consumes a rule block up to its closing brace.
func scanSelectorContent(c *Cursor) error {
	for {
		r, err := c.read()
		if err != nil {
			return err
		}
		switch {
		case r == '}':
			return nil
		case r == '/' && peekIs(c, '*'):
			if err := scanCSSComment(c); err != nil {
				return err
			}
		}
	}
}

func scanSelector(c *Cursor, ends *[]int) (selectorNext, error) {
	// the outer loop walks the selector components: `foo  bar` is two
components:
	for {
		pseudoNext := false

		for !pseudoNext {
			r, err := c.read()
			if err != nil {
				return 0, err
			}
			switch {
			case r == '/' && peekIs(c, '*'):
				if err := scanCSSComment(c); err != nil {
					return 0, err
				}
			case r == '[':
				if err := scanAttributeSelector(c); err != nil {
					return 0, err
				}
			case r == ':':
				*ends = append(*ends, c.pos-1)
				pseudoNext = true
			case r == '<':
				if isStyleCloseTag(c) {
					return styleClose, nil
				}
			case r == '{':
				*ends = append(*ends, c.pos-1)
				return selectorContent, nil
			case isCombinator(r):
				if err := scanCombinator(c); err != nil {
					return 0, err
				}
				continue components
			}
		}

		// consume the :hover, :focus, ... chain
		for {
			r, err := c.read()
			if err != nil {
				return 0, err
			}
			switch {
			case r == '/' && peekIs(c, '*'):
				if err := scanCSSComment(c); err != nil {
					return 0, err
				}
			case r == '<':
				if isStyleCloseTag(c) {
					return styleClose, nil
				}
			case r == '{':
				return selectorContent, nil
			case isCombinator(r):
				if err := scanCombinator(c); err != nil {
					return 0, err
				}
				continue components
			}
		}
	}
}

// isStyleCloseTag probes for the literal /style> after a '<', restoring the
// cursor when it does not match.
func isStyleCloseTag(c *Cursor) bool {
	start := c.pos
	for _, want := range "/style>" {
		r, ok := c.peek()
		if !ok || r != want {
			c.pos = start
			return false
		}
		c.pos++
	}
	return true
}

func isCombinator(r rune) bool {
	return isSpace(r) || r == '*' || r == '>' || r == '+' || r == '~'
}

func scanCombinator(c *Cursor) error {
	for {
		r, err := c.mustPeek()
		if err != nil {
			return err
		}
		if !isCombinator(r) {
			return nil
		}
		c.pos++
	}
}

// scanAttributeSelector consumes `[foo=bar]` after the opening bracket.
func scanAttributeSelector(c *Cursor) error {
	for {
		r, err := c.read()
		if err != nil {
			return err
		}
		switch {
		case r == '/' && peekIs(c, '*'):
			if err := scanCSSComment(c); err != nil {
				return err
			}
		case r == ']':
			return nil
		}
	}
}

// scanCSSComment consumes a /* ... */ comment after the opening slash.
func scanCSSComment(c *Cursor) error {
	c.pos++ // the '*'
	for {
		r, err := c.read()
		if err != nil {
			return err
		}
		if r == '*' {
			p, err := c.mustPeek()
			if err != nil {
				return err
			}
			if p == '/' {
				c.pos++
				return nil
			}
		}
	}
}

func peekIs(c *Cursor, want rune) bool {
	r, ok := c.peek()
	return ok && r == want
}

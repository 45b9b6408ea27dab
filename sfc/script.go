package sfc

// scanScript scans a <script> body until its closing tag, treating strings,
// template literals, comments and bracketed regions as inert. It returns
// the span of the first top-level "export default" keyword pair, or the
// zero span when the script has none. On return the cursor sits right
// after the </script> tag.
func scanScript(c *Cursor) (Span, error) {
	var marker Span
	start := c.pos

	for {
		r, err := c.read()
		if err != nil {
			return Span{}, err
		}

		ok, err := handleCommon(c, r, nil, false)
		if err != nil {
			return Span{}, err
		}
		if ok {
			continue
		}

		switch r {
		case 'e':
			at := c.pos - 1
			// both keywords must sit on whitespace boundaries
			if !marker.IsEmpty() || (at > start && !isSpace(c.src[at-1])) {
				continue
			}
			ok, err := matchKeyword(c, "xport")
			if err != nil {
				return Span{}, err
			}
			if !ok {
				continue
			}
			p, err := c.mustPeek()
			if err != nil {
				return Span{}, err
			}
			if !isSpace(p) {
				continue
			}
			r2, err := c.readSkipSpace()
			if err != nil {
				return Span{}, err
			}
			if r2 != 'd' {
				c.pos--
				continue
			}
			ok, err = matchKeyword(c, "efault")
			if err != nil {
				return Span{}, err
			}
			if !ok {
				continue
			}
			p, err = c.mustPeek()
			if err != nil {
				return Span{}, err
			}
			if !isSpace(p) {
				continue
			}
			marker = Span{at, c.pos}

		case '<':
			p, err := c.mustPeek()
			if err != nil {
				return Span{}, err
			}
			if p != '/' && !isASCIIAlnum(p) {
				continue
			}
			tag, err := parseTag(c, false)
			if err != nil {
				if IsEOF(err) {
					return Span{}, err
				}
				// not a real tag; keep scanning from where the attempt stopped
				continue
			}
			if tag.Type != TagClose {
				return Span{}, c.errf(ErrMismatchedClose, "expected script closure but got %s tag", tag.Type)
			}
			if !tag.Name.eq(c.src, "script") {
				return Span{}, c.errf(ErrMismatchedClose, "expected script closure but got %s", c.text(tag.Name))
			}
			return marker, nil
		}
	}
}

// matchKeyword consumes the remaining code points of a keyword whose first
// code point was already read. On the first mismatch the offending code
// point is handed back to the cursor.
func matchKeyword(c *Cursor, rest string) (bool, error) {
	for _, want := range rest {
		r, err := c.read()
		if err != nil {
			return false, err
		}
		if r != want {
			c.pos--
			return false, nil
		}
	}
	return true, nil
}

package sfc

import "fmt"

// Cursor owns the source buffer and the monotonic read index shared by every
// stage of the compiler. The buffer is a slice of code points so that spans
// address the same units the parser reads.
//
// The cursor never back-tracks on its own; callers that need speculative
// parsing save and restore pos explicitly.
type Cursor struct {
	src []rune
	pos int

	// locals counts the template-local names currently visible (v-for
	// iteration variables, $event inside handlers). Counted rather than set
	// so nested loops can reuse a name.
	locals    map[string]int
	loopDepth int
}

// NewCursor decodes source into a code point buffer and positions the read
// index at the start.
func NewCursor(source string) *Cursor {
	return &Cursor{
		src:    []rune(source),
		locals: make(map[string]int),
	}
}

// peek returns the next code point without advancing.
func (c *Cursor) peek() (rune, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos], true
}

func (c *Cursor) mustPeek() (rune, error) {
	r, ok := c.peek()
	if !ok {
		return 0, c.eof()
	}
	return r, nil
}

// read returns the next code point, advancing the index.
func (c *Cursor) read() (rune, error) {
	r, ok := c.peek()
	if !ok {
		return 0, c.eof()
	}
	c.pos++
	return r, nil
}

// readSkipSpace advances past ASCII whitespace, then reads one code point.
func (c *Cursor) readSkipSpace() (rune, error) {
	for {
		r, err := c.read()
		if err != nil {
			return 0, err
		}
		if !isSpace(r) {
			return r, nil
		}
	}
}

// skipSpace advances past ASCII whitespace without requiring more input.
func (c *Cursor) skipSpace() {
	for {
		r, ok := c.peek()
		if !ok || !isSpace(r) {
			return
		}
		c.pos++
	}
}

// expect reads and matches each code point of lit.
func (c *Cursor) expect(lit string) error {
	for _, want := range lit {
		r, err := c.read()
		if err != nil {
			return err
		}
		if r != want {
			return c.errf(ErrUnexpectedChar, "expected %q but got %q", want, r)
		}
	}
	return nil
}

// scanTo advances until the next exact occurrence of lit, returning the span
// covering it. The cursor is left after the occurrence.
func (c *Cursor) scanTo(lit string) (Span, error) {
	want := []rune(lit)
	if len(want) == 0 {
		return Span{}, c.errf(ErrUnexpectedChar, "cannot scan for empty literal")
	}
outer:
	for {
		r, err := c.read()
		if err != nil {
			return Span{}, err
		}
		if r != want[0] {
			continue
		}
		start := c.pos - 1
		for i := 1; i < len(want); i++ {
			r, err = c.read()
			if err != nil {
				return Span{}, err
			}
			if r != want[i] {
				// an occurrence may start inside the failed partial match
				c.pos = start + 1
				continue outer
			}
		}
		return Span{start, c.pos}, nil
	}
}

// text materializes the span against the cursor's buffer.
func (c *Cursor) text(s Span) string {
	return s.text(c.src)
}

// pushLocals makes names visible to the identifier walker until the matching
// releaseLocals call.
func (c *Cursor) pushLocals(names []string) {
	for _, n := range names {
		c.locals[n]++
	}
}

func (c *Cursor) releaseLocals(names []string) {
	for _, n := range names {
		if c.locals[n]--; c.locals[n] <= 0 {
			delete(c.locals, n)
		}
	}
}

func (c *Cursor) isLocal(name string) bool {
	_, ok := c.locals[name]
	return ok
}

func (c *Cursor) eof() error {
	return c.newErr(ErrUnexpectedEOF, "unexpected end of input")
}

// newErr attaches a short span near the current read position so the host
// can render the fault over the original buffer.
func (c *Cursor) newErr(kind ErrKind, msg string) *Error {
	at := Span{}
	switch {
	case c.pos > 1:
		at = Span{c.pos - 2, c.pos - 1}
	case len(c.src) > 0:
		at = Span{0, 1}
	}
	return &Error{Kind: kind, Msg: msg, At: at}
}

func (c *Cursor) errf(kind ErrKind, format string, args ...any) *Error {
	return c.newErr(kind, fmt.Sprintf(format, args...))
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

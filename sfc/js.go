package sfc

// reservedWords is the identifier blocklist for free-reference collection:
// the ECMAScript reserved words plus arguments, undefined, true, false and
// null. "this" and "super" are deliberately absent; "this" rewrites to _vm.
var reservedWords = []string{
	"abstract", "arguments", "boolean", "break", "byte", "case", "catch",
	"char", "class", "const", "continue", "debugger", "default", "delete",
	"do", "double", "else", "enum", "eval", "export", "extends", "false",
	"final", "finally", "float", "for", "function", "goto", "if",
	"implements", "import", "in", "instanceof", "int", "interface", "let",
	"long", "native", "new", "null", "package", "private", "protected",
	"public", "return", "short", "static", "switch", "synchronized", "throw",
	"throws", "transient", "true", "try", "typeof", "undefined", "var",
	"void", "volatile", "while", "with", "yield",
}

type quoteKind int

const (
	quoteHTMLDouble quoteKind = iota
	quoteHTMLSingle
	quoteJSDouble
	quoteJSSingle
	quoteJSBacktick
)

type inlineReason int

const (
	reasonClosure inlineReason = iota
	reasonComma
)

// parseTemplateVar scans one {{ ... }} interpolation body. The cursor must
// be positioned after the opening braces; on return it is after the closing
// braces.
func parseTemplateVar(c *Cursor) ([]Span, error) {
	refs := make([]Span, 0, 1)
	if _, err := parseInline(c, '}', &refs, false); err != nil {
		return nil, err
	}
	r, err := c.read()
	if err != nil {
		return nil, err
	}
	if r != '}' {
		return nil, c.errf(ErrUnexpectedChar, "expected '}' but got %q", r)
	}
	return refs, nil
}

// parseTemplateArg scans one directive value expression terminated by its
// quote, collecting free references.
func parseTemplateArg(c *Cursor, closure rune) ([]Span, error) {
	refs := make([]Span, 0, 1)
	if _, err := parseInline(c, closure, &refs, false); err != nil {
		return nil, err
	}
	return refs, nil
}

// rewriteVM splices the expression span: text between free references is
// copied verbatim, a literal "this" becomes "_vm", and every other free
// reference gets a "_vm." prefix. Locally bound names were already dropped
// when the references were collected.
func rewriteVM(c *Cursor, expr Span, refs []Span) string {
	return spliceRefs(c.src, expr, refs)
}

// parseInline scans one expression context up to the closure code point,
// e.g. a directive value or the inside of parentheses. With returnOnComma
// it also stops at a top-level comma (object literal values).
func parseInline(c *Cursor, closure rune, refs *[]Span, returnOnComma bool) (inlineReason, error) {
	for {
		r, err := c.read()
		if err != nil {
			return 0, err
		}
		if r == closure {
			return reasonClosure, nil
		}
		ok, err := handleCommon(c, r, refs, true)
		if err != nil {
			return 0, err
		}
		if ok {
			continue
		}
		if isIdentStart(r) {
			if err := parsePotentialVar(c, refs); err != nil {
				return 0, err
			}
			continue
		}
		if r == ',' && returnOnComma {
			return reasonComma, nil
		}
	}
}

// parseBlockLike scans statement-level code up to the closure code point:
// function bodies, ${...} substitutions, bracketed subscripts.
func parseBlockLike(c *Cursor, closure rune, refs *[]Span) error {
	for {
		r, err := c.read()
		if err != nil {
			return err
		}
		if r == closure {
			return nil
		}
		ok, err := handleCommon(c, r, refs, false)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if isIdentStart(r) {
			if err := parsePotentialVar(c, refs); err != nil {
				return err
			}
		}
	}
}

// parseObject scans a {...} object literal: keys before a ':' are skipped,
// values are inline expressions terminated by ',' or the closing brace.
func parseObject(c *Cursor, refs *[]Span) error {
	for {
		r, err := c.read()
		if err != nil {
			return err
		}
		if r == '}' {
			return nil
		}
		ok, err := handleCommon(c, r, refs, true)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if r == ':' {
			reason, err := parseInline(c, '}', refs, true)
			if err != nil {
				return err
			}
			if reason == reasonClosure {
				return nil
			}
		}
	}
}

// parsePotentialVar reads an identifier whose first code point was already
// consumed, records it as a free reference unless reserved or locally
// bound, and then skips the property access chain hanging off it.
func parsePotentialVar(c *Cursor, refs *[]Span) error {
	r, name, err := parseJSName(c)
	if err != nil {
		return err
	}

	if name.matchSome(c.src, false, reservedWords) >= 0 {
		c.pos--
		return nil
	}

	if refs != nil && !c.isLocal(c.text(name)) {
		*refs = append(*refs, name)
	}

	for {
		// look for a chain continuation: '.', '?.', a subscript, or the end
		// of the chain
		chained := false
		for !chained {
			switch {
			case isSpace(r):
			case r == '.':
				chained = true
			case r == '?':
				p, err := c.mustPeek()
				if err != nil {
					return err
				}
				if p != '.' {
					c.pos--
					return nil
				}
				c.pos++
				chained = true
			case r == '[':
				if err := parseBlockLike(c, ']', refs); err != nil {
					return err
				}
			case r == ';':
				return nil
			default:
				c.pos--
				return nil
			}
			if chained {
				break
			}
			if r, err = c.read(); err != nil {
				return err
			}
		}
		// consume the chained segment; a '[' terminator loops back into the
		// subscript arm above
		if r, _, err = parseJSName(c); err != nil {
			return err
		}
	}
}

// parseJSName reads an identifier whose first code point was already
// consumed, returning the terminating code point and the identifier span.
func parseJSName(c *Cursor) (rune, Span, error) {
	start := c.pos - 1
	for {
		r, err := c.read()
		if err != nil {
			return 0, Span{}, err
		}
		if !isIdentRune(r) {
			return r, Span{start, c.pos - 1}, nil
		}
	}
}

// handleCommon consumes the inert regions shared by every scanning mode:
// strings, template literals, comments and bracketed sub-expressions. It
// reports whether r started such a region.
func handleCommon(c *Cursor, r rune, refs *[]Span, inline bool) (bool, error) {
	switch r {
	case '\'':
		return true, parseQuotes(c, quoteJSSingle, refs)
	case '"':
		return true, parseQuotes(c, quoteJSDouble, refs)
	case '`':
		return true, parseQuotes(c, quoteJSBacktick, refs)
	case '/':
		return parseJSComment(c)
	case '{':
		if inline {
			return true, parseObject(c, refs)
		}
		return true, parseBlockLike(c, '}', refs)
	case '(':
		_, err := parseInline(c, ')', refs, false)
		return true, err
	case '[':
		_, err := parseInline(c, ']', refs, false)
		return true, err
	}
	return false, nil
}

// parseQuotes consumes a quoted run. JS kinds honor backslash escapes, and
// backticks recurse into ${...} substitutions.
func parseQuotes(c *Cursor, kind quoteKind, refs *[]Span) error {
	var quote rune
	var escape bool
	switch kind {
	case quoteHTMLDouble:
		quote = '"'
	case quoteHTMLSingle:
		quote = '\''
	case quoteJSDouble:
		quote, escape = '"', true
	case quoteJSSingle:
		quote, escape = '\'', true
	case quoteJSBacktick:
		quote, escape = '`', true
	}
	backtick := kind == quoteJSBacktick

	for {
		r, err := c.read()
		if err != nil {
			return err
		}
		switch {
		case escape && r == '\\':
			if _, err := c.read(); err != nil {
				return err
			}
		case backtick && r == '$':
			p, err := c.mustPeek()
			if err != nil {
				return err
			}
			if p == '{' {
				c.pos++
				if err := parseBlockLike(c, '}', refs); err != nil {
					return err
				}
			}
		case r == quote:
			return nil
		}
	}
}

// parseJSComment consumes a // or /* comment when the cursor sits right
// after a '/'. It reports whether a comment was consumed.
func parseJSComment(c *Cursor) (bool, error) {
	p, err := c.mustPeek()
	if err != nil {
		return false, err
	}
	switch p {
	case '/':
		c.pos++
		if _, err := c.scanTo("\n"); err != nil {
			return false, err
		}
		// leave the newline for the caller
		c.pos--
		return true, nil
	case '*':
		c.pos++
		if _, err := c.scanTo("*/"); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}

// isIdentStart matches the first code point of a candidate identifier:
// an ASCII letter, '_', '$', or any code point past the ASCII range used
// by the grammar.
func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > '}'
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || isASCIIAlnum(r) || r > '}'
}

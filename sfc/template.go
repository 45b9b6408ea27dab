package sfc

// Child is one template node: an element, a text run, or an interpolation.
type Child interface {
	childNode()
}

// Element is a tag with its nested children.
type Element struct {
	Tag      *Tag
	Children []Child
}

// Text is a raw text run between tags.
type Text struct {
	Span Span
}

// Interpolation is one {{ expression }} occurrence: the expression span and
// the free references found inside it.
type Interpolation struct {
	Span Span
	Refs []Span
}

func (*Element) childNode()       {}
func (*Text) childNode()          {}
func (*Interpolation) childNode() {}

// parseTemplate consumes template children until the closing </template>.
func parseTemplate(c *Cursor) ([]Child, error) {
	children, closeName, err := parseChildren(c, nil)
	if err != nil {
		return nil, err
	}
	for !closeName.eq(c.src, "template") {
		children, closeName, err = parseChildren(c, nil)
		if err != nil {
			return nil, err
		}
	}
	return children, nil
}

type afterText int

const (
	afterTextTag afterText = iota
	afterTextVar
)

// parseChildren parses sibling children until a close tag matches one of
// the parent names (tolerant recovery: unmatched intervening opens are
// implicitly closed) or the template boundary. It returns the children and
// the name of the close tag that ended the run.
func parseChildren(c *Cursor, parents []Span) ([]Child, Span, error) {
	var resp []Child
	vElseAllowed := false

	for {
		text, next, err := parseTextNode(c)
		if err != nil {
			return nil, Span{}, err
		}
		if text != nil {
			resp = append(resp, text)
			vElseAllowed = false
		}

		if next == afterTextVar {
			child, err := parseInterpolation(c)
			if err != nil {
				return nil, Span{}, err
			}
			resp = append(resp, child)
			vElseAllowed = false
			continue
		}

		tag, err := parseTag(c, vElseAllowed)
		if err != nil {
			return nil, Span{}, err
		}

		switch tag.Type {
		case TagDocType:
			releaseTagLocals(c, tag)

		case TagClose:
			releaseTagLocals(c, tag)
			found := false
			for i := len(parents) - 1; i >= 0; i-- {
				if tag.Name.eqSpan(c.src, parents[i]) {
					found = true
					break
				}
			}
			if found || tag.Name.eq(c.src, "template") {
				return resp, tag.Name, nil
			}
			// unmatched close tag: dropped by tolerant recovery

		case TagOpenAndClose:
			releaseTagLocals(c, tag)
			resp = append(resp, &Element{Tag: tag})
			vElseAllowed = tag.Args.Mod.Kind == ModIf || tag.Args.Mod.Kind == ModElseIf

		case TagOpen:
			parents = append(parents, tag.Name)
			children, closeName, err := func() ([]Child, Span, error) {
				defer releaseTagLocals(c, tag)
				return parseChildren(c, parents)
			}()
			parents = parents[:len(parents)-1]
			if err != nil {
				return nil, Span{}, err
			}
			resp = append(resp, &Element{Tag: tag, Children: children})
			vElseAllowed = tag.Args.Mod.Kind == ModIf || tag.Args.Mod.Kind == ModElseIf
			if !tag.Name.eqSpan(c.src, closeName) {
				// the close tag belongs to an ancestor; unwind to it
				return resp, closeName, nil
			}
		}
	}
}

// releaseTagLocals drops the v-for iteration variables the tag introduced.
func releaseTagLocals(c *Cursor, tag *Tag) {
	if len(tag.Args.localNames) == 0 {
		return
	}
	c.releaseLocals(tag.Args.localNames)
	c.loopDepth--
	tag.Args.localNames = nil
}

// parseTextNode reads a text run until the start of a tag or interpolation.
// Runs consisting entirely of whitespace are discarded.
func parseTextNode(c *Cursor) (Child, afterText, error) {
	start := c.pos
	onlySpaces := true

	mk := func() Child {
		if onlySpaces {
			return nil
		}
		s := Span{start, c.pos - 1}
		if s.IsEmpty() {
			return nil
		}
		return &Text{Span: s}
	}

	for {
		r, err := c.read()
		if err != nil {
			return nil, 0, err
		}
		switch {
		case r == '<':
			return mk(), afterTextTag, nil
		case r == '{':
			if p, ok := c.peek(); ok && p == '{' {
				t := mk()
				c.pos++
				return t, afterTextVar, nil
			}
			onlySpaces = false
		case onlySpaces && isSpace(r):
		default:
			onlySpaces = false
		}
	}
}

func parseInterpolation(c *Cursor) (Child, error) {
	start := c.pos
	refs, err := parseTemplateVar(c)
	if err != nil {
		return nil, err
	}
	return &Interpolation{Span: Span{start, c.pos - 2}, Refs: refs}, nil
}

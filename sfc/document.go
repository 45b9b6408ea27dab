package sfc

// Document is a parsed single-file component: at most one template, at most
// one script, any number of styles. Every span addresses the document's
// code point buffer.
type Document struct {
	Template *Template
	Script   *Script
	Styles   []Style

	src []rune
}

// Script is the <script> section. DefaultExport covers the "export default"
// keywords when present; the zero span means the script has none.
type Script struct {
	Lang          Span
	DefaultExport Span
	Content       Span
}

// Template is the <template> section with its parsed children.
type Template struct {
	Lang     Span
	Children []Child
}

// Style is one <style> section. SelectorEnds holds the selector offsets the
// scoped-style scanner records for the external scope-rewriting pass.
type Style struct {
	Lang         Span
	Scoped       bool
	Content      Span
	SelectorEnds []int
}

// Parse splits source into its sections and parses the template tree.
func Parse(source string) (*Document, error) {
	c := NewCursor(source)
	d := &Document{src: c.src}
	if err := d.parse(c); err != nil {
		return nil, err
	}
	return d, nil
}

// Text materializes a span recorded by this document.
func (d *Document) Text(s Span) string {
	return s.text(d.src)
}

func (d *Document) parse(c *Cursor) error {
	for {
		c.skipSpace()
		if _, ok := c.peek(); !ok {
			return nil
		}
		r, err := c.read()
		if err != nil {
			return err
		}
		if r != '<' {
			return c.errf(ErrInvalidTopLevel,
				"found invalid character in source: %q, expected <template ..> <script ..> or <style ..>", r)
		}

		tag, err := parseTag(c, false)
		if err != nil {
			return err
		}
		switch tag.Type {
		case TagDocType:
			continue
		case TagClose:
			return c.newErr(ErrNotAllowedAtTopLevel, "found tag closure without open")
		case TagOpenAndClose:
			return c.newErr(ErrNotAllowedAtTopLevel, "tag type not allowed on top level")
		}

		lang := Span{}
		if p, ok := tag.Args.attr("lang"); ok && !p.ValSpan.IsEmpty() {
			lang = p.ValSpan
		}

		switch tag.Name.matchSomeFold(c.src, false, topLevelTags) {
		case topLevelTemplate:
			if d.Template != nil {
				return c.newErr(ErrDuplicateSection, "can't have multiple templates in your code")
			}
			children, err := parseTemplate(c)
			if err != nil {
				return err
			}
			d.Template = &Template{Lang: lang, Children: children}

		case topLevelScript:
			if d.Script != nil {
				return c.newErr(ErrDuplicateSection, "can't have multiple scripts in your code")
			}
			start := c.pos
			marker, err := scanScript(c)
			if err != nil {
				return err
			}
			d.Script = &Script{
				Lang:          lang,
				DefaultExport: marker,
				Content:       Span{start, c.pos - len("</script>")},
			}

		case topLevelStyle:
			_, scoped := tag.Args.attr("scoped")
			start := c.pos
			style := Style{Lang: lang, Scoped: scoped}
			if scoped {
				ends, err := scanScopedStyle(c)
				if err != nil {
					return err
				}
				style.SelectorEnds = ends
				style.Content = Span{start, c.pos - len("</style>")}
			} else {
				sp, err := c.scanTo("</style>")
				if err != nil {
					return err
				}
				style.Content = Span{start, sp.Lo}
			}
			d.Styles = append(d.Styles, style)

		default:
			return c.errf(ErrUnknownTopLevelTag, "tag <%s> is not allowed on the top level", c.text(tag.Name))
		}
	}
}

const (
	topLevelTemplate = iota
	topLevelScript
	topLevelStyle
)

var topLevelTags = []string{"template", "script", "style"}

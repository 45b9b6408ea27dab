package sfc

// htmlElements is the fixed list of known HTML element names. A tag whose
// lower-cased name is not in this list renders as a custom component.
var htmlElements = []string{
	"a", "abbr", "acronym", "address", "applet", "area", "article", "aside",
	"audio", "b", "base", "basefont", "bdi", "bdo", "big", "blockquote",
	"body", "br", "button", "canvas", "caption", "center", "cite", "code",
	"col", "colgroup", "data", "datalist", "dd", "del", "details", "dfn",
	"dialog", "dir", "div", "dl", "dt", "em", "embed", "fieldset",
	"figcaption", "figure", "font", "footer", "form", "frame", "frameset",
	"head", "header", "hgroup", "h1", "h2", "h3", "h4", "h5", "h6", "hr",
	"html", "i", "iframe", "img", "input", "ins", "kbd", "keygen", "label",
	"legend", "li", "link", "main", "map", "mark", "menu", "menuitem", "meta",
	"meter", "nav", "noframes", "noscript", "object", "ol", "optgroup",
	"option", "output", "p", "param", "picture", "pre", "progress", "q",
	"rp", "rt", "ruby", "s", "samp", "script", "section", "select", "small",
	"source", "span", "strike", "strong", "style", "sub", "summary", "sup",
	"svg", "table", "tbody", "td", "template", "textarea", "tfoot", "th",
	"thead", "time", "title", "tr", "track", "tt", "u", "ul", "var", "video",
	"wbr",
}

// ElemKind classifies a tag name. template and slot are their own kinds;
// names outside the HTML element table are custom components.
type ElemKind int

const (
	KindHTMLElement ElemKind = iota
	KindCustomComponent
	KindTemplate
	KindSlot
)

func (k ElemKind) String() string {
	switch k {
	case KindHTMLElement:
		return "html element"
	case KindCustomComponent:
		return "custom component"
	case KindTemplate:
		return "template"
	case KindSlot:
		return "slot"
	}
	return "unknown"
}

func classify(src []rune, name Span) ElemKind {
	switch {
	case name.eqFold(src, "template"):
		return KindTemplate
	case name.eqFold(src, "slot"):
		return KindSlot
	case name.matchSomeFold(src, false, htmlElements) >= 0:
		return KindHTMLElement
	default:
		return KindCustomComponent
	}
}

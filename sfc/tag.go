package sfc

import "strings"

// TagType distinguishes the four tag head forms.
type TagType int

const (
	TagOpen TagType = iota
	TagClose
	TagOpenAndClose
	TagDocType
)

func (t TagType) String() string {
	switch t {
	case TagOpen:
		return "open"
	case TagClose:
		return "close"
	case TagOpenAndClose:
		return "inline"
	case TagDocType:
		return "DOCTYPE"
	}
	return "unknown"
}

// Tag is one parsed tag head with its directive-aware attributes.
type Tag struct {
	Type TagType
	Name Span
	Kind ElemKind
	Args DirectiveSet
}

// StaticOrJS is an attribute value: absent, a static string literal, or an
// already rewritten JS fragment. The zero value means absent and renders as
// the literal true.
type StaticOrJS struct {
	kind int // 0 absent, 1 static, 2 js
	Text string
}

func Static(s string) StaticOrJS { return StaticOrJS{kind: 1, Text: s} }
func JS(s string) StaticOrJS     { return StaticOrJS{kind: 2, Text: s} }

func (v StaticOrJS) IsZero() bool   { return v.kind == 0 }
func (v StaticOrJS) IsStatic() bool { return v.kind == 1 }
func (v StaticOrJS) IsJS() bool     { return v.kind == 2 }

func (v StaticOrJS) writeTo(b *strings.Builder) {
	switch v.kind {
	case 1:
		writeQuoted(v.Text, b)
	case 2:
		b.WriteString(v.Text)
	default:
		b.WriteString("true")
	}
}

// Prop is one attrs/props entry. ValSpan keeps the raw source location of a
// static value so section attributes like lang stay addressable as spans.
type Prop struct {
	Key     string
	Val     StaticOrJS
	ValSpan Span
}

// JSProp is a key paired with a rewritten JS fragment.
type JSProp struct {
	Key string
	JS  string
}

// DirectiveName is a parsed attribute key: the directive name, the optional
// :target segment and the .modifier segments.
type DirectiveName struct {
	Name      string
	Target    string
	Modifiers []string
}

func (n DirectiveName) hasModifier(mod string) bool {
	for _, m := range n.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// DirectiveRef is a directive stored for verbose emission in the render
// data object (v-model and custom v-* directives).
type DirectiveRef struct {
	DirectiveName
	Value string
}

// ForBinding is a parsed v-for expression. List is already rewritten.
type ForBinding struct {
	Value string
	Key   string
	Index string
	List  string
}

// ModKind identifies the single structural directive of an element.
type ModKind int

const (
	ModNone ModKind = iota
	ModIf
	ModElseIf
	ModElse
	ModFor
)

func (k ModKind) String() string {
	switch k {
	case ModIf:
		return "v-if"
	case ModElseIf:
		return "v-else-if"
	case ModElse:
		return "v-else"
	case ModFor:
		return "v-for"
	}
	return "none"
}

// Modifier is the structural directive slot: at most one of v-if,
// v-else-if, v-else and v-for per element.
type Modifier struct {
	Kind ModKind
	Cond string
	For  ForBinding
}

// DirectiveSet collects the typed attributes of one tag, bucketed the way
// the render data object is laid out.
type DirectiveSet struct {
	HasComponentArgs bool

	Class StaticOrJS
	Style StaticOrJS

	// AttrsOrProps renders as attrs on HTML elements and props on custom
	// components.
	AttrsOrProps []Prop
	DomProps     []JSProp
	On           []JSProp
	NativeOn     []JSProp
	Directives   []DirectiveRef

	// Slot is the slot="name" attribute naming the parent slot this element
	// fills. SlotName is the name attribute moved off a <slot> element, and
	// SlotData its v-bind object form.
	Slot     StaticOrJS
	SlotName StaticOrJS
	SlotData string

	Key      StaticOrJS
	Ref      StaticOrJS
	RefInFor bool

	Mod Modifier

	// localNames are the iteration variables this tag pushed onto the
	// cursor; the template parser releases them when the element closes.
	localNames []string
}

func (ds *DirectiveSet) attr(key string) (Prop, bool) {
	for _, p := range ds.AttrsOrProps {
		if p.Key == key {
			return p, true
		}
	}
	return Prop{}, false
}

func (ds *DirectiveSet) setModifier(c *Cursor, mod Modifier) error {
	if ds.Mod.Kind != ModNone {
		return c.errf(ErrDirectiveConflict, "%s conflicts with %s on the same element", mod.Kind, ds.Mod.Kind)
	}
	ds.Mod = mod
	return nil
}

// setDefaultOrBind routes a plain attribute or v-bind value into the
// dedicated class/style/slot/key/ref fields or the attrs/props bucket.
func (ds *DirectiveSet) setDefaultOrBind(key string, val StaticOrJS, valSpan Span) {
	switch key {
	case "class":
		ds.Class = val
	case "style":
		ds.Style = val
	case "slot":
		ds.Slot = val
	case "key":
		ds.Key = val
	case "ref":
		ds.Ref = val
	default:
		ds.AttrsOrProps = append(ds.AttrsOrProps, Prop{Key: key, Val: val, ValSpan: valSpan})
	}
}

// parseTag parses one tag head. The cursor must be positioned at the first
// code point after '<'. vElseAllowed reports whether the previous sibling
// carried v-if or v-else-if.
func parseTag(c *Cursor, vElseAllowed bool) (*Tag, error) {
	tag := &Tag{Name: Span{Lo: c.pos}}
	isClose := false

	r, err := c.mustPeek()
	if err != nil {
		return nil, err
	}
	switch r {
	case '/':
		tag.Type = TagClose
		tag.Name.Lo++
		c.pos++
		isClose = true
	case '!':
		c.pos++
		if err := c.expect("DOCTYPE "); err != nil {
			return nil, err
		}
		for {
			r, err := c.read()
			if err != nil {
				return nil, err
			}
			if r == '>' {
				break
			}
		}
		tag.Type = TagDocType
		tag.Name = Span{}
		return tag, nil
	}

	for {
		r, err := c.read()
		if err != nil {
			return nil, err
		}
		if isTagNameRune(r) {
			continue
		}
		c.pos--
		tag.Name.Hi = c.pos
		break
	}
	if tag.Name.IsEmpty() {
		return nil, c.newErr(ErrUnexpectedChar, "expected tag name")
	}
	tag.Kind = classify(c.src, tag.Name)

	for {
		r, err := c.readSkipSpace()
		if err != nil {
			return nil, err
		}
		next, parsed, err := tryParseArg(c, r, tag, vElseAllowed)
		if err != nil {
			return nil, err
		}
		if parsed {
			r = next
		}
		switch {
		case r == '/':
			if isClose {
				return nil, c.newErr(ErrUnexpectedChar, "'/' not allowed after the name of a closing tag")
			}
			r, err = c.readSkipSpace()
			if err != nil {
				return nil, err
			}
			if r != '>' {
				return nil, c.errf(ErrUnexpectedChar, "expected '>' but got %q", r)
			}
			tag.Type = TagOpenAndClose
			finalizeTag(c, tag)
			return tag, nil
		case r == '>':
			finalizeTag(c, tag)
			return tag, nil
		case isSpace(r):
		default:
			return nil, c.errf(ErrUnexpectedChar, "unexpected character %q", r)
		}
	}
}

func finalizeTag(c *Cursor, tag *Tag) {
	args := &tag.Args
	if tag.Kind == KindSlot {
		// The name attribute of a <slot> element selects the slot rather
		// than rendering as an attr.
		for i, p := range args.AttrsOrProps {
			if p.Key == "name" {
				args.SlotName = p.Val
				args.AttrsOrProps = append(args.AttrsOrProps[:i], args.AttrsOrProps[i+1:]...)
				break
			}
		}
	}
	if !args.Ref.IsZero() && c.loopDepth > 0 {
		args.RefInFor = true
	}
}

type argKind int

const (
	argDefault argKind = iota
	argBind
	argOn
	argText
	argHTML
	argShow
	argIf
	argElse
	argElseIf
	argFor
	argModel
	argSlot
	argPre
	argCloak
	argOnce
	argCustom
)

type expectValue int

const (
	evBoth expectValue = iota
	evYes
	evNo
)

type directiveSpec struct {
	expect   expectValue
	target   bool
	modifier bool
	kind     argKind
}

var directiveTable = map[string]directiveSpec{
	"v-if":      {evYes, false, false, argIf},
	"v-else-if": {evYes, false, false, argElseIf},
	"v-else":    {evNo, false, false, argElse},
	"v-for":     {evYes, false, false, argFor},
	"v-bind":    {evYes, true, true, argBind},
	"v-on":      {evYes, true, true, argOn},
	"v-model":   {evYes, true, true, argModel},
	"v-text":    {evYes, false, false, argText},
	"v-html":    {evYes, false, false, argHTML},
	"v-show":    {evYes, false, false, argShow},
	"v-slot":    {evYes, true, false, argSlot},
	"v-pre":     {evYes, false, false, argPre},
	"v-cloak":   {evYes, false, false, argCloak},
	"v-once":    {evNo, false, false, argOnce},
}

// tryParseArg parses one attribute starting at r. It reports whether an
// attribute was consumed and returns the code point that terminated it.
func tryParseArg(c *Cursor, r rune, tag *Tag, vElseAllowed bool) (rune, bool, error) {
	if !isArgStart(r) {
		return 0, false, nil
	}

	name, r, err := parseArgName(c, r)
	if err != nil {
		return 0, false, err
	}

	spec, ok := directiveTable[name.Name]
	switch {
	case ok:
	case strings.HasPrefix(name.Name, "v-"):
		if len(name.Name) == len("v-") {
			return 0, false, c.errf(ErrUnknownDirective, "unknown directive %q", name.Name)
		}
		spec = directiveSpec{evYes, true, true, argCustom}
	default:
		spec = directiveSpec{evBoth, false, false, argDefault}
	}

	if !spec.target && name.Target != "" {
		return 0, false, c.errf(ErrUnknownDirective, "target set on argument %s but is not allowed", name.Name)
	}
	if !spec.modifier && len(name.Modifiers) > 0 {
		return 0, false, c.errf(ErrUnknownDirective, "modifier set on argument %s but is not allowed", name.Name)
	}
	switch {
	case spec.expect == evYes && !name.hasValue:
		return 0, false, c.errf(ErrDirectiveArgumentArity, "expected an argument value for %s but got none", name.Name)
	case spec.expect == evNo && name.hasValue:
		return 0, false, c.errf(ErrDirectiveArgumentArity, "expected no argument value for %s but got one", name.Name)
	}

	args := &tag.Args
	isCustom := tag.Kind != KindHTMLElement

	switch spec.kind {
	case argDefault:
		var val StaticOrJS
		var valSpan Span
		if name.hasValue {
			text, span, next, err := getArgValue(c)
			if err != nil {
				return 0, false, err
			}
			r = next
			val = Static(text)
			valSpan = span
		}
		args.setDefaultOrBind(name.Name, val, valSpan)
		args.HasComponentArgs = true

	case argBind:
		js, next, err := getArgJSValue(c)
		if err != nil {
			return 0, false, err
		}
		r = next
		if name.Target == "" {
			// object form v-bind="expr": only the <slot> element consumes it
			if tag.Kind != KindSlot {
				return 0, false, c.errf(ErrUnsupported, "v-bind without a target is not supported on <%s>", c.text(tag.Name))
			}
			args.SlotData = js
		} else {
			args.setDefaultOrBind(name.Target, JS(js), Span{})
		}
		args.HasComponentArgs = true

	case argOn:
		if name.Target == "" {
			return 0, false, c.errf(ErrDirectiveArgumentArity, "expected a v-on target")
		}
		js, next, err := getHandlerJSValue(c)
		if err != nil {
			return 0, false, err
		}
		r = next
		if name.hasModifier("native") && isCustom {
			args.NativeOn = append(args.NativeOn, JSProp{Key: name.Target, JS: js})
		} else {
			args.On = append(args.On, JSProp{Key: name.Target, JS: js})
		}
		args.HasComponentArgs = true

	case argText:
		js, next, err := getArgJSValue(c)
		if err != nil {
			return 0, false, err
		}
		r = next
		args.DomProps = append(args.DomProps, JSProp{Key: "textContent", JS: js})
		args.HasComponentArgs = true

	case argHTML:
		js, next, err := getArgJSValue(c)
		if err != nil {
			return 0, false, err
		}
		r = next
		args.DomProps = append(args.DomProps, JSProp{Key: "innerHTML", JS: js})
		args.HasComponentArgs = true

	case argIf, argElseIf:
		if spec.kind == argElseIf && !vElseAllowed {
			return 0, false, c.newErr(ErrElseWithoutIf, "v-else-if can only be used after a v-if element")
		}
		js, next, err := getArgJSValue(c)
		if err != nil {
			return 0, false, err
		}
		r = next
		kind := ModIf
		if spec.kind == argElseIf {
			kind = ModElseIf
		}
		if err := args.setModifier(c, Modifier{Kind: kind, Cond: js}); err != nil {
			return 0, false, err
		}

	case argElse:
		if !vElseAllowed {
			return 0, false, c.newErr(ErrElseWithoutIf, "v-else can only be used after a v-if element")
		}
		if err := args.setModifier(c, Modifier{Kind: ModElse}); err != nil {
			return 0, false, err
		}

	case argFor:
		fb, names, err := parseVFor(c)
		if err != nil {
			return 0, false, err
		}
		next, err := c.read()
		if err != nil {
			return 0, false, err
		}
		r = next
		args.localNames = names
		c.pushLocals(names)
		c.loopDepth++
		if err := args.setModifier(c, Modifier{Kind: ModFor, For: fb}); err != nil {
			return 0, false, err
		}

	case argModel:
		js, next, err := getHandlerJSValue(c)
		if err != nil {
			return 0, false, err
		}
		r = next
		args.On = append(args.On, JSProp{
			Key: "input",
			JS:  "$event.target.composing?undefined:" + js + "=$event.target.value",
		})
		if isCustom {
			target := name.Target
			if target == "" {
				target = "value"
			}
			args.AttrsOrProps = append(args.AttrsOrProps, Prop{Key: target, Val: JS(js)})
		} else {
			args.DomProps = append(args.DomProps, JSProp{Key: "value", JS: js})
		}
		args.Directives = append(args.Directives, DirectiveRef{DirectiveName: name.DirectiveName, Value: js})
		args.HasComponentArgs = true

	case argShow, argSlot, argPre, argCloak, argOnce:
		return 0, false, c.errf(ErrUnsupported, "%s is not supported", name.Name)

	case argCustom:
		js, next, err := getArgJSValue(c)
		if err != nil {
			return 0, false, err
		}
		r = next
		args.Directives = append(args.Directives, DirectiveRef{DirectiveName: name.DirectiveName, Value: js})
		args.HasComponentArgs = true
	}

	return r, true, nil
}

type argNameResult struct {
	DirectiveName
	hasValue bool
}

// parseArgName reads an attribute key: the name (with @ and : expanding to
// v-on and v-bind), the optional :target and the .modifier chain. It
// returns the code point that terminated the key.
func parseArgName(c *Cursor, r rune) (argNameResult, rune, error) {
	var res argNameResult
	parseTarget := false
	parseModifier := false

	// peekValue resolves whether an = introduces a value: the next code
	// point must not be a terminator.
	peekValue := func() error {
		p, err := c.mustPeek()
		if err != nil {
			return err
		}
		res.hasValue = !isSpace(p) && p != '/' && p != '>'
		return nil
	}

	switch {
	case r == '@':
		res.Name = "v-on"
		parseTarget = true
	case r == ':':
		res.Name = "v-bind"
		parseTarget = true
	case isArgNameStart(r):
		var b strings.Builder
		b.WriteRune(r)
	nameLoop:
		for {
			var err error
			r, err = c.read()
			if err != nil {
				return res, 0, err
			}
			switch {
			case isArgNameRune(r):
				b.WriteRune(r)
			case r == ':':
				parseTarget = true
				break nameLoop
			case r == '.':
				parseModifier = true
				break nameLoop
			case r == '=':
				if err := peekValue(); err != nil {
					return res, 0, err
				}
				break nameLoop
			case r == '/' || r == '>':
				break nameLoop
			default:
				return res, 0, c.errf(ErrUnexpectedChar, "invalid argument character %q", r)
			}
		}
		res.Name = b.String()
	default:
		return res, 0, c.errf(ErrUnexpectedChar, "invalid argument character %q", r)
	}

	if parseTarget {
		var b strings.Builder
	targetLoop:
		for {
			var err error
			r, err = c.read()
			if err != nil {
				return res, 0, err
			}
			switch {
			case isArgNameRune(r):
				b.WriteRune(r)
			case r == '.':
				parseModifier = true
				break targetLoop
			case r == '=':
				if err := peekValue(); err != nil {
					return res, 0, err
				}
				break targetLoop
			case r == '/' || r == '>':
				break targetLoop
			default:
				return res, 0, c.errf(ErrUnexpectedChar, "invalid argument character %q", r)
			}
		}
		res.Target = b.String()
	}

	if parseModifier {
	modifierLoop:
		for {
			var b strings.Builder
			for {
				var err error
				r, err = c.read()
				if err != nil {
					return res, 0, err
				}
				switch {
				case isArgNameRune(r):
					b.WriteRune(r)
				case r == '.':
					res.Modifiers = append(res.Modifiers, b.String())
					continue modifierLoop
				case r == '=':
					if err := peekValue(); err != nil {
						return res, 0, err
					}
					res.Modifiers = append(res.Modifiers, b.String())
					break modifierLoop
				case r == '/' || r == '>':
					res.Modifiers = append(res.Modifiers, b.String())
					break modifierLoop
				default:
					return res, 0, c.errf(ErrUnexpectedChar, "invalid argument character %q", r)
				}
			}
		}
	}

	return res, r, nil
}

// getArgValue parses a static attribute value: a quoted run without escape
// processing, or an unquoted run up to whitespace, '/' or '>'.
func getArgValue(c *Cursor) (string, Span, rune, error) {
	r, err := c.readSkipSpace()
	if err != nil {
		return "", Span{}, 0, err
	}
	if r != '\'' && r != '"' {
		start := c.pos - 1
		for {
			r, err = c.read()
			if err != nil {
				return "", Span{}, 0, err
			}
			if isSpace(r) || r == '/' || r == '>' {
				span := Span{start, c.pos - 1}
				return c.text(span), span, r, nil
			}
		}
	}
	kind := quoteHTMLDouble
	if r == '\'' {
		kind = quoteHTMLSingle
	}
	start := c.pos
	if err := parseQuotes(c, kind, nil); err != nil {
		return "", Span{}, 0, err
	}
	span := Span{start, c.pos - 1}
	next, err := c.read()
	if err != nil {
		return "", Span{}, 0, err
	}
	return c.text(span), span, next, nil
}

// getArgJSValue parses a quoted directive value through the identifier
// walker and returns the rewritten expression.
func getArgJSValue(c *Cursor) (string, rune, error) {
	quote, err := c.read()
	if err != nil {
		return "", 0, err
	}
	if quote != '"' && quote != '\'' {
		return "", 0, c.errf(ErrUnexpectedChar, `expected opening of argument value ('"' or "'") but got %q`, quote)
	}
	start := c.pos
	refs, err := parseTemplateArg(c, quote)
	if err != nil {
		return "", 0, err
	}
	span := Span{start, c.pos - 1}
	next, err := c.read()
	if err != nil {
		return "", 0, err
	}
	return rewriteVM(c, span, refs), next, nil
}

// getHandlerJSValue parses an event handler value with $event bound as a
// local name, so handler bodies keep it untouched.
func getHandlerJSValue(c *Cursor) (string, rune, error) {
	c.pushLocals(handlerLocals)
	defer c.releaseLocals(handlerLocals)
	return getArgJSValue(c)
}

var handlerLocals = []string{"$event"}

// parseVFor parses the v-for sub-grammar:
//
//	value in list | (value) in list | (value, key) in list | (value, key, index) in list
//
// It returns the binding and the local names it introduces, in order.
func parseVFor(c *Cursor) (ForBinding, []string, error) {
	var fb ForBinding

	quote, err := c.read()
	if err != nil {
		return fb, nil, err
	}
	if quote != '"' && quote != '\'' {
		return fb, nil, c.errf(ErrVForSyntax, `expected opening of argument value ('"' or "'") but got %q`, quote)
	}

	isSingle := false
	r, err := c.readSkipSpace()
	if err != nil {
		return fb, nil, err
	}
	switch {
	case r == '(':
		r, err = c.readSkipSpace()
		if err != nil {
			return fb, nil, err
		}
		if !isIdentStart(r) {
			return fb, nil, c.errf(ErrVForSyntax, "unexpected character %q", r)
		}
	case isIdentStart(r):
		isSingle = true
	default:
		return fb, nil, c.errf(ErrVForSyntax, "unexpected character %q", r)
	}

	r, valueSpan, err := parseJSName(c)
	if err != nil {
		return fb, nil, err
	}
	fb.Value = c.text(valueSpan)
	if isSpace(r) {
		if r, err = c.readSkipSpace(); err != nil {
			return fb, nil, err
		}
	}

	if !isSingle {
		if r == ',' {
			if _, err = c.readSkipSpace(); err != nil {
				return fb, nil, err
			}
			var keySpan Span
			if r, keySpan, err = parseJSName(c); err != nil {
				return fb, nil, err
			}
			fb.Key = c.text(keySpan)
			if isSpace(r) {
				if r, err = c.readSkipSpace(); err != nil {
					return fb, nil, err
				}
			}
			if r == ',' {
				if _, err = c.readSkipSpace(); err != nil {
					return fb, nil, err
				}
				var idxSpan Span
				if r, idxSpan, err = parseJSName(c); err != nil {
					return fb, nil, err
				}
				fb.Index = c.text(idxSpan)
				if isSpace(r) {
					if r, err = c.readSkipSpace(); err != nil {
						return fb, nil, err
					}
				}
			}
		}
		if r != ')' {
			return fb, nil, c.errf(ErrVForSyntax, "expected ')' but got %q", r)
		}
		if r, err = c.readSkipSpace(); err != nil {
			return fb, nil, err
		}
	}

	if r != 'i' {
		return fb, nil, c.errf(ErrVForSyntax, `expected v-for value to be ".. in .." but got %q`, r)
	}
	if r, err = c.read(); err != nil {
		return fb, nil, err
	}
	if r != 'n' {
		return fb, nil, c.errf(ErrVForSyntax, `expected v-for value to be ".. in .." but got %q`, r)
	}
	if r, err = c.read(); err != nil {
		return fb, nil, err
	}
	if !isSpace(r) {
		return fb, nil, c.errf(ErrVForSyntax, `expected v-for value to be ".. in .." but got %q`, r)
	}

	start := c.pos
	refs, err := parseTemplateArg(c, quote)
	if err != nil {
		return fb, nil, err
	}
	fb.List = rewriteVM(c, Span{start, c.pos - 1}, refs)

	names := []string{fb.Value}
	if fb.Key != "" {
		names = append(names, fb.Key)
	}
	if fb.Index != "" {
		names = append(names, fb.Index)
	}
	return fb, names, nil
}

func isTagNameRune(r rune) bool {
	return r == '-' || r == '_' || isASCIIAlnum(r)
}

func isArgStart(r rune) bool {
	return r == '@' || r == ':' || r == '_' || isASCIIAlnum(r)
}

func isArgNameStart(r rune) bool {
	return r == '_' || isASCIIAlnum(r)
}

func isArgNameRune(r rune) bool {
	return r == '_' || r == '-' || isASCIIAlnum(r)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

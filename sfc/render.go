package sfc

import (
	"strconv"
	"strings"
)

// The generated module captures the script's default export under a fixed
// name and attaches the render function to it. Every internal name here is
// contractual for the Vue 2 runtime.
const (
	defaultExportName = "__vue_2_file_default_export__"

	renderPrologue = "\n" +
		defaultExportName + "._compiled = true;\n" +
		defaultExportName + ".staticRenderFns = [];\n" +
		defaultExportName + ".render = function() {\n" +
		"    const _vm = this;\n" +
		"    const _h = _vm.$createElement;\n" +
		"    const _c = _vm._self._c || _h;\n" +
		"    return "

	renderEpilogue = ";\n};"
)

// Compile parses source and composes the output module in one pass.
func Compile(source string) (string, error) {
	d, err := Parse(source)
	if err != nil {
		return "", err
	}
	return d.ComposeModule(), nil
}

// ComposeModule emits the final script: the original script with its
// default export captured into an internal binding, the generated render
// function, and the re-export.
func (d *Document) ComposeModule() string {
	if d.Script == nil && d.Template == nil {
		return "export default undefined;"
	}

	var b strings.Builder
	if s := d.Script; s != nil {
		if !s.DefaultExport.IsEmpty() {
			b.WriteString(Span{s.Content.Lo, s.DefaultExport.Lo}.text(d.src))
			b.WriteString("\nconst " + defaultExportName + " =")
			b.WriteString(Span{s.DefaultExport.Hi, s.Content.Hi}.text(d.src))
		} else {
			b.WriteString(s.Content.text(d.src))
			b.WriteString("\nconst " + defaultExportName + " = {};")
		}
	} else {
		b.WriteString("const " + defaultExportName + " = {};")
	}

	d.renderJS(&b)

	b.WriteString("\nexport default " + defaultExportName + ";")
	return b.String()
}

// renderJS appends the generated render function for the document's
// template; it emits nothing when there is no template.
func (d *Document) renderJS(b *strings.Builder) {
	t := d.Template
	if t == nil {
		return
	}
	b.WriteString(renderPrologue)
	switch len(t.Children) {
	case 0:
		b.WriteString("[]")
	case 1:
		childrenToJS(d, t.Children, b, false)
	default:
		b.WriteByte('[')
		childrenToJS(d, t.Children, b, false)
		b.WriteByte(']')
	}
	b.WriteString(renderEpilogue)
}

// RenderExpr returns the bare render expression for the template, mostly
// for tests and inspection tooling.
func (d *Document) RenderExpr() string {
	if d.Template == nil {
		return ""
	}
	var b strings.Builder
	switch len(d.Template.Children) {
	case 0:
		b.WriteString("[]")
	case 1:
		childrenToJS(d, d.Template.Children, &b, false)
	default:
		b.WriteByte('[')
		childrenToJS(d, d.Template.Children, &b, false)
		b.WriteByte(']')
	}
	return b.String()
}

type childArtifacts struct {
	openedInlineIfElse bool
	isVFor             bool
	moveMagicNumberUp  int // -1 when nothing bubbles up
	isCustomComponent  bool
	isSlot             bool
	skipped            bool
}

// commaSep writes a comma before every entry but the first.
type commaSep bool

func (cs *commaSep) add(b *strings.Builder) {
	if *cs {
		b.WriteByte(',')
	} else {
		*cs = true
	}
}

// childrenToJS emits a comma separated child list and reports the magic
// number the caller must append after it, or -1. Adjacent text and
// interpolation siblings fuse into a single _vm._v call, and open v-if
// chains are closed with _vm._e().
func childrenToJS(d *Document, children []Child, b *strings.Builder, filterSlotChildren bool) int {
	var list commaSep
	insideIf := false
	magic := -1

	i := 0
	for i < len(children) {
		child := children[i]
		if filterSlotChildren && hasSlotAttr(child) {
			// rendered under the parent's scopedSlots instead
			i++
			continue
		}
		if !insideIf {
			list.add(b)
		} else if !isCondContinuation(child) {
			// the v-if chain ended without an else branch
			b.WriteString("_vm._e()")
			insideIf = false
			list.add(b)
		}

		if isTextLike(child) {
			b.WriteString("_vm._v(")
			writeTextLike(d, child, b)
			i++
			for i < len(children) && isTextLike(children[i]) {
				b.WriteByte('+')
				writeTextLike(d, children[i], b)
				i++
			}
			b.WriteByte(')')
			continue
		}

		art := childToJS(d, child, b, !filterSlotChildren)
		i++
		if art.skipped {
			continue
		}
		insideIf = art.openedInlineIfElse

		switch {
		case art.moveMagicNumberUp >= 0:
			if len(children) > 1 {
				magic = 2
			} else {
				magic = art.moveMagicNumberUp
			}
		case art.isSlot:
			magic = 2
		case art.isVFor:
			switch {
			case len(children) > 1:
				magic = 2
			case art.isCustomComponent:
				magic = 1
			default:
				magic = 0
			}
		}
	}

	if insideIf {
		b.WriteString("_vm._e()")
	}
	return magic
}

// childToJS emits one child. Children carrying a slot attribute are skipped
// when slotAttrAllowed is false; they render under the parent's scopedSlots
// instead.
func childToJS(d *Document, child Child, b *strings.Builder, slotAttrAllowed bool) childArtifacts {
	art := childArtifacts{moveMagicNumberUp: -1}

	switch ch := child.(type) {
	case *Element:
		tag := ch.Tag
		args := &tag.Args

		if !slotAttrAllowed && !args.Slot.IsZero() {
			art.skipped = true
			return art
		}

		switch args.Mod.Kind {
		case ModFor:
			art.isVFor = true
			b.WriteString("_vm._l((")
			b.WriteString(args.Mod.For.List)
			b.WriteString("),(")
			b.WriteString(args.Mod.For.Value)
			if args.Mod.For.Key != "" {
				b.WriteByte(',')
				b.WriteString(args.Mod.For.Key)
				if args.Mod.For.Index != "" {
					b.WriteByte(',')
					b.WriteString(args.Mod.For.Index)
				}
			}
			b.WriteString(")=>")
		case ModIf, ModElseIf:
			art.openedInlineIfElse = true
			b.WriteString(args.Mod.Cond)
			b.WriteByte('?')
		}

		switch tag.Kind {
		case KindTemplate:
			// <template> emits its children without a wrapping element
			if len(ch.Children) == 0 {
				b.WriteString("void 0")
			} else {
				var magic int
				if len(ch.Children) == 1 && isVForChild(ch.Children[0]) {
					magic = childrenToJS(d, ch.Children, b, false)
				} else {
					b.WriteByte('[')
					magic = childrenToJS(d, ch.Children, b, false)
					b.WriteByte(']')
				}
				if magic >= 0 {
					art.moveMagicNumberUp = magic
					art.isVFor = true
				}
			}

		case KindSlot:
			art.isSlot = true
			if !args.SlotName.IsZero() {
				b.WriteString("_vm._t(")
				args.SlotName.writeTo(b)
			} else {
				b.WriteString(`_vm._t("default"`)
			}
			if len(ch.Children) != 0 {
				b.WriteString(",function(){return [")
				childrenToJS(d, ch.Children, b, false)
				b.WriteString("]}")
			} else if len(args.AttrsOrProps) > 0 || args.SlotData != "" {
				b.WriteString(",null")
			}
			if len(args.AttrsOrProps) > 0 {
				b.WriteByte(',')
				writePropsObject(args.AttrsOrProps, b)
			}
			if args.SlotData != "" {
				b.WriteByte(',')
				b.WriteString(args.SlotData)
			}
			b.WriteByte(')')

		default:
			slotChildren := countSlotChildren(ch.Children)
			n := len(ch.Children) - slotChildren

			b.WriteString("_c('")
			writeEscaped(d.Text(tag.Name), '\'', b)
			b.WriteByte('\'')
			art.isCustomComponent = tag.Kind != KindHTMLElement
			if args.HasComponentArgs || slotChildren > 0 {
				b.WriteByte(',')
				writeTagArgs(d, ch.Children, args, art.isCustomComponent, b)
			}
			if n != 0 {
				b.WriteByte(',')
				var magic int
				if n == 1 && len(ch.Children) == 1 && isVForChild(ch.Children[0]) {
					magic = childrenToJS(d, ch.Children, b, true)
				} else {
					b.WriteByte('[')
					magic = childrenToJS(d, ch.Children, b, true)
					b.WriteByte(']')
				}
				if magic >= 0 {
					b.WriteByte(',')
					b.WriteString(strconv.Itoa(magic))
				}
			}
			b.WriteByte(')')
		}

		if art.openedInlineIfElse {
			b.WriteByte(':')
		} else if args.Mod.Kind == ModFor {
			b.WriteByte(')')
		}

	case *Text:
		b.WriteString("_vm._v(")
		writeTextQuote(d, ch.Span, b)
		b.WriteByte(')')

	case *Interpolation:
		writeJSVar(d, ch, b)
	}

	return art
}

// writeTagArgs builds the render data object in its fixed field order:
// staticClass/class, style, attrs/props, domProps, on, nativeOn,
// directives, scopedSlots, key, ref, refInFor.
func writeTagArgs(d *Document, children []Child, args *DirectiveSet, isCustomComponent bool, b *strings.Builder) {
	b.WriteByte('{')
	var entries commaSep

	if !args.Class.IsZero() {
		entries.add(b)
		if args.Class.IsStatic() {
			b.WriteString("staticClass:")
		} else {
			b.WriteString("class:")
		}
		args.Class.writeTo(b)
	}

	if !args.Style.IsZero() {
		entries.add(b)
		b.WriteString("style:")
		args.Style.writeTo(b)
	}

	if len(args.AttrsOrProps) > 0 {
		entries.add(b)
		if isCustomComponent {
			b.WriteString("props:")
		} else {
			b.WriteString("attrs:")
		}
		writePropsObject(args.AttrsOrProps, b)
	}

	if len(args.DomProps) > 0 {
		entries.add(b)
		b.WriteString("domProps:{")
		var props commaSep
		for _, p := range args.DomProps {
			props.add(b)
			writeQuoted(p.Key, b)
			b.WriteByte(':')
			b.WriteString(p.JS)
		}
		b.WriteByte('}')
	}

	writeHandlers := func(field string, handlers []JSProp) {
		entries.add(b)
		b.WriteString(field)
		b.WriteString(":{")
		var hs commaSep
		for _, h := range handlers {
			hs.add(b)
			writeQuoted(h.Key, b)
			b.WriteString(":$event=>{")
			b.WriteString(h.JS)
			b.WriteByte('}')
		}
		b.WriteByte('}')
	}
	if len(args.On) > 0 {
		writeHandlers("on", args.On)
	}
	if len(args.NativeOn) > 0 {
		writeHandlers("nativeOn", args.NativeOn)
	}

	if len(args.Directives) > 0 {
		entries.add(b)
		b.WriteString("directives:[")
		var ds commaSep
		for _, dir := range args.Directives {
			ds.add(b)
			b.WriteString(`{name:"`)
			b.WriteString(strings.TrimPrefix(dir.Name, "v-"))
			b.WriteString(`",rawName:"`)
			b.WriteString(dir.Name)
			if dir.Target != "" {
				b.WriteByte(':')
				b.WriteString(dir.Target)
			}
			for _, m := range dir.Modifiers {
				b.WriteByte('.')
				b.WriteString(m)
			}
			b.WriteString(`",value:`)
			b.WriteString(dir.Value)
			b.WriteString(",expression:")
			writeQuoted(dir.Value, b)
			if dir.Target != "" {
				b.WriteString(",arg:")
				writeQuoted(dir.Target, b)
			}
			if len(dir.Modifiers) > 0 {
				b.WriteString(",modifiers:{")
				for _, m := range dir.Modifiers {
					writeQuoted(m, b)
					b.WriteString(":true,")
				}
				b.WriteByte('}')
			}
			b.WriteByte('}')
		}
		b.WriteByte(']')
	}

	if countSlotChildren(children) > 0 {
		entries.add(b)
		b.WriteString("scopedSlots:_vm._u([")
		var slots commaSep
		for _, child := range children {
			el, ok := child.(*Element)
			if !ok || el.Tag.Args.Slot.IsZero() {
				continue
			}
			slots.add(b)
			b.WriteString("{key:")
			el.Tag.Args.Slot.writeTo(b)
			b.WriteString(",fn:function(){return [")
			childrenToJS(d, el.Children, b, true)
			b.WriteString("]},proxy:true}")
		}
		b.WriteString("])")
	}

	if !args.Key.IsZero() {
		entries.add(b)
		b.WriteString("key:")
		args.Key.writeTo(b)
	}

	if !args.Ref.IsZero() {
		entries.add(b)
		b.WriteString("ref:")
		args.Ref.writeTo(b)
	}

	if args.RefInFor {
		entries.add(b)
		b.WriteString("refInFor:true")
	}

	b.WriteByte('}')
}

func writePropsObject(props []Prop, b *strings.Builder) {
	b.WriteByte('{')
	var entries commaSep
	for _, p := range props {
		entries.add(b)
		writeQuoted(p.Key, b)
		b.WriteByte(':')
		p.Val.writeTo(b)
	}
	b.WriteByte('}')
}

func isTextLike(child Child) bool {
	switch child.(type) {
	case *Text, *Interpolation:
		return true
	}
	return false
}

func writeTextLike(d *Document, child Child, b *strings.Builder) {
	switch ch := child.(type) {
	case *Text:
		writeTextQuote(d, ch.Span, b)
	case *Interpolation:
		writeJSVar(d, ch, b)
	}
}

// writeJSVar writes _vm._s(expr) with the interpolation's free references
// rewritten onto the vm receiver.
func writeJSVar(d *Document, v *Interpolation, b *strings.Builder) {
	b.WriteString("_vm._s(")
	b.WriteString(spliceRefs(d.src, v.Span, v.Refs))
	b.WriteByte(')')
}

// writeTextQuote quotes a text run with whitespace runs collapsed to a
// single space.
func writeTextQuote(d *Document, s Span, b *strings.Builder) {
	b.WriteByte('"')
	i := s.Lo
	for i < s.Hi {
		r := d.src[i]
		if isSpace(r) {
			b.WriteByte(' ')
			for i < s.Hi && isSpace(d.src[i]) {
				i++
			}
			continue
		}
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		i++
	}
	b.WriteByte('"')
}

func isCondContinuation(child Child) bool {
	el, ok := child.(*Element)
	if !ok {
		return false
	}
	return el.Tag.Args.Mod.Kind == ModElse || el.Tag.Args.Mod.Kind == ModElseIf
}

func isVForChild(child Child) bool {
	el, ok := child.(*Element)
	return ok && el.Tag.Args.Mod.Kind == ModFor
}

func hasSlotAttr(child Child) bool {
	el, ok := child.(*Element)
	return ok && !el.Tag.Args.Slot.IsZero()
}

func countSlotChildren(children []Child) int {
	n := 0
	for _, child := range children {
		if hasSlotAttr(child) {
			n++
		}
	}
	return n
}

// spliceRefs is rewriteVM for spans kept in the parsed tree, where the
// reference lists were already filtered against the local scope.
func spliceRefs(src []rune, expr Span, refs []Span) string {
	if len(refs) == 0 {
		return expr.text(src)
	}
	var b strings.Builder
	last := expr.Lo
	for _, ref := range refs {
		b.WriteString(Span{last, ref.Lo}.text(src))
		if text := ref.text(src); text == "this" {
			b.WriteString("_vm")
		} else {
			b.WriteString("_vm.")
			b.WriteString(text)
		}
		last = ref.Hi
	}
	b.WriteString(Span{last, expr.Hi}.text(src))
	return b.String()
}

// writeQuoted writes value as a double-quoted JS string literal.
func writeQuoted(value string, b *strings.Builder) {
	b.WriteByte('"')
	writeEscaped(value, '"', b)
	b.WriteByte('"')
}

// writeEscaped writes value with backslash escapes for quote and '\'.
func writeEscaped(value string, quote rune, b *strings.Builder) {
	for _, r := range value {
		if r == quote || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
}

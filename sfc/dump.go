package sfc

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// DumpXML renders the parsed document as an XML tree for inspection
// tooling and structural golden tests. Directive fields reappear as
// attributes carrying the rewritten expressions the renderer emits (v-if="ok"
// dumps as v-if="_vm.ok"; handlers appear as on-<event>).
func (d *Document) DumpXML() *etree.Document {
	doc := etree.NewDocument()
	root := doc.CreateElement("sfc")

	if t := d.Template; t != nil {
		e := root.CreateElement("template")
		if !t.Lang.IsEmpty() {
			e.CreateAttr("lang", d.Text(t.Lang))
		}
		for _, child := range t.Children {
			d.dumpChild(e, child)
		}
	}

	if s := d.Script; s != nil {
		e := root.CreateElement("script")
		if !s.Lang.IsEmpty() {
			e.CreateAttr("lang", d.Text(s.Lang))
		}
		if !s.DefaultExport.IsEmpty() {
			e.CreateAttr("default-export", "true")
		}
		e.CreateText(d.Text(s.Content))
	}

	for _, st := range d.Styles {
		e := root.CreateElement("style")
		if !st.Lang.IsEmpty() {
			e.CreateAttr("lang", d.Text(st.Lang))
		}
		if st.Scoped {
			e.CreateAttr("scoped", "true")
		}
		e.CreateText(d.Text(st.Content))
	}

	return doc
}

func (d *Document) dumpChild(parent *etree.Element, child Child) {
	switch ch := child.(type) {
	case *Text:
		parent.CreateText(d.Text(ch.Span))

	case *Interpolation:
		e := parent.CreateElement("interpolation")
		e.CreateText(d.Text(ch.Span))

	case *Element:
		e := parent.CreateElement(d.Text(ch.Tag.Name))
		args := &ch.Tag.Args

		switch args.Mod.Kind {
		case ModIf:
			e.CreateAttr("v-if", args.Mod.Cond)
		case ModElseIf:
			e.CreateAttr("v-else-if", args.Mod.Cond)
		case ModElse:
			e.CreateAttr("v-else", "")
		case ModFor:
			vars := args.Mod.For.Value
			if args.Mod.For.Key != "" {
				vars += ", " + args.Mod.For.Key
				if args.Mod.For.Index != "" {
					vars += ", " + args.Mod.For.Index
				}
				vars = "(" + vars + ")"
			}
			e.CreateAttr("v-for", vars+" in "+args.Mod.For.List)
		}

		if !args.Class.IsZero() {
			e.CreateAttr("class", args.Class.Text)
		}
		if !args.Style.IsZero() {
			e.CreateAttr("style", args.Style.Text)
		}
		for _, p := range args.AttrsOrProps {
			if p.Val.IsZero() {
				e.CreateAttr(p.Key, "")
			} else {
				e.CreateAttr(p.Key, p.Val.Text)
			}
		}
		for _, p := range args.DomProps {
			e.CreateAttr("domprops-"+strings.ToLower(p.Key), p.JS)
		}
		for _, h := range args.On {
			e.CreateAttr("on-"+h.Key, h.JS)
		}
		for _, h := range args.NativeOn {
			e.CreateAttr("nativeon-"+h.Key, h.JS)
		}
		if !args.Slot.IsZero() {
			e.CreateAttr("slot", args.Slot.Text)
		}
		if !args.SlotName.IsZero() {
			e.CreateAttr("name", args.SlotName.Text)
		}
		if !args.Key.IsZero() {
			e.CreateAttr("key", args.Key.Text)
		}
		if !args.Ref.IsZero() {
			e.CreateAttr("ref", args.Ref.Text)
		}
		if args.RefInFor {
			e.CreateAttr("ref-in-for", strconv.FormatBool(args.RefInFor))
		}

		for _, c2 := range ch.Children {
			d.dumpChild(e, c2)
		}
	}
}

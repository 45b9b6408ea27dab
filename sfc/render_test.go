package sfc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// renderBody compiles a template body and returns the bare render
// expression.
func renderBody(t *testing.T, body string) string {
	t.Helper()
	doc, err := Parse("<template>" + body + "</template>")
	require.NoError(t, err)
	return doc.RenderExpr()
}

func TestRenderStaticElements(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"<div></div>", "_c('div')"},
		{"<div/>", "_c('div')"},
		{"<h1>BOOOO</h1>", `_c('h1',[_vm._v("BOOOO")])`},
		{"<div><h1>BOOOO</h1></div>", `_c('div',[_c('h1',[_vm._v("BOOOO")])])`},
		{
			"<div><h1>BOOOO</h1><p>This is a test</p></div>",
			`_c('div',[_c('h1',[_vm._v("BOOOO")]),_c('p',[_vm._v("This is a test")])])`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got := renderBody(t, tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderInterpolation(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"<h1>{{ 'hello world' }}</h1>", `_c('h1',[_vm._v(_vm._s( 'hello world' ))])`},
		{"<h1>{{ count }}</h1>", `_c('h1',[_vm._v(_vm._s( _vm.count ))])`},
		{"<h1>{{ this.count }}</h1>", `_c('h1',[_vm._v(_vm._s( _vm.count ))])`},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got := renderBody(t, tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderTextFusion(t *testing.T) {
	got := renderBody(t, "<h1>It wurks {{ count }} !</h1>")
	want := `_c('h1',[_vm._v("It wurks "+_vm._s( _vm.count )+" !")])`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderWhitespaceCollapse(t *testing.T) {
	got := renderBody(t, "<p>a\n\t  b</p>")
	want := `_c('p',[_vm._v("a b")])`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAttrs(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"default args",
			"<h1 a=b c='d' e>Hmm</h1>",
			`_c('h1',{attrs:{"a":"b","c":"d","e":true}},[_vm._v("Hmm")])`,
		},
		{
			"v-bind on html element",
			"<h1 v-bind:value='value'>Hmm</h1>",
			`_c('h1',{attrs:{"value":_vm.value}},[_vm._v("Hmm")])`,
		},
		{
			"v-bind on custom component",
			"<custom-c v-bind:value='value'>Hmm</custom-c>",
			`_c('custom-c',{props:{"value":_vm.value}},[_vm._v("Hmm")])`,
		},
		{
			"bind shortcut",
			"<h1 :value='value'>Hmm</h1>",
			`_c('h1',{attrs:{"value":_vm.value}},[_vm._v("Hmm")])`,
		},
		{
			"static class",
			`<div class="box"></div>`,
			`_c('div',{staticClass:"box"})`,
		},
		{
			"bound class and style",
			`<div :class="cls" :style="st"></div>`,
			`_c('div',{class:_vm.cls,style:_vm.st})`,
		},
		{
			"key and ref",
			`<div key="k" ref="r"></div>`,
			`_c('div',{key:"k",ref:"r"})`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBody(t, tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderEventHandlers(t *testing.T) {
	got := renderBody(t, "<h1 @click='f($event)'>x</h1>")
	want := `_c('h1',{on:{"click":$event=>{_vm.f($event)}}},[_vm._v("x")])`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}

	got = renderBody(t, "<my-comp @close.native='f()'/>")
	want = `_c('my-comp',{nativeOn:{"close":$event=>{_vm.f()}}})`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderConditionalChains(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"if without else",
			`<div v-if="a">x</div>`,
			`_vm.a?_c('div',[_vm._v("x")]):_vm._e()`,
		},
		{
			"if else",
			`<div v-if="a">x</div><p v-else>y</p>`,
			`[_vm.a?_c('div',[_vm._v("x")]):_c('p',[_vm._v("y")])]`,
		},
		{
			"if else-if without else",
			`<div v-if="a">x</div><p v-else-if="b">y</p>`,
			`[_vm.a?_c('div',[_vm._v("x")]):_vm.b?_c('p',[_vm._v("y")]):_vm._e()]`,
		},
		{
			"chain then sibling",
			`<section><div v-if="a"/><span>s</span></section>`,
			`_c('section',[_vm.a?_c('div'):_vm._e(),_c('span',[_vm._v("s")])])`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBody(t, tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderVFor(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"single html child",
			`<ul><li v-for="item in items">{{ item }}</li></ul>`,
			`_c('ul',_vm._l((_vm.items),(item)=>_c('li',[_vm._v(_vm._s( item ))])),0)`,
		},
		{
			"single custom child",
			`<ul><row v-for="item in items"/></ul>`,
			`_c('ul',_vm._l((_vm.items),(item)=>_c('row')),1)`,
		},
		{
			"with key and index",
			`<ul><li v-for="(v, k, i) in items"/></ul>`,
			`_c('ul',_vm._l((_vm.items),(v,k,i)=>_c('li')),0)`,
		},
		{
			"among siblings",
			`<ul><label/><li v-for="x in xs"/></ul>`,
			`_c('ul',[_c('label'),_vm._l((_vm.xs),(x)=>_c('li'))],2)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBody(t, tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderTemplatePassthrough(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"empty template",
			`<div><template></template></div>`,
			`_c('div',[void 0])`,
		},
		{
			"template children inline",
			`<div><template><p>a</p><p>b</p></template></div>`,
			`_c('div',[[_c('p',[_vm._v("a")]),_c('p',[_vm._v("b")])]])`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBody(t, tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderSlots(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"default slot",
			`<div><slot></slot></div>`,
			`_c('div',[_vm._t("default")],2)`,
		},
		{
			"named slot with fallback",
			`<div><slot name="header"><p>f</p></slot></div>`,
			`_c('div',[_vm._t("header",function(){return [_c('p',[_vm._v("f")])]})],2)`,
		},
		{
			"slot with props",
			`<div><slot name="row" :item="item"></slot></div>`,
			`_c('div',[_vm._t("row",null,{"item":_vm.item})],2)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBody(t, tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderScopedSlotChildren(t *testing.T) {
	got := renderBody(t, `<card><p slot="title">t</p><p>body</p></card>`)
	want := `_c('card',{scopedSlots:_vm._u([{key:"title",fn:function(){return [_vm._v("t")]},proxy:true}])},[_c('p',[_vm._v("body")])])`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderVModel(t *testing.T) {
	got := renderBody(t, `<input v-model="name"/>`)
	want := `_c('input',{domProps:{"value":_vm.name},` +
		`on:{"input":$event=>{$event.target.composing?undefined:_vm.name=$event.target.value}},` +
		`directives:[{name:"model",rawName:"v-model",value:_vm.name,expression:"_vm.name"}]})`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCustomDirective(t *testing.T) {
	got := renderBody(t, `<div v-focus:input.lazy="cond"/>`)
	want := `_c('div',{directives:[{name:"focus",rawName:"v-focus:input.lazy",` +
		`value:_vm.cond,expression:"_vm.cond",arg:"input",modifiers:{"lazy":true,}}]})`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderVTextVHtml(t *testing.T) {
	got := renderBody(t, `<div v-text="msg"/>`)
	want := `_c('div',{domProps:{"textContent":_vm.msg}})`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}

	got = renderBody(t, `<div v-html="raw"/>`)
	want = `_c('div',{domProps:{"innerHTML":_vm.raw}})`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

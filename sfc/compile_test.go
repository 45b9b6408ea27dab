package sfc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEmptyDocument(t *testing.T) {
	out, err := Compile("")
	require.NoError(t, err)
	assert.Equal(t, "export default undefined;", out)
}

func TestCompileScriptOnly(t *testing.T) {
	out, err := Compile("<script>export default {name: 'app'}</script>")
	require.NoError(t, err)

	assert.Equal(t, "\nconst __vue_2_file_default_export__ = {name: 'app'}\nexport default __vue_2_file_default_export__;", out)
}

func TestCompileScriptPrefixPreserved(t *testing.T) {
	out, err := Compile("<script>import dep from 'dep';\nexport default {dep}</script>")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "import dep from 'dep';\n"))
	assert.Contains(t, out, "const __vue_2_file_default_export__ = {dep}")
	assert.True(t, strings.HasSuffix(out, "export default __vue_2_file_default_export__;"))
}

func TestCompileScriptWithoutDefaultExport(t *testing.T) {
	out, err := Compile("<script>const a = 1;</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "const a = 1;")
	assert.Contains(t, out, "const __vue_2_file_default_export__ = {};")
	assert.True(t, strings.HasSuffix(out, "export default __vue_2_file_default_export__;"))
}

func TestCompileTemplateOnly(t *testing.T) {
	out, err := Compile("<template><h1>hello !</h1></template>")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "const __vue_2_file_default_export__ = {};"))
	assert.Contains(t, out, "__vue_2_file_default_export__._compiled = true;")
	assert.Contains(t, out, "__vue_2_file_default_export__.staticRenderFns = [];")
	assert.Contains(t, out, "__vue_2_file_default_export__.render = function() {")
	assert.Contains(t, out, "const _vm = this;")
	assert.Contains(t, out, "const _h = _vm.$createElement;")
	assert.Contains(t, out, "const _c = _vm._self._c || _h;")
	assert.Contains(t, out, `return _c('h1',[_vm._v("hello !")]);`)
	assert.True(t, strings.HasSuffix(out, "export default __vue_2_file_default_export__;"))
}

func TestCompileEmptyTemplateRendersEmptyList(t *testing.T) {
	out, err := Compile("<template></template>")
	require.NoError(t, err)
	assert.Contains(t, out, "return [];")
}

func TestCompileFullComponent(t *testing.T) {
	src := `
<template>
	<div>
		<h1>It wurks {{ count }} !</h1>
		<button @click='count++'>+</button>
		<button @click='count--'>-</button>
	</div>
</template>

<script>
export default {
	data: () => ({count: 0}),
}
</script>

<style scoped>
h1 { color: red; }
</style>
`
	out, err := Compile(src)
	require.NoError(t, err)

	assert.Contains(t, out, "const __vue_2_file_default_export__ =")
	assert.Contains(t, out, "data: () => ({count: 0})")
	assert.Contains(t, out, `_c('h1',[_vm._v("It wurks "+_vm._s( _vm.count )+" !")])`)
	assert.Contains(t, out, `_c('button',{on:{"click":$event=>{_vm.count++}}},[_vm._v("+")])`)
	assert.Contains(t, out, `_c('button',{on:{"click":$event=>{_vm.count--}}},[_vm._v("-")])`)
	assert.True(t, strings.HasSuffix(out, "export default __vue_2_file_default_export__;"))
}

func TestCompileMultipleRootChildren(t *testing.T) {
	out, err := Compile("<template><p>a</p><p>b</p></template>")
	require.NoError(t, err)
	assert.Contains(t, out, `return [_c('p',[_vm._v("a")]),_c('p',[_vm._v("b")])];`)
}

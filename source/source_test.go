package source_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/parametric/source"
)

func TestDecodeJSON(t *testing.T) {
	v, err := source.DecodeJSON([]byte(`{"name":"a","ids":[1,2.5],"nested":{"ok":true,"nil":null}}`))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":   "a",
		"ids":    []any{1.0, 2.5},
		"nested": map[string]any{"ok": true, "nil": nil},
	}, v)
}

func TestDecodeJSON_Errors(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = source.DecodeJSON([]byte(`{} {}`))
	assert.ErrorIs(t, err, source.ErrTrailingData)

	_, err = source.DecodeJSONReader(strings.NewReader(""))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	v, err := source.DecodeYAML([]byte(`
name: a
count: 3
ratio: 0.5
tags: [x, y]
empty: ~
nested:
  ok: true
`))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":   "a",
		"count":  3,
		"ratio":  0.5,
		"tags":   []any{"x", "y"},
		"empty":  nil,
		"nested": map[string]any{"ok": true},
	}, v)
}

func TestDecodeYAML_DuplicateKey(t *testing.T) {
	_, err := source.DecodeYAML([]byte("a: 1\nb: 2\na: 3\n"))

	var dup *source.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "a", dup.Key)
	assert.Equal(t, 1, dup.FirstLine)
	assert.Equal(t, 3, dup.Line)
}

func TestDecodeYAML_Empty(t *testing.T) {
	v, err := source.DecodeYAML(nil)
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestYAMLReader_ReadAll(t *testing.T) {
	docs, err := source.NewYAMLReader(strings.NewReader("a: 1\n---\nb: 2\n")).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": 1}, map[string]any{"b": 2}}, docs)
}

func TestDecode_Sniffs(t *testing.T) {
	assert.True(t, source.IsJSON([]byte("  \n{\"a\":1}")))
	assert.False(t, source.IsJSON([]byte("a: 1")))

	v, err := source.Decode([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, v)

	v, err = source.Decode([]byte("a: 1"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, v)
}

func TestDecodeYAML_Aliases(t *testing.T) {
	v, err := source.DecodeYAML([]byte("base: &b {a: 1}\ncopy: *b\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"base": map[string]any{"a": 1},
		"copy": map[string]any{"a": 1},
	}, v)

	_, err = source.DecodeYAML([]byte("a: &x [1, *x]\n"))
	assert.ErrorIs(t, err, source.ErrAliasCycle)

	_, err = source.DecodeYAML([]byte("a: &x {b: {c: *x}}\n"))
	assert.ErrorIs(t, err, source.ErrAliasCycle)
}

func TestDecodeYAML_AliasExpansionLimit(t *testing.T) {
	doc := `
a: &a [x, x, x, x, x, x, x, x, x, x]
b: &b [*a, *a, *a, *a, *a, *a, *a, *a, *a, *a]
c: &c [*b, *b, *b, *b, *b, *b, *b, *b, *b, *b]
d: &d [*c, *c, *c, *c, *c, *c, *c, *c, *c, *c]
e: [*d, *d, *d, *d, *d, *d, *d, *d, *d, *d]
`
	_, err := source.DecodeYAML([]byte(doc))
	assert.ErrorIs(t, err, source.ErrAliasExpansion)
}

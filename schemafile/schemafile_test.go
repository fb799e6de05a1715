package schemafile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/parametric"
	"github.com/reoring/parametric/schemafile"
)

const fieldsYAML = `
fields:
  - key: name
    type: string
    filters: [trim]
    present: true
  - key: status
    options: [draft, published]
    default: draft
  - key: age
    type: integer
    validators:
      - {name: gt, args: [17]}
  - key: address
    fields:
      - {key: city, type: string, required: true}
`

func TestLoadSchema_YAML(t *testing.T) {
	s, err := schemafile.LoadSchema([]byte(fieldsYAML), nil)
	require.NoError(t, err)

	out, iss := s.Resolve(map[string]any{
		"name":    "  Ann ",
		"status":  "archived",
		"age":     "30",
		"address": map[string]any{"city": "Osaka"},
	})
	assert.Empty(t, iss)
	assert.Equal(t, map[string]any{
		"name":    "Ann",
		"status":  "draft",
		"age":     30,
		"address": map[string]any{"city": "Osaka"},
	}, out)

	_, iss = s.Resolve(map[string]any{"name": " ", "age": 3, "address": map[string]any{}})
	assert.Equal(t, []string{"/name", "/age", "/address/city"}, iss.Paths())
}

func TestLoadSchema_JSON(t *testing.T) {
	s, err := schemafile.LoadSchema([]byte(`{"fields":[{"key":"id","type":"uuid","required":true}]}`), nil)
	require.NoError(t, err)

	out, iss := s.Resolve(map[string]any{"id": "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"})
	assert.Empty(t, iss)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", out["id"])
}

func TestLoadParams(t *testing.T) {
	p, err := schemafile.LoadParams([]byte(`
params:
  - {key: ids, label: IDs, coerce: integer, multiple: true}
  - {key: order, options: [asc, desc], default: asc}
  - {key: since, nullable: true}
  - key: page
    params:
      - {key: size, coerce: integer, default: 20}
`), nil)
	require.NoError(t, err)

	out, iss := p.Resolve(map[string]any{"ids": "1,2", "order": "up", "page": map[string]any{}})
	assert.Empty(t, iss)
	assert.Equal(t, map[string]any{
		"ids":   []any{1, 2},
		"order": "asc",
		"page":  map[string]any{"size": 20},
	}, out)

	params := p.Params()
	require.Len(t, params, 4)
	assert.Equal(t, "IDs", params[0].Label)
}

func TestLoad_PicksMode(t *testing.T) {
	r, err := schemafile.Load([]byte("params:\n  - {key: q}\n"), nil)
	require.NoError(t, err)
	assert.IsType(t, &parametric.Params{}, r)

	r, err = schemafile.Load([]byte("fields:\n  - {key: q}\n"), nil)
	require.NoError(t, err)
	assert.IsType(t, &parametric.Schema{}, r)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "fields: []\n", schemafile.ErrEmpty},
		{"mixed", "fields: [{key: a}]\nparams: [{key: b}]\n", schemafile.ErrMixed},
		{"no key", "fields: [{type: string}]\n", schemafile.ErrNoKey},
		{"unknown filter", "fields: [{key: a, filters: [nope]}]\n", parametric.ErrUnknownFilter},
		{"unknown coerce", "params: [{key: a, coerce: nope}]\n", parametric.ErrUnknownFilter},
		{"bad match", "params: [{key: a, match: \"(\"}]\n", parametric.ErrInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schemafile.Load([]byte(tt.data), nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := schemafile.Parse([]byte("fields:\n  - {key: a, requird: true}\n"))
	assert.Error(t, err)

	_, err = schemafile.Parse([]byte(`{"fields":[{"key":"a","requird":true}]}`))
	assert.Error(t, err)
}

func TestFile_BuildParams(t *testing.T) {
	f, err := schemafile.Parse([]byte("params:\n  - {key: tags, multiple: true, separator: \"|\"}\n"))
	require.NoError(t, err)
	require.Len(t, f.Params, 1)

	mode, err := f.Mode()
	require.NoError(t, err)
	assert.Equal(t, "params", mode)

	p, err := f.BuildParams(nil)
	require.NoError(t, err)
	out, iss := p.Resolve(map[string]any{"tags": "a|b"})
	assert.Empty(t, iss)
	assert.Equal(t, []any{"a", "b"}, out["tags"])

	_, err = f.Schema(nil)
	assert.ErrorIs(t, err, schemafile.ErrEmpty)
}

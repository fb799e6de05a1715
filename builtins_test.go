package parametric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/parametric"
)

func TestBuiltinFilters(t *testing.T) {
	tests := []struct {
		name string
		args []any
		in   any
		want any
	}{
		{"string", nil, 12.0, "12"},
		{"string", nil, true, "true"},
		{"string", nil, nil, nil},
		{"integer", nil, "42", 42},
		{"integer", nil, 3.0, 3},
		{"integer", nil, "x", "x"},
		{"integer", nil, 1.5, 1.5},
		{"number", nil, "1.5", 1.5},
		{"number", nil, 2, 2.0},
		{"boolean", nil, "yes", true},
		{"boolean", nil, "0", false},
		{"boolean", nil, 1.0, true},
		{"trim", nil, "  hi  ", "hi"},
		{"lower", nil, "HeLLo", "hello"},
		{"upper", nil, "abc", "ABC"},
		{"upper", nil, 7, 7},
		{"integer", nil, uint64(1) << 63, uint64(1) << 63},
		{"integer", nil, 1e20, 1e20},
		{"split", nil, "a, b,,c", []any{"a", "b", "c"}},
		{"split", []any{"|"}, "a| b", []any{"a", "b"}},
		{"uuid", nil, "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{"uuid", nil, "not-a-uuid", "not-a-uuid"},
	}
	reg := parametric.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := reg.Filter(tt.name, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Filter(tt.in, "k", parametric.Context{}))
		})
	}
}

func TestBuiltinFilters_CoercionRecordsIssue(t *testing.T) {
	f, err := parametric.Default().Filter("boolean")
	require.NoError(t, err)

	ctx := parametric.NewContext().Sub("flag")
	f.Filter("maybe", "flag", ctx)

	iss := ctx.Issues()
	require.Len(t, iss, 1)
	assert.Equal(t, "/flag", iss[0].Path)
	assert.Equal(t, "must be boolean, but got maybe", iss[0].Message)
	assert.Equal(t, "boolean", iss[0].Params["type"])
}

func TestBuiltinValidators(t *testing.T) {
	tests := []struct {
		name  string
		args  []any
		value any
		ok    bool
		msg   string
	}{
		{"present", nil, nil, false, "is required and value must be present"},
		{"present", nil, " ", false, "is required and value must be present"},
		{"present", nil, []any{}, false, "is required and value must be present"},
		{"present", nil, map[string]any{}, false, "is required and value must be present"},
		{"present", nil, 0, true, ""},
		{"present", nil, false, true, ""},
		{"format", []any{"^[a-z]+$"}, "abc", true, ""},
		{"format", []any{"^[a-z]+$"}, "ABC", false, "invalid format"},
		{"format", []any{"^[a-z]+$", "lowercase only"}, "ABC", false, "lowercase only"},
		{"email", nil, "user.name+tag@mail.example.org", true, ""},
		{"email", nil, "nope", false, "invalid format"},
		{"gt", []any{5}, 6, true, ""},
		{"gt", []any{5}, "3", false, "must be greater than 5, but got 3"},
		{"gt", []any{10}, 10.5, false, "must be greater than 10, but got 10.5"},
		{"gt", []any{10}, 11.0, true, ""},
		{"options", []any{"a", "b"}, "c", false, "must be one of a, b, but got c"},
		{"options", []any{1, 2}, 2.0, true, ""},
		{"options", []any{[]any{"a", "b"}}, []any{"a", "c"}, false, "must be one of a, b, but got [a c]"},
		{"uuid", nil, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", true, ""},
		{"uuid", nil, "123", false, "must be a valid UUID, but got 123"},
	}
	reg := parametric.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := reg.Validator(tt.name, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, v.Valid("k", tt.value, map[string]any{"k": tt.value}))
			if !tt.ok {
				assert.Equal(t, tt.msg, v.Message(tt.value))
			}
		})
	}
}

func TestBuiltinValidators_Required(t *testing.T) {
	v, err := parametric.Default().Validator("required")
	require.NoError(t, err)

	assert.True(t, v.Valid("k", nil, map[string]any{"k": nil}))
	assert.False(t, v.Valid("k", nil, map[string]any{}))
	assert.Equal(t, "is required", v.Message(nil))
}

func TestBuiltinValidators_BadArgs(t *testing.T) {
	reg := parametric.Default()

	_, err := reg.Validator("format")
	assert.ErrorIs(t, err, parametric.ErrInvalidArgs)
	_, err = reg.Validator("format", 1)
	assert.ErrorIs(t, err, parametric.ErrInvalidArgs)
	_, err = reg.Validator("gt", "x")
	assert.ErrorIs(t, err, parametric.ErrInvalidArgs)
	_, err = reg.Validator("options")
	assert.ErrorIs(t, err, parametric.ErrInvalidArgs)
	_, err = reg.Filter("split", 1)
	assert.ErrorIs(t, err, parametric.ErrInvalidArgs)
}

func TestBuiltinValidators_IssueParams(t *testing.T) {
	s := parametric.NewSchema()
	s.Field("age").Type("integer").Validate("gt", 17)

	_, iss := s.MustBuild().Resolve(map[string]any{"age": 3})
	require.Len(t, iss, 1)
	assert.Equal(t, map[string]any{"num": 17.0, "got": 3}, iss[0].Params)
}

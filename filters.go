package parametric

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/reoring/parametric/i18n"
)

// coercion reports a type mismatch at ctx and hands the raw value back, so
// the field is discarded instead of carrying a half-converted value.
func coercion(typ string, conv func(any) (any, bool)) Filter {
	return FilterFunc(func(v any, _ string, ctx Context) any {
		if v == nil {
			return nil
		}
		out, ok := conv(v)
		if !ok {
			got := toString(v)
			ctx.AddIssue(CodeInvalidType, i18n.T(CodeInvalidType, map[string]string{"type": typ, "got": got}),
				map[string]any{"type": typ, "got": v})
			return v
		}
		return out
	})
}

var (
	stringFilter = coercion("string", func(v any) (any, bool) {
		switch v.(type) {
		case map[string]any, []any:
			return nil, false
		}
		return toString(v), true
	})

	integerFilter = coercion("integer", func(v any) (any, bool) {
		n, ok := toInt(v)
		return n, ok
	})

	numberFilter = coercion("number", func(v any) (any, bool) {
		if _, ok := v.(bool); ok {
			return nil, false
		}
		f, ok := toFloat(v)
		return f, ok
	})

	booleanFilter = coercion("boolean", func(v any) (any, bool) {
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "1", "yes", "on":
				return true, true
			case "false", "0", "no", "off":
				return false, true
			}
			return nil, false
		}
		if n, ok := toInt(v); ok && (n == 0 || n == 1) {
			return n == 1, true
		}
		return nil, false
	})
)

// stringOp applies fn to string values and leaves everything else untouched.
func stringOp(fn func(string) string) Filter {
	return FilterFunc(func(v any, _ string, _ Context) any {
		if s, ok := v.(string); ok {
			return fn(s)
		}
		return v
	})
}

// splitFactory builds the "split" filter: split(sep) turns a string into a
// list of trimmed, non-empty parts. sep defaults to a comma.
func splitFactory(args ...any) (Filter, error) {
	sep := ","
	if len(args) > 0 {
		s, ok := args[0].(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%w: split separator must be a non-empty string", ErrInvalidArgs)
		}
		sep = s
	}
	return FilterFunc(func(v any, _ string, _ Context) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		return splitList(s, sep)
	}), nil
}

func splitList(s, sep string) []any {
	out := []any{}
	for part := range strings.SplitSeq(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// uuidFilter canonicalizes parseable UUID strings and leaves anything else for
// the uuid validator to reject.
var uuidFilter = FilterFunc(func(v any, _ string, _ Context) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return v
	}
	return id.String()
})

func registerBuiltinFilters(r *Registry) {
	r.RegisterFilter("string", FilterInstance(stringFilter)).
		RegisterFilter("integer", FilterInstance(integerFilter)).
		RegisterFilter("number", FilterInstance(numberFilter)).
		RegisterFilter("boolean", FilterInstance(booleanFilter)).
		RegisterFilter("trim", FilterInstance(stringOp(strings.TrimSpace))).
		RegisterFilter("lower", FilterInstance(stringOp(strings.ToLower))).
		RegisterFilter("upper", FilterInstance(stringOp(strings.ToUpper))).
		RegisterFilter("split", splitFactory).
		RegisterFilter("uuid", FilterInstance(uuidFilter))
}

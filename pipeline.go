package parametric

// Filter transforms a value during field resolution. Filters run in
// declaration order, each receiving the previous filter's output.
type Filter interface {
	Filter(value any, key string, ctx Context) any
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(value any, key string, ctx Context) any

func (f FilterFunc) Filter(value any, key string, ctx Context) any { return f(value, key, ctx) }

// Validator checks a resolved value. Message is only called for values that
// failed Valid.
type Validator interface {
	Valid(key string, value any, payload map[string]any) bool
	Message(value any) string
}

// ExistenceGuard is an optional Validator capability that can veto whether a
// key counts as present. A vetoed key is handled like a missing one.
type ExistenceGuard interface {
	Exists(payload map[string]any, key string, raw any) bool
}

// DefaultFunc produces a value for a missing key.
type DefaultFunc func(key string, payload map[string]any, ctx Context) any

// Resolver is implemented by Schema and Params.
type Resolver interface {
	Resolve(payload any) (map[string]any, Issues)
}

// applyGuard calls ExistenceGuard if implemented.
func applyGuard(v Validator, payload map[string]any, key string, raw any) bool {
	if g, ok := v.(ExistenceGuard); ok {
		return g.Exists(payload, key, raw)
	}
	return true
}

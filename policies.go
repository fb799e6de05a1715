package parametric

// Every stage before single receives and returns a []any.

func listOf(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return toList(v)
}

// elemContext addresses an element by index only when there is more than one,
// so scalar inputs report at the key itself.
func elemContext(ctx Context, list []any, i int) Context {
	if len(list) > 1 {
		return ctx.Sub(i)
	}
	return ctx
}

// coercePolicy splits a separated string first when the param is multiple, so
// "1,2" coerces element-wise instead of failing as a whole. Elements whose
// coercion records an issue are dropped.
var coercePolicy = PolicyFunc(func(v any, p *Param, ctx Context) any {
	list := listOf(v)
	if p.IsMultiple() {
		list = splitSingle(list, p)
	}
	f := p.CoerceFilter()
	if f == nil {
		return list
	}
	ctx = ctx.scratch()
	out := make([]any, 0, len(list))
	for i, e := range list {
		before := ctx.issueCount()
		c := f.Filter(e, p.Key, elemContext(ctx, list, i))
		if ctx.issueCount() > before {
			continue
		}
		out = append(out, c)
	}
	return out
})

// nestedPolicy is a plain func: Params.ResolveContext reaches the builtin
// registration, which a package-level var would turn into an init cycle.
func nestedPolicy(v any, p *Param, ctx Context) any {
	list := listOf(v)
	n := p.Nested()
	if n == nil {
		return list
	}
	out := make([]any, len(list))
	for i, e := range list {
		out[i] = n.ResolveContext(e, elemContext(ctx, list, i))
	}
	return out
}

var multiplePolicy = PolicyFunc(func(v any, p *Param, _ Context) any {
	return splitSingle(listOf(v), p)
})

// splitSingle splits a list holding one string on the param separator.
func splitSingle(list []any, p *Param) []any {
	if len(list) != 1 {
		return list
	}
	s, ok := list[0].(string)
	if !ok {
		return list
	}
	sep := p.Separator()
	if sep == "" {
		sep = ","
	}
	return splitList(s, sep)
}

var optionsPolicy = PolicyFunc(func(v any, p *Param, _ Context) any {
	opts, _ := p.Options()
	out := []any{}
	for _, e := range listOf(v) {
		if containsValue(opts, e) {
			out = append(out, e)
		}
	}
	return out
})

var matchPolicy = PolicyFunc(func(v any, p *Param, _ Context) any {
	re := p.Pattern()
	if re == nil {
		return listOf(v)
	}
	out := []any{}
	for _, e := range listOf(v) {
		if re.MatchString(toString(e)) {
			out = append(out, e)
		}
	}
	return out
})

var defaultPolicy = PolicyFunc(func(v any, p *Param, _ Context) any {
	list := listOf(v)
	if len(list) > 0 {
		return list
	}
	if def, ok := p.DefaultValue(); ok {
		return toList(def)
	}
	return list
})

var singlePolicy = PolicyFunc(func(v any, _ *Param, _ Context) any {
	list := listOf(v)
	if len(list) == 0 {
		return nil
	}
	return list[0]
})

func registerBuiltinPolicies(r *Registry) {
	r.RegisterPolicy(PolicyCoerce, coercePolicy).
		RegisterPolicy(PolicyNested, PolicyFunc(nestedPolicy)).
		RegisterPolicy(PolicyMultiple, multiplePolicy).
		RegisterPolicy(PolicyOptions, optionsPolicy).
		RegisterPolicy(PolicyMatch, matchPolicy).
		RegisterPolicy(PolicyDefault, defaultPolicy).
		RegisterPolicy(PolicySingle, singlePolicy)
}

func registerBuiltins(r *Registry) {
	registerBuiltinFilters(r)
	registerBuiltinValidators(r)
	registerBuiltinPolicies(r)
}

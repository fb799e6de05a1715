package parametric

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
)

// Param is one key declared on Params: a label plus the toggled options that
// select policy stages.
type Param struct {
	Key   string
	Label string

	coerceName string
	coerce     Filter
	nested     *Params
	multiple   bool
	separator  string
	options    []any
	hasOptions bool
	match      *regexp.Regexp
	def        any
	hasDefault bool
	nullable   bool

	errs []error
}

// ParamOption toggles an option on a Param.
type ParamOption func(*Param)

// Coerce converts every value with the named filter (for example "integer").
func Coerce(name string) ParamOption {
	return func(p *Param) { p.coerceName = name }
}

// CoerceWith converts every value with f.
func CoerceWith(f Filter) ParamOption {
	return func(p *Param) {
		p.coerceName = ""
		p.coerce = f
	}
}

// NestedParams resolves every map value against n.
func NestedParams(n *Params) ParamOption {
	return func(p *Param) { p.nested = n }
}

// Multiple keeps the value as a list; a single string is split on sep (a
// comma when empty).
func Multiple(sep ...string) ParamOption {
	return func(p *Param) {
		p.multiple = true
		if len(sep) > 0 {
			p.separator = sep[0]
		}
	}
}

// OneOf keeps only values contained in values.
func OneOf(values ...any) ParamOption {
	return func(p *Param) {
		p.options = values
		p.hasOptions = true
	}
}

// Match keeps only values whose string form matches pattern.
func Match(pattern string) ParamOption {
	return func(p *Param) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			p.errs = append(p.errs, fmt.Errorf("%w: match pattern: %w", ErrInvalidArgs, err))
			return
		}
		p.match = re
	}
}

// MatchRegexp is Match with a compiled pattern.
func MatchRegexp(re *regexp.Regexp) ParamOption {
	return func(p *Param) { p.match = re }
}

// DefaultTo substitutes v when no value survives the earlier stages.
func DefaultTo(v any) ParamOption {
	return func(p *Param) {
		p.def = v
		p.hasDefault = true
	}
}

// Nullable leaves the key out of the output when it was absent from the input.
func Nullable() ParamOption {
	return func(p *Param) { p.nullable = true }
}

// kinds returns the policy stages selected by the options, in precedence
// order.
func (p *Param) kinds() []PolicyKind {
	var out []PolicyKind
	if p.coerce != nil {
		out = append(out, PolicyCoerce)
	}
	if p.nested != nil {
		out = append(out, PolicyNested)
	}
	if p.multiple {
		out = append(out, PolicyMultiple)
	}
	if p.hasOptions {
		out = append(out, PolicyOptions)
	}
	if p.match != nil {
		out = append(out, PolicyMatch)
	}
	if p.hasDefault {
		out = append(out, PolicyDefault)
	}
	if !p.multiple {
		out = append(out, PolicySingle)
	}
	return out
}

// Separator returns the separator used by the multiple stage.
func (p *Param) Separator() string { return p.separator }

// Options returns the allowed values, if declared.
func (p *Param) Options() ([]any, bool) { return p.options, p.hasOptions }

// Pattern returns the match pattern, if declared.
func (p *Param) Pattern() *regexp.Regexp { return p.match }

// DefaultValue returns the declared default, if any.
func (p *Param) DefaultValue() (any, bool) { return p.def, p.hasDefault }

// Nested returns the nested params, if declared.
func (p *Param) Nested() *Params { return p.nested }

// CoerceFilter returns the coercion filter, if declared.
func (p *Param) CoerceFilter() Filter { return p.coerce }

// IsMultiple reports whether the param keeps lists.
func (p *Param) IsMultiple() bool { return p.multiple }

// IsNullable reports whether an absent key is left out of the output.
func (p *Param) IsNullable() bool { return p.nullable }

// Params declares keys through toggled options and resolves a payload by
// building one policy chain per key.
type Params struct {
	cfg    schemaConfig
	params []*Param
	index  map[string]int
}

var _ Resolver = (*Params)(nil)

// NewParams returns an empty Params.
func NewParams(opts ...SchemaOption) *Params {
	return &Params{cfg: newSchemaConfig(opts), index: map[string]int{}}
}

// Param declares key. Redeclaring a key replaces the earlier declaration in
// place.
func (ps *Params) Param(key, label string, opts ...ParamOption) *Params {
	p := &Param{Key: key, Label: label}
	for _, opt := range opts {
		opt(p)
	}
	if p.coerceName != "" {
		f, err := ps.cfg.registry.Filter(p.coerceName)
		if err != nil {
			p.errs = append(p.errs, err)
		} else {
			p.coerce = f
		}
	}
	if i, ok := ps.index[key]; ok {
		ps.params[i] = p
		return ps
	}
	ps.index[key] = len(ps.params)
	ps.params = append(ps.params, p)
	return ps
}

// Nested declares key with a nested Params built inline.
func (ps *Params) Nested(key, label string, build func(n *Params), opts ...ParamOption) *Params {
	n := NewParams(WithRegistry(ps.cfg.registry), WithLogger(ps.cfg.logger))
	if build != nil {
		build(n)
	}
	return ps.Param(key, label, append([]ParamOption{NestedParams(n)}, opts...)...)
}

// Params returns the declared params in declaration order.
func (ps *Params) Params() []*Param {
	out := make([]*Param, len(ps.params))
	copy(out, ps.params)
	return out
}

// Err returns every declaration error, including stages the registry cannot
// serve.
func (ps *Params) Err() error {
	var errs []error
	for _, p := range ps.params {
		for _, err := range p.errs {
			errs = append(errs, fmt.Errorf("param %q: %w", p.Key, err))
		}
		for _, k := range p.kinds() {
			if _, err := ps.cfg.registry.Policy(k); err != nil {
				errs = append(errs, fmt.Errorf("param %q: %w", p.Key, err))
			}
		}
		if p.nested != nil {
			if err := p.nested.Err(); err != nil {
				errs = append(errs, fmt.Errorf("param %q: %w", p.Key, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Build validates the declarations and returns the params.
func (ps *Params) Build() (*Params, error) {
	if err := ps.Err(); err != nil {
		return nil, err
	}
	return ps, nil
}

// MustBuild is like Build but panics on error.
func (ps *Params) MustBuild() *Params {
	out, err := ps.Build()
	if err != nil {
		panic(err)
	}
	return out
}

// Resolve reduces payload to one value per declared key. Elements that fail
// coercion are reported and left out of the output.
func (ps *Params) Resolve(payload any) (map[string]any, Issues) {
	ctx := NewContext()
	out := ps.ResolveContext(payload, ctx)
	iss := ctx.Issues()
	if len(iss) > 0 {
		ps.cfg.logger.Debug("params resolved with issues", slog.Int("params", len(ps.params)), slog.Int("issues", len(iss)))
	}
	return out, iss
}

// ResolveContext resolves payload below ctx.
func (ps *Params) ResolveContext(payload any, ctx Context) map[string]any {
	raw, _ := payload.(map[string]any)
	out := make(map[string]any, len(ps.params))
	for _, p := range ps.params {
		v, has := raw[p.Key]
		if p.nullable && !has {
			continue
		}
		out[p.Key] = BuildChain(v, p, ps.cfg.registry).ValueContext(ctx.Sub(p.Key))
	}
	return out
}

package parametric

import (
	"errors"
	"fmt"
	"maps"
)

// Outcome classifies a field resolution.
type Outcome uint8

const (
	// OutcomeAbsent: the key was missing (or vetoed by a guard) and no default
	// was declared.
	OutcomeAbsent Outcome = iota
	// OutcomeValid: a value was produced and every validator passed.
	OutcomeValid
	// OutcomeInvalid: a value was computed but discarded because a validator
	// failed or a filter recorded an issue.
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Result is the outcome of resolving one field. Value is nil unless Outcome
// is OutcomeValid.
type Result struct {
	Value   any
	Outcome Outcome
}

// OK reports whether the field produced a validated value.
func (r Result) OK() bool { return r.Outcome == OutcomeValid }

type validatorEntry struct {
	name string
	v    Validator
}

// Field is the resolution unit for one payload key. Declaration methods only
// append filters and validators or merge metadata; declare everything before
// the first Resolve.
type Field struct {
	key        string
	registry   *Registry
	filters    []Filter
	validators []validatorEntry
	defaultFn  DefaultFunc
	meta       map[string]any
	errs       []error
}

// NewField returns a Field for key that looks names up in reg (Default() when
// nil).
func NewField(key string, reg *Registry) *Field {
	if reg == nil {
		reg = Default()
	}
	return &Field{key: key, registry: reg, meta: map[string]any{}}
}

// Key returns the payload key.
func (f *Field) Key() string { return f.key }

// MetaData returns a copy of the field metadata.
func (f *Field) MetaData() map[string]any { return maps.Clone(f.meta) }

// Err returns the declaration errors recorded so far, joined.
func (f *Field) Err() error { return errors.Join(f.errs...) }

// Meta merges annotations into the field metadata.
func (f *Field) Meta(m map[string]any) *Field {
	maps.Copy(f.meta, m)
	return f
}

// Default declares the value used when the key is missing. v may be a
// DefaultFunc (or a plain func with the same signature), which is called at
// resolution time; any other value is returned as-is.
func (f *Field) Default(v any) *Field {
	f.meta["default"] = v
	switch fn := v.(type) {
	case DefaultFunc:
		f.defaultFn = fn
	case func(string, map[string]any, Context) any:
		f.defaultFn = fn
	default:
		f.defaultFn = func(string, map[string]any, Context) any { return v }
	}
	return f
}

// Type attaches the named filter and, when one is registered under the same
// name, the validator.
func (f *Field) Type(name string) *Field {
	f.meta["type"] = name
	f.Filter(name)
	if f.registry.HasValidator(name) {
		f.Validate(name)
	}
	return f
}

// Required reports an issue when the key is missing from the payload.
func (f *Field) Required() *Field {
	f.meta["required"] = true
	return f.Validate(CodeRequired)
}

// Present is Required plus a check that the value is not blank.
func (f *Field) Present() *Field {
	return f.Required().Validate(CodePresent)
}

// Options restricts the value to the given set. Values outside the set are
// treated as missing, so a declared default takes over.
func (f *Field) Options(values ...any) *Field {
	f.meta["options"] = values
	return f.Validate(CodeInvalidEnum, values...)
}

// Validate appends the validator registered under name.
func (f *Field) Validate(name string, args ...any) *Field {
	v, err := f.registry.Validator(name, args...)
	if err != nil {
		f.errs = append(f.errs, fmt.Errorf("field %q: %w", f.key, err))
		return f
	}
	f.validators = append(f.validators, validatorEntry{name: name, v: v})
	return f
}

// ValidateWith appends a validator instance. name becomes the issue code;
// empty names use CodeCustom.
func (f *Field) ValidateWith(name string, v Validator) *Field {
	if v == nil {
		return f
	}
	if name == "" {
		name = CodeCustom
	}
	f.validators = append(f.validators, validatorEntry{name: name, v: v})
	return f
}

// Filter appends the filter registered under name.
func (f *Field) Filter(name string, args ...any) *Field {
	fl, err := f.registry.Filter(name, args...)
	if err != nil {
		f.errs = append(f.errs, fmt.Errorf("field %q: %w", f.key, err))
		return f
	}
	f.filters = append(f.filters, fl)
	return f
}

// FilterWith appends a filter instance.
func (f *Field) FilterWith(fl Filter) *Field {
	if fl != nil {
		f.filters = append(f.filters, fl)
	}
	return f
}

// Schema resolves the value (or each element of an array value) against a
// nested schema.
func (f *Field) Schema(s *Schema) *Field {
	if s == nil {
		return f
	}
	f.meta["schema"] = s
	if err := s.Err(); err != nil {
		f.errs = append(f.errs, fmt.Errorf("field %q: %w", f.key, err))
	}
	return f.FilterWith(s)
}

// Nested declares a nested schema inline, sharing the field's registry.
func (f *Field) Nested(build func(s *Schema)) *Field {
	s := NewSchema(WithRegistry(f.registry))
	if build != nil {
		build(s)
	}
	return f.Schema(s)
}

// Resolve resolves the field against payload. ctx should already be scoped to
// the field's key. onValid callbacks receive the value only when the outcome
// is OutcomeValid.
func (f *Field) Resolve(payload any, ctx Context, onValid ...func(any)) Result {
	m, _ := payload.(map[string]any)
	ctx = ctx.scratch()
	before := ctx.issueCount()

	var (
		result   any
		produced bool
	)
	switch {
	case f.present(m):
		raw := m[f.key]
		if arr, ok := raw.([]any); ok {
			result = f.resolveArray(arr, ctx)
		} else {
			result = f.resolveValue(raw, ctx)
		}
		produced = true
	case f.defaultFn != nil:
		result = f.defaultFn(f.key, m, ctx)
		produced = true
	}
	filtersFailed := ctx.issueCount() > before

	if !f.runValidations(result, m, ctx) || filtersFailed {
		return Result{Outcome: OutcomeInvalid}
	}
	if !produced {
		return Result{Outcome: OutcomeAbsent}
	}
	for _, cb := range onValid {
		if cb != nil {
			cb(result)
		}
	}
	return Result{Value: result, Outcome: OutcomeValid}
}

func (f *Field) present(payload map[string]any) bool {
	if payload == nil {
		return false
	}
	raw, ok := payload[f.key]
	if !ok {
		return false
	}
	for _, e := range f.validators {
		if !applyGuard(e.v, payload, f.key, raw) {
			return false
		}
	}
	return true
}

func (f *Field) resolveArray(arr []any, ctx Context) []any {
	out := make([]any, len(arr))
	for i, v := range arr {
		out[i] = f.resolveValue(v, ctx.Sub(i))
	}
	return out
}

func (f *Field) resolveValue(v any, ctx Context) any {
	for _, fl := range f.filters {
		v = fl.Filter(v, f.key, ctx)
	}
	return v
}

// runValidations runs every validator, recording one issue per failure.
func (f *Field) runValidations(value any, payload map[string]any, ctx Context) bool {
	ok := true
	for _, e := range f.validators {
		if e.v.Valid(f.key, value, payload) {
			continue
		}
		ok = false
		ctx.AddIssue(e.name, e.v.Message(value), issueParams(e.v, value))
	}
	return ok
}

// paramsProvider is implemented by built-in validators that expose their
// construction arguments for Issue.Params.
type paramsProvider interface {
	params(value any) map[string]any
}

func issueParams(v Validator, value any) map[string]any {
	if p, ok := v.(paramsProvider); ok {
		return p.params(value)
	}
	return nil
}

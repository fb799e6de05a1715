package parametric

import "strconv"

// PolicyKind identifies one stage of a policy chain. The numeric order of the
// constants is the chain's precedence: lower kinds run first.
type PolicyKind uint8

const (
	PolicyCoerce PolicyKind = iota
	PolicyNested
	PolicyMultiple
	PolicyOptions
	PolicyMatch
	PolicyDefault
	PolicySingle
)

var policyNames = [...]string{"coerce", "nested", "multiple", "options", "match", "default", "single"}

func (k PolicyKind) String() string {
	if int(k) < len(policyNames) {
		return policyNames[k]
	}
	return "policy(" + strconv.Itoa(int(k)) + ")"
}

// PolicyKindByName resolves a policy name such as "multiple".
func PolicyKindByName(name string) (PolicyKind, bool) {
	for i, n := range policyNames {
		if n == name {
			return PolicyKind(i), true
		}
	}
	return 0, false
}

// Policy is one stage of a chain. Apply receives the previous stage's value,
// which is a []any for every stage except the one after PolicySingle.
type Policy interface {
	Apply(value any, p *Param, ctx Context) any
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(value any, p *Param, ctx Context) any

func (f PolicyFunc) Apply(value any, p *Param, ctx Context) any { return f(value, p, ctx) }

// Chain is an ordered list of policy stages over one raw value. Wrap returns a
// new Chain; Value folds the stages from the innermost outwards.
type Chain struct {
	raw      any
	param    *Param
	registry *Registry
	kinds    []PolicyKind
}

// NewChain starts a chain for raw with no stages.
func NewChain(raw any, p *Param, reg *Registry) *Chain {
	if reg == nil {
		reg = Default()
	}
	return &Chain{raw: raw, param: p, registry: reg}
}

// Wrap layers kind around the current chain.
func (c *Chain) Wrap(kind PolicyKind) *Chain {
	kinds := make([]PolicyKind, len(c.kinds), len(c.kinds)+1)
	copy(kinds, c.kinds)
	return &Chain{raw: c.raw, param: c.param, registry: c.registry, kinds: append(kinds, kind)}
}

// Kinds returns the stages in application order.
func (c *Chain) Kinds() []PolicyKind {
	out := make([]PolicyKind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// Value computes the chain's final value with a discarding context. A failed
// coercion leaves the raw element in place; use ValueContext to see the issue.
func (c *Chain) Value() any { return c.ValueContext(Context{}) }

// ValueContext computes the chain's final value, recording issues raised by
// stages (coercion failures, nested params) into ctx. Stages missing from the
// registry are skipped; Params.Build rejects them up front.
func (c *Chain) ValueContext(ctx Context) any {
	var v any = toList(c.raw)
	for _, k := range c.kinds {
		p, err := c.registry.Policy(k)
		if err != nil {
			continue
		}
		v = p.Apply(v, c.param, ctx)
	}
	return v
}

// BuildChain assembles the chain for p in fixed precedence, independent of the
// order in which options were declared.
func BuildChain(raw any, p *Param, reg *Registry) *Chain {
	c := NewChain(raw, p, reg)
	for _, k := range p.kinds() {
		c = c.Wrap(k)
	}
	return c
}

// toList normalizes v to a list: nil -> [], []any -> itself, scalar -> [v].
func toList(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	default:
		return []any{t}
	}
}

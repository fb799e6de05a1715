package parametric

// Context carries the path of the value being resolved and the error sink of
// the current resolution. It is passed by value; Sub never mutates the
// receiver, and every derived Context shares the same sink. The zero Context
// discards issues.
type Context struct {
	path Path
	sink *sink
}

type sink struct {
	issues Issues
}

// NewContext returns a root Context with an empty error sink. Use one per
// payload resolution.
func NewContext() Context {
	return Context{sink: &sink{}}
}

// Sub derives a child Context scoped to a map key (string) or array index
// (int). Other segment types are ignored.
func (c Context) Sub(seg any) Context {
	switch s := seg.(type) {
	case string:
		return Context{path: c.path.Key(s), sink: c.sink}
	case int:
		return Context{path: c.path.Index(s), sink: c.sink}
	default:
		return c
	}
}

// Path returns the current path.
func (c Context) Path() Path { return c.path }

// AddError records msg at the current path with CodeCustom.
func (c Context) AddError(msg string) {
	c.AddIssue(CodeCustom, msg, nil)
}

// AddIssue records an issue at the current path.
func (c Context) AddIssue(code, msg string, params map[string]any) {
	if c.sink == nil {
		return
	}
	c.sink.issues = append(c.sink.issues, Issue{Path: c.path.Pointer(), Code: code, Message: msg, Params: params})
}

// Issues returns the issues recorded so far by this Context tree.
func (c Context) Issues() Issues {
	if c.sink == nil {
		return nil
	}
	return c.sink.issues
}

// scratch gives a sinkless Context a private sink, so failures stay
// observable while the issues are still dropped for the caller.
func (c Context) scratch() Context {
	if c.sink == nil {
		c.sink = &sink{}
	}
	return c
}

func (c Context) issueCount() int {
	if c.sink == nil {
		return 0
	}
	return len(c.sink.issues)
}

package parametric

import (
	"errors"
	"log/slog"
)

// SchemaOption configures a Schema or Params.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	registry *Registry
	logger   *slog.Logger
}

// WithRegistry sets the registry used to look up names; nil is ignored.
func WithRegistry(r *Registry) SchemaOption {
	return func(c *schemaConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLogger sets a logger for debug output about failed fields; nil is
// ignored.
func WithLogger(l *slog.Logger) SchemaOption {
	return func(c *schemaConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func newSchemaConfig(opts []SchemaOption) schemaConfig {
	cfg := schemaConfig{registry: Default(), logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Schema is an ordered collection of Fields. It resolves a whole payload and
// can itself be used as a Filter to resolve nested payloads.
type Schema struct {
	cfg    schemaConfig
	fields []*Field
	index  map[string]int
}

var (
	_ Filter   = (*Schema)(nil)
	_ Resolver = (*Schema)(nil)
)

// NewSchema returns an empty Schema.
func NewSchema(opts ...SchemaOption) *Schema {
	return &Schema{cfg: newSchemaConfig(opts), index: map[string]int{}}
}

// Field declares key, or returns the existing declaration for key so it can
// be extended.
func (s *Schema) Field(key string) *Field {
	if i, ok := s.index[key]; ok {
		return s.fields[i]
	}
	f := NewField(key, s.cfg.registry)
	s.index[key] = len(s.fields)
	s.fields = append(s.fields, f)
	return f
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Err returns every declaration error recorded by the schema's fields.
func (s *Schema) Err() error {
	var errs []error
	for _, f := range s.fields {
		if err := f.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build validates the declarations and returns the schema.
func (s *Schema) Build() (*Schema, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (s *Schema) MustBuild() *Schema {
	out, err := s.Build()
	if err != nil {
		panic(err)
	}
	return out
}

// Resolve resolves payload from the root, returning the output map and every
// issue recorded along the way. Keys that were absent or invalid are left out
// of the output.
func (s *Schema) Resolve(payload any) (map[string]any, Issues) {
	ctx := NewContext()
	out := s.ResolveContext(payload, ctx)
	iss := ctx.Issues()
	if len(iss) > 0 {
		s.cfg.logger.Debug("payload resolved with issues", slog.Int("fields", len(s.fields)), slog.Int("issues", len(iss)))
	}
	return out, iss
}

// ResolveContext resolves payload below ctx, recording issues into ctx's sink.
func (s *Schema) ResolveContext(payload any, ctx Context) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		fctx := ctx.Sub(f.key)
		r := f.Resolve(payload, fctx, func(v any) { out[f.key] = v })
		if r.Outcome == OutcomeInvalid {
			s.cfg.logger.Debug("field invalid", slog.String("key", f.key), slog.String("path", fctx.Path().Pointer()))
		}
	}
	return out
}

// Filter resolves value as a nested payload at ctx's path.
func (s *Schema) Filter(value any, key string, ctx Context) any {
	return s.ResolveContext(value, ctx)
}

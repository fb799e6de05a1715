// Package schemafile builds Schemas and Params from declaration files written
// in YAML or JSON, so resolvers can be configured without recompiling.
//
// A file declares either Field mode:
//
//	fields:
//	  - key: name
//	    type: string
//	    filters: [trim]
//	    present: true
//	    validators:
//	      - {name: format, args: ["^[a-z ]+$"]}
//	  - key: address
//	    fields:
//	      - {key: city, type: string, required: true}
//
// or Policy mode:
//
//	params:
//	  - {key: ids, label: IDs, coerce: integer, multiple: true}
//	  - {key: order, options: [asc, desc], default: asc}
package schemafile

import (
	"bytes"
	"errors"
	"fmt"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/parametric"
	"github.com/reoring/parametric/source"
)

var (
	// ErrEmpty is returned when a file declares neither fields nor params.
	ErrEmpty = errors.New("schemafile: no fields or params declared")
	// ErrMixed is returned when a file declares both fields and params.
	ErrMixed = errors.New("schemafile: fields and params cannot be mixed")
	// ErrNoKey is returned for a declaration without a key.
	ErrNoKey = errors.New("schemafile: declaration without key")
)

// File is the decoded form of a declaration file.
type File struct {
	Fields []FieldDecl `yaml:"fields,omitempty" json:"fields,omitempty"`
	Params []ParamDecl `yaml:"params,omitempty" json:"params,omitempty"`
}

// FieldDecl declares one Field. Filters and validators are applied in the
// order listed, after type.
type FieldDecl struct {
	Key        string         `yaml:"key" json:"key"`
	Type       string         `yaml:"type,omitempty" json:"type,omitempty"`
	Filters    []string       `yaml:"filters,omitempty" json:"filters,omitempty"`
	Required   bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Present    bool           `yaml:"present,omitempty" json:"present,omitempty"`
	Validators []Call         `yaml:"validators,omitempty" json:"validators,omitempty"`
	Options    []any          `yaml:"options,omitempty" json:"options,omitempty"`
	Default    any            `yaml:"default,omitempty" json:"default,omitempty"`
	Meta       map[string]any `yaml:"meta,omitempty" json:"meta,omitempty"`
	Fields     []FieldDecl    `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Call names a registered validator with its arguments.
type Call struct {
	Name string `yaml:"name" json:"name"`
	Args []any  `yaml:"args,omitempty" json:"args,omitempty"`
}

// ParamDecl declares one Param.
type ParamDecl struct {
	Key       string      `yaml:"key" json:"key"`
	Label     string      `yaml:"label,omitempty" json:"label,omitempty"`
	Coerce    string      `yaml:"coerce,omitempty" json:"coerce,omitempty"`
	Multiple  bool        `yaml:"multiple,omitempty" json:"multiple,omitempty"`
	Separator string      `yaml:"separator,omitempty" json:"separator,omitempty"`
	Options   []any       `yaml:"options,omitempty" json:"options,omitempty"`
	Match     string      `yaml:"match,omitempty" json:"match,omitempty"`
	Default   any         `yaml:"default,omitempty" json:"default,omitempty"`
	Nullable  bool        `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Params    []ParamDecl `yaml:"params,omitempty" json:"params,omitempty"`
}

// Parse decodes a declaration file. JSON is detected by a leading '{';
// anything else is read as YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	if source.IsJSON(data) {
		dec := j.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("schemafile: decode JSON: %w", err)
		}
		return &f, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("schemafile: decode YAML: %w", err)
	}
	return &f, nil
}

// Mode reports which resolver the file declares: "fields" or "params".
func (f *File) Mode() (string, error) {
	switch {
	case len(f.Fields) > 0 && len(f.Params) > 0:
		return "", ErrMixed
	case len(f.Fields) > 0:
		return "fields", nil
	case len(f.Params) > 0:
		return "params", nil
	default:
		return "", ErrEmpty
	}
}

// Schema builds the declared fields against reg (parametric.Default() when
// nil).
func (f *File) Schema(reg *parametric.Registry, opts ...parametric.SchemaOption) (*parametric.Schema, error) {
	if len(f.Fields) == 0 {
		return nil, ErrEmpty
	}
	s := parametric.NewSchema(append([]parametric.SchemaOption{parametric.WithRegistry(reg)}, opts...)...)
	if err := declareFields(s, f.Fields); err != nil {
		return nil, err
	}
	return s.Build()
}

// BuildParams builds the declared params against reg (parametric.Default() when
// nil).
func (f *File) BuildParams(reg *parametric.Registry, opts ...parametric.SchemaOption) (*parametric.Params, error) {
	if len(f.Params) == 0 {
		return nil, ErrEmpty
	}
	p := parametric.NewParams(append([]parametric.SchemaOption{parametric.WithRegistry(reg)}, opts...)...)
	if err := declareParams(p, f.Params); err != nil {
		return nil, err
	}
	return p.Build()
}

// Resolver builds whichever resolver the file declares.
func (f *File) Resolver(reg *parametric.Registry, opts ...parametric.SchemaOption) (parametric.Resolver, error) {
	mode, err := f.Mode()
	if err != nil {
		return nil, err
	}
	if mode == "fields" {
		s, err := f.Schema(reg, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	p, err := f.BuildParams(reg, opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// LoadSchema parses data and builds its fields.
func LoadSchema(data []byte, reg *parametric.Registry, opts ...parametric.SchemaOption) (*parametric.Schema, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return f.Schema(reg, opts...)
}

// LoadParams parses data and builds its params.
func LoadParams(data []byte, reg *parametric.Registry, opts ...parametric.SchemaOption) (*parametric.Params, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return f.BuildParams(reg, opts...)
}

// Load parses data and builds whichever resolver it declares.
func Load(data []byte, reg *parametric.Registry, opts ...parametric.SchemaOption) (parametric.Resolver, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return f.Resolver(reg, opts...)
}

func declareFields(s *parametric.Schema, decls []FieldDecl) error {
	for i, d := range decls {
		if d.Key == "" {
			return fmt.Errorf("%w: fields[%d]", ErrNoKey, i)
		}
		fd := s.Field(d.Key)
		if d.Type != "" {
			fd.Type(d.Type)
		}
		for _, name := range d.Filters {
			fd.Filter(name)
		}
		if len(d.Fields) > 0 {
			var nestedErr error
			fd.Nested(func(n *parametric.Schema) { nestedErr = declareFields(n, d.Fields) })
			if nestedErr != nil {
				return fmt.Errorf("field %q: %w", d.Key, nestedErr)
			}
		}
		switch {
		case d.Present:
			fd.Present()
		case d.Required:
			fd.Required()
		}
		for _, c := range d.Validators {
			fd.Validate(c.Name, c.Args...)
		}
		if len(d.Options) > 0 {
			fd.Options(d.Options...)
		}
		if d.Default != nil {
			fd.Default(d.Default)
		}
		if len(d.Meta) > 0 {
			fd.Meta(d.Meta)
		}
	}
	return nil
}

func declareParams(p *parametric.Params, decls []ParamDecl) error {
	for i, d := range decls {
		if d.Key == "" {
			return fmt.Errorf("%w: params[%d]", ErrNoKey, i)
		}
		var opts []parametric.ParamOption
		if d.Coerce != "" {
			opts = append(opts, parametric.Coerce(d.Coerce))
		}
		if d.Multiple {
			opts = append(opts, parametric.Multiple(d.Separator))
		}
		if len(d.Options) > 0 {
			opts = append(opts, parametric.OneOf(d.Options...))
		}
		if d.Match != "" {
			opts = append(opts, parametric.Match(d.Match))
		}
		if d.Default != nil {
			opts = append(opts, parametric.DefaultTo(d.Default))
		}
		if d.Nullable {
			opts = append(opts, parametric.Nullable())
		}
		if len(d.Params) == 0 {
			p.Param(d.Key, d.Label, opts...)
			continue
		}
		var nestedErr error
		p.Nested(d.Key, d.Label, func(n *parametric.Params) { nestedErr = declareParams(n, d.Params) }, opts...)
		if nestedErr != nil {
			return fmt.Errorf("param %q: %w", d.Key, nestedErr)
		}
	}
	return nil
}

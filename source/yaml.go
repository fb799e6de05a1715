package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// DecodeYAML decodes the first YAML document in b. Mappings become
// map[string]any; duplicate keys are an error. An empty input decodes to nil.
func DecodeYAML(b []byte) (any, error) {
	v, err := NewYAMLReader(bytes.NewReader(b)).Next()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return v, err
}

// YAMLReader decodes a multi-document YAML stream through yaml.Node so that
// duplicate keys can be reported with positions.
type YAMLReader struct {
	dec *yaml.Decoder
}

// NewYAMLReader constructs a YAMLReader.
func NewYAMLReader(r io.Reader) *YAMLReader {
	return &YAMLReader{dec: yaml.NewDecoder(r)}
}

// Next returns the next document. It returns (nil, io.EOF) when the stream is
// exhausted.
func (y *YAMLReader) Next() (any, error) {
	var root yaml.Node
	if err := y.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("source: decode YAML: %w", err)
	}
	return newWalker().value(&root)
}

// ReadAll reads all documents from the stream.
func (y *YAMLReader) ReadAll() ([]any, error) {
	var out []any
	for {
		v, err := y.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// maxAliasNodes caps how many nodes alias expansion may materialize per
// document.
const maxAliasNodes = 10000

var (
	// ErrAliasCycle is returned for an alias that refers to one of its own
	// ancestors.
	ErrAliasCycle = errors.New("source: YAML alias cycle")
	// ErrAliasExpansion is returned when aliases expand past maxAliasNodes.
	ErrAliasExpansion = errors.New("source: YAML alias expansion limit exceeded")
)

// walker converts one document's nodes, tracking anchored nodes on the
// recursion stack and the nodes materialized through aliases.
type walker struct {
	active   map[*yaml.Node]bool
	depth    int
	expanded int
}

func newWalker() *walker {
	return &walker{active: map[*yaml.Node]bool{}}
}

func (w *walker) value(n *yaml.Node) (any, error) {
	if w.depth > 0 {
		w.expanded++
		if w.expanded > maxAliasNodes {
			return nil, ErrAliasExpansion
		}
	}
	if n.Anchor != "" {
		w.active[n] = true
		defer delete(w.active, n)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		if w.active[n.Alias] {
			return nil, fmt.Errorf("%w at %d:%d", ErrAliasCycle, n.Line, n.Column)
		}
		w.depth++
		v, err := w.value(n.Alias)
		w.depth--
		return v, err
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if pos, dup := first[k.Value]; dup {
				return nil, &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			val, err := w.value(v)
			if err != nil {
				return nil, err
			}
			m[k.Value] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.value(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarValue(n), nil
	default:
		return nil, nil
	}
}

// scalarValue keeps unparseable tagged scalars as their raw string.
func scalarValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return int(i)
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	}
	return n.Value
}

package parametric

import (
	"strconv"
	"strings"
)

// Path is the logical location of a value below the payload root. Segments
// are either string keys or int indices.
type Path []any

// Key returns a new path with a key segment appended.
func (p Path) Key(name string) Path { return p.with(name) }

// Index returns a new path with an index segment appended.
func (p Path) Index(i int) Path { return p.with(i) }

func (p Path) with(seg any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Pointer renders the path as a JSON Pointer. The root renders as "/".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		switch s := seg.(type) {
		case int:
			b.WriteString(strconv.Itoa(s))
		case string:
			// escape '~' -> '~0', '/' -> '~1' per RFC6901
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1"))
		}
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }

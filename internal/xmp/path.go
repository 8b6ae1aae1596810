package xmp

import (
	"fmt"
	"strings"

	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// step is one segment of a Path: either a namespace-qualified name or a
// 1-based array index.
type step struct {
	ns    string
	name  string
	index int
}

func (s step) isItem() bool { return s.index > 0 }

// Path addresses a node relative to a schema namespace.
//
// Paths are immutable values; composition always returns a new Path. Two
// paths are equal when their steps are equal, regardless of how they were
// built.
type Path struct {
	steps []step
}

// PropertyPath returns the path of a top-level property. Its namespace is
// supplied by the Meta call that uses the path.
func PropertyPath(name string) Path {
	return Path{steps: []step{{name: name}}}
}

// ComposeStructFieldPath returns the relative path of a struct field. Join
// it to the owner's path to address the field.
//
// The namespace is not checked here; an unregistered namespace makes the
// later engine call fail.
func ComposeStructFieldPath(fieldNS, fieldName string) Path {
	return Path{steps: []step{{ns: fieldNS, name: fieldName}}}
}

// ComposeArrayItemPath returns the path of the index-th (1-based) item of array.
func ComposeArrayItemPath(array Path, index int) (Path, error) {
	if array.IsZero() {
		return Path{}, &bookxmp.AddressingError{Index: index, Msg: "empty array path"}
	}
	if index < 1 {
		return Path{}, &bookxmp.AddressingError{
			Array: array.String(),
			Index: index,
			Msg:   "array indexes start at 1",
		}
	}
	return array.with(step{index: index}), nil
}

// Join appends suffix to p.
func (p Path) Join(suffix Path) Path {
	return p.with(suffix.steps...)
}

func (p Path) with(extra ...step) Path {
	steps := make([]step, 0, len(p.steps)+len(extra))
	steps = append(steps, p.steps...)
	steps = append(steps, extra...)
	return Path{steps: steps}
}

// IsZero reports whether p has no steps.
func (p Path) IsZero() bool { return len(p.steps) == 0 }

// Len returns the number of steps.
func (p Path) Len() int { return len(p.steps) }

// Parent returns p without its last step.
func (p Path) Parent() Path {
	if len(p.steps) <= 1 {
		return Path{}
	}
	return Path{steps: append([]step(nil), p.steps[:len(p.steps)-1]...)}
}

// Index returns the array index of the last step, or 0 when the last step
// is a name.
func (p Path) Index() int {
	if p.IsZero() {
		return 0
	}
	return p.steps[len(p.steps)-1].index
}

// Name returns the name of the last named step.
func (p Path) Name() string {
	for i := len(p.steps) - 1; i >= 0; i-- {
		if !p.steps[i].isItem() {
			return p.steps[i].name
		}
	}
	return ""
}

// Equal reports whether p and q address the same location.
func (p Path) Equal(q Path) bool {
	if len(p.steps) != len(q.steps) {
		return false
	}
	for i := range p.steps {
		if p.steps[i] != q.steps[i] {
			return false
		}
	}
	return true
}

// String renders p using the default registry.
func (p Path) String() string {
	return p.Render(DefaultRegistry())
}

// Render renders p in XMP path syntax, e.g. "Works[1]/work:Title".
// Namespaces missing from r are rendered as "{uri}name".
func (p Path) Render(r *Registry) string {
	var b strings.Builder
	for i, s := range p.steps {
		if s.isItem() {
			fmt.Fprintf(&b, "[%d]", s.index)
			continue
		}
		if i > 0 {
			b.WriteByte('/')
		}
		if s.ns != "" {
			if prefix, ok := r.Prefix(s.ns); ok {
				b.WriteString(prefix)
				b.WriteByte(':')
			} else {
				b.WriteString("{" + s.ns + "}")
			}
		}
		b.WriteString(s.name)
	}
	return b.String()
}

// validate checks p against the schema namespace ns and the registry.
func (p Path) validate(ns string, r *Registry) error {
	if ns == "" {
		return fmt.Errorf("%w: empty schema namespace", ErrBadPath)
	}
	if !r.IsRegistered(ns) {
		return fmt.Errorf("%w: %s", ErrUnregisteredNamespace, ns)
	}
	if p.IsZero() {
		return fmt.Errorf("%w: empty path", ErrBadPath)
	}
	if p.steps[0].isItem() {
		return fmt.Errorf("%w: path %s starts with an array index", ErrBadPath, p.Render(r))
	}
	if root := p.steps[0].ns; root != "" && root != ns {
		return fmt.Errorf("%w: path %s is rooted in %s, not %s", ErrBadPath, p.Render(r), root, ns)
	}
	for _, s := range p.steps {
		if s.isItem() {
			continue
		}
		if s.name == "" {
			return fmt.Errorf("%w: empty step name in %s", ErrBadPath, p.Render(r))
		}
		if s.ns != "" && !r.IsRegistered(s.ns) {
			return fmt.Errorf("%w: %s (in path %s)", ErrUnregisteredNamespace, s.ns, p.Render(r))
		}
	}
	return nil
}

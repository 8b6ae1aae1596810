package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/jisj/bookxmp/internal/xmp"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// Location is where a nested struct lives: the schema namespace that owns
// the top-level property, and the path from there to the struct.
type Location struct {
	SchemaNS string
	Path     xmp.Path
}

// Field returns the path of a field of the struct at l. At the schema root
// (a zero Path) a field is a top-level property of SchemaNS.
func (l Location) Field(fieldNS, name string) xmp.Path {
	if l.Path.IsZero() && fieldNS == l.SchemaNS {
		return xmp.PropertyPath(name)
	}
	return l.Path.Join(xmp.ComposeStructFieldPath(fieldNS, name))
}

func (l Location) String() string {
	return l.SchemaNS + " " + l.Path.String()
}

// Nested reads and writes the fields of a struct at a fixed Location. Field
// names are qualified with the accessor's own namespace.
type Nested struct {
	*Accessor
	loc Location
}

// NewNested registers ns and binds a nested accessor at loc.
func NewNested(tree Tree, ns, prefix string, loc Location) (*Nested, error) {
	acc, err := NewAccessor(tree, ns, prefix)
	if err != nil {
		return nil, err
	}
	return &Nested{Accessor: acc, loc: loc}, nil
}

// Location returns where the struct lives.
func (n *Nested) Location() Location { return n.loc }

// FieldPath returns the path of a field of this struct.
func (n *Nested) FieldPath(fieldNS, name string) xmp.Path {
	return n.loc.Field(fieldNS, name)
}

// SetField sets a simple field.
func (n *Nested) SetField(name, value string) error {
	return n.SetStructField(n.loc.SchemaNS, n.loc.Path, n.ns, name, value)
}

// Field returns a simple field.
func (n *Nested) Field(name string) (string, bool, error) {
	return n.StructField(n.loc.SchemaNS, n.loc.Path, n.ns, name)
}

// Text returns a simple field, or "" when it is absent.
func (n *Nested) Text(name string) (string, error) {
	v, _, err := n.Field(name)
	return v, err
}

// FieldExists reports whether the field exists.
func (n *Nested) FieldExists(name string) (bool, error) {
	return n.StructFieldExists(n.loc.SchemaNS, n.loc.Path, n.ns, name)
}

// DeclareField creates an empty field of the given form and returns its
// path. An existing field of the same form is left untouched.
func (n *Nested) DeclareField(fieldNS, name string, form xmp.Form) (xmp.Path, error) {
	p := n.loc.Field(fieldNS, name)
	if err := n.tree.DeclareProperty(n.loc.SchemaNS, p, form); err != nil {
		return xmp.Path{}, n.fail("declare field", n.loc.SchemaNS, p, err)
	}
	return p, nil
}

// ensureField declares a compound field unless it already exists.
func (n *Nested) ensureField(name string, form xmp.Form) (xmp.Path, error) {
	ok, err := n.FieldExists(name)
	if err != nil {
		return xmp.Path{}, err
	}
	if ok {
		return n.FieldPath(n.ns, name), nil
	}
	return n.DeclareField(n.ns, name, form)
}

// SetIdentifierField stores id in a field in its canonical string form.
func (n *Nested) SetIdentifierField(name string, id uuid.UUID) error {
	return n.SetField(name, id.String())
}

// IdentifierField returns an identifier field. Absent or empty fields are
// reported as absent.
func (n *Nested) IdentifierField(name string) (uuid.UUID, bool, error) {
	v, ok, err := n.Field(name)
	if err != nil || !ok || v == "" {
		return uuid.Nil, false, err
	}
	id, err := parseIdentifier(name, v)
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

// SetDateField stores the calendar date of t in a field.
func (n *Nested) SetDateField(name string, t time.Time) error {
	return n.SetField(name, t.Format(bookxmp.DateLayout))
}

// DateField returns a date field.
func (n *Nested) DateField(name string) (time.Time, bool, error) {
	v, ok, err := n.Field(name)
	if err != nil || !ok || v == "" {
		return time.Time{}, false, err
	}
	t, err := parseDate(name, v)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

package schema

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jisj/bookxmp/internal/xmp"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// Accessor reads and writes the properties of one namespace in a Tree.
//
// Accessors hold no state besides the binding; two accessors over the same
// tree and namespace are interchangeable.
type Accessor struct {
	tree Tree
	ns   string
}

// NewAccessor registers ns with the tree's registry and binds an accessor to
// it. Registering the same namespace again is harmless.
func NewAccessor(tree Tree, ns, prefix string) (*Accessor, error) {
	if _, err := tree.Registry().Register(ns, prefix); err != nil {
		return nil, &bookxmp.RegistryError{URI: ns, Prefix: prefix, Err: err}
	}
	return &Accessor{tree: tree, ns: ns}, nil
}

// Tree returns the bound tree.
func (a *Accessor) Tree() Tree { return a.tree }

// NS returns the accessor's own namespace.
func (a *Accessor) NS() string { return a.ns }

func (a *Accessor) fail(op, ns string, p xmp.Path, err error) error {
	return &bookxmp.AccessError{Op: op, Namespace: ns, Path: p.Render(a.tree.Registry()), Err: err}
}

func (a *Accessor) get(op, ns string, p xmp.Path) (string, bool, error) {
	prop, ok, err := a.tree.GetProperty(ns, p)
	if err != nil {
		return "", false, a.fail(op, ns, p, err)
	}
	return prop.Value, ok, nil
}

func (a *Accessor) set(op, ns string, p xmp.Path, value string) error {
	if err := a.tree.SetProperty(ns, p, value); err != nil {
		return a.fail(op, ns, p, err)
	}
	return nil
}

// SetProperty sets a top-level simple property.
func (a *Accessor) SetProperty(name, value string) error {
	return a.set("set property", a.ns, xmp.PropertyPath(name), value)
}

// Property returns a top-level simple property. An absent property yields
// ("", false, nil).
func (a *Accessor) Property(name string) (string, bool, error) {
	return a.get("get property", a.ns, xmp.PropertyPath(name))
}

// DeleteProperty removes a top-level property. Removing an absent property
// is a no-op.
func (a *Accessor) DeleteProperty(name string) error {
	p := xmp.PropertyPath(name)
	if err := a.tree.DeleteProperty(a.ns, p); err != nil {
		return a.fail("delete property", a.ns, p, err)
	}
	return nil
}

// SetIdentifier stores id in its canonical string form.
func (a *Accessor) SetIdentifier(name string, id uuid.UUID) error {
	return a.SetProperty(name, id.String())
}

// Identifier returns a stored identifier. An absent or empty property is
// reported as absent; a value that does not parse fails with
// bookxmp.ErrMalformedIdentifier.
func (a *Accessor) Identifier(name string) (uuid.UUID, bool, error) {
	v, ok, err := a.Property(name)
	if err != nil || !ok || v == "" {
		return uuid.Nil, false, err
	}
	id, err := parseIdentifier(name, v)
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, true, nil
}

// SetDate stores the calendar date of t.
func (a *Accessor) SetDate(name string, t time.Time) error {
	return a.SetProperty(name, t.Format(bookxmp.DateLayout))
}

// Date returns a stored date.
func (a *Accessor) Date(name string) (time.Time, bool, error) {
	v, ok, err := a.Property(name)
	if err != nil || !ok || v == "" {
		return time.Time{}, false, err
	}
	t, err := parseDate(name, v)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// SetStructField sets one simple field of the struct at owner in parentNS.
// A zero owner addresses a top-level property of parentNS.
func (a *Accessor) SetStructField(parentNS string, owner xmp.Path, fieldNS, fieldName, value string) error {
	return a.set("set struct field", parentNS, Location{SchemaNS: parentNS, Path: owner}.Field(fieldNS, fieldName), value)
}

// StructField returns one simple field of the struct at owner in parentNS.
func (a *Accessor) StructField(parentNS string, owner xmp.Path, fieldNS, fieldName string) (string, bool, error) {
	return a.get("get struct field", parentNS, Location{SchemaNS: parentNS, Path: owner}.Field(fieldNS, fieldName))
}

// StructFieldExists reports whether a field of the struct at owner exists.
func (a *Accessor) StructFieldExists(parentNS string, owner xmp.Path, fieldNS, fieldName string) (bool, error) {
	p := Location{SchemaNS: parentNS, Path: owner}.Field(fieldNS, fieldName)
	_, ok, err := a.tree.GetProperty(parentNS, p)
	if err != nil {
		return false, a.fail("check struct field", parentNS, p, err)
	}
	return ok, nil
}

// AppendArrayItem appends a simple item to the array at array, creating an
// ordered array when it is missing, and returns the new item's path.
func (a *Accessor) AppendArrayItem(ns string, array xmp.Path, value string) (xmp.Path, error) {
	return a.appendItem("append array item", ns, array, value, xmp.FormSimple)
}

// AppendArrayStructItem appends an empty struct to the array at array and
// returns the new item's path.
func (a *Accessor) AppendArrayStructItem(ns string, array xmp.Path) (xmp.Path, error) {
	return a.appendItem("append struct item", ns, array, "", xmp.FormStruct)
}

func (a *Accessor) appendItem(op, ns string, array xmp.Path, value string, itemForm xmp.Form) (xmp.Path, error) {
	if err := a.tree.AppendArrayItem(ns, array, xmp.FormSeq, value, itemForm); err != nil {
		return xmp.Path{}, a.fail(op, ns, array, err)
	}
	n, err := a.tree.CountArrayItems(ns, array)
	if err != nil {
		return xmp.Path{}, a.fail(op, ns, array, err)
	}
	return xmp.ComposeArrayItemPath(array, n)
}

// Array returns the values of the items of the array at array, in order. A
// missing array yields an empty slice.
func (a *Accessor) Array(ns string, array xmp.Path) ([]string, error) {
	items, err := a.tree.ArrayItems(ns, array)
	if err != nil {
		return nil, a.fail("get array", ns, array, err)
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out, nil
}

// ArrayOfStructs binds one element per item of the array at array, in array
// order, by calling factory with each item's path. Every call reads the
// current item count, so the result always reflects the tree at call time.
func ArrayOfStructs[E any](a *Accessor, ns string, array xmp.Path, factory func(xmp.Path) (E, error)) ([]E, error) {
	n, err := a.tree.CountArrayItems(ns, array)
	if err != nil {
		return nil, a.fail("count array items", ns, array, err)
	}
	out := make([]E, 0, n)
	for i := 1; i <= n; i++ {
		p, err := xmp.ComposeArrayItemPath(array, i)
		if err != nil {
			return nil, err
		}
		e, err := factory(p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// SetProperties sets several top-level simple properties in key order.
func (a *Accessor) SetProperties(props map[string]string) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := a.SetProperty(k, props[k]); err != nil {
			return err
		}
	}
	return nil
}

// Properties returns all top-level simple properties of the namespace.
func (a *Accessor) Properties() (map[string]string, error) {
	out := make(map[string]string)
	for _, name := range a.tree.PropertyNames(a.ns) {
		p := xmp.PropertyPath(name)
		prop, ok, err := a.tree.GetProperty(a.ns, p)
		if err != nil {
			return nil, a.fail("get property", a.ns, p, err)
		}
		if ok && prop.Form == xmp.FormSimple {
			out[name] = prop.Value
		}
	}
	return out, nil
}

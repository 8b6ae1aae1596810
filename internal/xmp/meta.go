package xmp

import (
	"fmt"
)

// node is one property in the tree. Struct fields and array items are both
// kept in children; array items have no name.
type node struct {
	ns       string
	name     string
	form     Form
	value    string
	lang     string
	children []*node
}

func (n *node) field(ns, name string) *node {
	for _, c := range n.children {
		if c.ns == ns && c.name == name {
			return c
		}
	}
	return nil
}

func (n *node) clone() *node {
	c := *n
	if n.children != nil {
		c.children = make([]*node, len(n.children))
		for i, ch := range n.children {
			c.children[i] = ch.clone()
		}
	}
	return &c
}

// Property is a read-only view of a node.
type Property struct {
	Value string
	Form  Form
	Lang  string
}

// Meta is an in-memory metadata tree.
//
// Meta is not safe for concurrent use; callers serialize mutations.
type Meta struct {
	reg     *Registry
	schemas []*node
}

// New creates an empty tree bound to the default registry.
func New() *Meta {
	return NewWithRegistry(DefaultRegistry())
}

// NewWithRegistry creates an empty tree bound to r.
func NewWithRegistry(r *Registry) *Meta {
	return &Meta{reg: r}
}

// Registry returns the namespace registry the tree resolves prefixes with.
func (m *Meta) Registry() *Registry {
	return m.reg
}

// Clone returns a deep copy of the tree sharing the same registry.
func (m *Meta) Clone() *Meta {
	c := &Meta{reg: m.reg, schemas: make([]*node, len(m.schemas))}
	for i, s := range m.schemas {
		c.schemas[i] = s.clone()
	}
	return c
}

// Namespaces returns the schema namespaces that hold at least one property,
// in creation order.
func (m *Meta) Namespaces() []string {
	var out []string
	for _, s := range m.schemas {
		if len(s.children) > 0 {
			out = append(out, s.ns)
		}
	}
	return out
}

// PropertyNames returns the names of the top-level properties of ns, in
// creation order.
func (m *Meta) PropertyNames(ns string) []string {
	s := m.schema(ns, false)
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.children))
	for _, c := range s.children {
		names = append(names, c.name)
	}
	return names
}

func (m *Meta) schema(ns string, create bool) *node {
	for _, s := range m.schemas {
		if s.ns == ns {
			return s
		}
	}
	if !create {
		return nil
	}
	s := &node{ns: ns, form: FormStruct}
	m.schemas = append(m.schemas, s)
	return s
}

// childOf resolves one step below cur. A nil node with a nil error means the
// step does not exist yet.
func childOf(cur *node, s step, fieldNS string) (*node, error) {
	if s.isItem() {
		if !cur.form.IsArray() {
			return nil, fmt.Errorf("%w: array index on %s node", ErrFormMismatch, cur.form)
		}
		if s.index > len(cur.children) {
			return nil, nil
		}
		return cur.children[s.index-1], nil
	}
	if cur.form != FormStruct {
		return nil, fmt.Errorf("%w: field %s on %s node", ErrFormMismatch, s.name, cur.form)
	}
	return cur.field(fieldNS, s.name), nil
}

func stepNS(ns string, i int, s step) string {
	if i == 0 && s.ns == "" {
		return ns
	}
	return s.ns
}

// lookup walks the existing nodes of p and returns the deepest node reached
// together with the number of steps consumed.
func (m *Meta) lookup(ns string, p Path) (*node, int, error) {
	if err := p.validate(ns, m.reg); err != nil {
		return nil, 0, err
	}
	cur := m.schema(ns, false)
	if cur == nil {
		return nil, 0, nil
	}
	for i, s := range p.steps {
		next, err := childOf(cur, s, stepNS(ns, i, s))
		if err != nil {
			return nil, i, err
		}
		if next == nil {
			return cur, i, nil
		}
		cur = next
	}
	return cur, len(p.steps), nil
}

// ensure returns the node at p, creating missing named steps. Intermediate
// nodes are created as structs and the last one with form leaf. Array items
// are never created implicitly.
func (m *Meta) ensure(ns string, p Path, leaf Form) (*node, error) {
	cur, depth, err := m.lookup(ns, p)
	if err != nil {
		return nil, err
	}
	if depth == len(p.steps) {
		return cur, nil
	}
	for _, s := range p.steps[depth:] {
		if s.isItem() {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchNode, p.Render(m.reg))
		}
	}

	if cur == nil {
		cur = m.schema(ns, true)
	}
	last := len(p.steps) - 1
	for i := depth; i <= last; i++ {
		s := p.steps[i]
		form := FormStruct
		if i == last {
			form = leaf
		}
		n := &node{ns: stepNS(ns, i, s), name: s.name, form: form}
		cur.children = append(cur.children, n)
		cur = n
	}
	return cur, nil
}

// SetProperty sets the simple value at p, creating it and any missing
// enclosing structs.
func (m *Meta) SetProperty(ns string, p Path, value string) error {
	if err := checkText(value); err != nil {
		return err
	}
	n, err := m.ensure(ns, p, FormSimple)
	if err != nil {
		return err
	}
	if n.form != FormSimple {
		return fmt.Errorf("%w: %s is a %s, not a simple value", ErrFormMismatch, p.Render(m.reg), n.form)
	}
	n.value = value
	return nil
}

// SetPropertyLang sets the xml:lang qualifier of the simple value at p.
func (m *Meta) SetPropertyLang(ns string, p Path, lang string) error {
	if err := checkText(lang); err != nil {
		return err
	}
	n, depth, err := m.lookup(ns, p)
	if err != nil {
		return err
	}
	if depth < len(p.steps) {
		return fmt.Errorf("%w: %s", ErrNoSuchNode, p.Render(m.reg))
	}
	if n.form != FormSimple {
		return fmt.Errorf("%w: only simple values carry xml:lang", ErrFormMismatch)
	}
	n.lang = lang
	return nil
}

// DeclareProperty creates an empty node of the given form at p. Declaring an
// existing node of the same form is a no-op and keeps its content.
func (m *Meta) DeclareProperty(ns string, p Path, form Form) error {
	n, err := m.ensure(ns, p, form)
	if err != nil {
		return err
	}
	if n.form != form {
		return fmt.Errorf("%w: %s is a %s, not a %s", ErrFormMismatch, p.Render(m.reg), n.form, form)
	}
	return nil
}

// GetProperty returns the node at p. The boolean is false when p does not
// exist.
func (m *Meta) GetProperty(ns string, p Path) (Property, bool, error) {
	n, depth, err := m.lookup(ns, p)
	if err != nil {
		return Property{}, false, err
	}
	if n == nil || depth < len(p.steps) {
		return Property{}, false, nil
	}
	return Property{Value: n.value, Form: n.form, Lang: n.lang}, true, nil
}

// DoesPropertyExist reports whether p exists. Invalid paths do not exist.
func (m *Meta) DoesPropertyExist(ns string, p Path) bool {
	_, ok, err := m.GetProperty(ns, p)
	return err == nil && ok
}

// DeleteProperty removes the node at p. Deleting a missing node is a no-op.
func (m *Meta) DeleteProperty(ns string, p Path) error {
	n, depth, err := m.lookup(ns, p)
	if err != nil {
		return err
	}
	if n == nil || depth < len(p.steps) {
		return nil
	}
	var parent *node
	if p.Len() == 1 {
		parent = m.schema(ns, false)
	} else if parent, _, err = m.lookup(ns, p.Parent()); err != nil {
		return err
	}
	for i, c := range parent.children {
		if c == n {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	return nil
}

// SetStructField sets a simple field of the struct at structPath.
func (m *Meta) SetStructField(schemaNS string, structPath Path, fieldNS, fieldName, value string) error {
	return m.SetProperty(schemaNS, structPath.Join(ComposeStructFieldPath(fieldNS, fieldName)), value)
}

// GetStructField returns a field of the struct at structPath.
func (m *Meta) GetStructField(schemaNS string, structPath Path, fieldNS, fieldName string) (Property, bool, error) {
	return m.GetProperty(schemaNS, structPath.Join(ComposeStructFieldPath(fieldNS, fieldName)))
}

// DoesStructFieldExist reports whether a field of the struct at structPath exists.
func (m *Meta) DoesStructFieldExist(schemaNS string, structPath Path, fieldNS, fieldName string) bool {
	return m.DoesPropertyExist(schemaNS, structPath.Join(ComposeStructFieldPath(fieldNS, fieldName)))
}

// AppendArrayItem appends an item to the array at array. A missing array is
// created with arrayForm, which must then be an array form. Compound items
// must be appended with an empty value.
func (m *Meta) AppendArrayItem(ns string, array Path, arrayForm Form, value string, itemForm Form) error {
	if itemForm != FormSimple && value != "" {
		return fmt.Errorf("%w: %s items cannot carry a value", ErrFormMismatch, itemForm)
	}
	if err := checkText(value); err != nil {
		return err
	}
	n, depth, err := m.lookup(ns, array)
	if err != nil {
		return err
	}
	if n == nil || depth < len(array.steps) {
		if !arrayForm.IsArray() {
			return fmt.Errorf("%w: array %s does not exist", ErrNoSuchNode, array.Render(m.reg))
		}
		if n, err = m.ensure(ns, array, arrayForm); err != nil {
			return err
		}
	}
	if !n.form.IsArray() {
		return fmt.Errorf("%w: %s is a %s, not an array", ErrFormMismatch, array.Render(m.reg), n.form)
	}
	n.children = append(n.children, &node{form: itemForm, value: value})
	return nil
}

// CountArrayItems returns the number of items of the array at array, or 0
// when it does not exist.
func (m *Meta) CountArrayItems(ns string, array Path) (int, error) {
	n, err := m.existingArray(ns, array)
	if err != nil || n == nil {
		return 0, err
	}
	return len(n.children), nil
}

// ArrayItems returns the items of the array at array in order. A missing
// array yields an empty slice.
func (m *Meta) ArrayItems(ns string, array Path) ([]Property, error) {
	n, err := m.existingArray(ns, array)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return []Property{}, nil
	}
	items := make([]Property, 0, len(n.children))
	for _, c := range n.children {
		items = append(items, Property{Value: c.value, Form: c.form, Lang: c.lang})
	}
	return items, nil
}

func (m *Meta) existingArray(ns string, array Path) (*node, error) {
	n, depth, err := m.lookup(ns, array)
	if err != nil {
		return nil, err
	}
	if n == nil || depth < len(array.steps) {
		return nil, nil
	}
	if !n.form.IsArray() {
		return nil, fmt.Errorf("%w: %s is a %s, not an array", ErrFormMismatch, array.Render(m.reg), n.form)
	}
	return n, nil
}

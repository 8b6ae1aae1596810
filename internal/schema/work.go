package schema

// Work is one item of a book's Works array. It has the same fields as a
// Book, except nested works, stored as fields of the item struct.
type Work struct {
	record
}

// NewWork binds a work at loc, normally an item of the book's Works array.
// Works always live in the book schema; loc.SchemaNS is not consulted.
func NewWork(tree Tree, loc Location) (*Work, error) {
	acc, err := NewAccessor(tree, WorkNS, WorkPrefix)
	if err != nil {
		return nil, err
	}
	return &Work{record: newRecord(acc, loc.Path)}, nil
}

// Location returns the Works item the work is bound to.
func (w *Work) Location() Location { return w.fields.Location() }

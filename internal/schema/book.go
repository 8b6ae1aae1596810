package schema

import (
	"github.com/jisj/bookxmp/internal/xmp"
)

// Book is the root schema of a book's metadata. Its fields are top-level
// properties of the book namespace.
//
// A Book is a view over the tree: it holds no data of its own, and two
// Books over the same tree see the same values.
type Book struct {
	record
}

// NewBook registers the book namespace and binds a Book to tree.
func NewBook(tree Tree) (*Book, error) {
	acc, err := NewAccessor(tree, BookNS, BookPrefix)
	if err != nil {
		return nil, err
	}
	return &Book{record: newRecord(acc, xmp.Path{})}, nil
}

// Accessor returns the accessor of the book namespace.
func (b *Book) Accessor() *Accessor { return b.acc }

// AddWork appends an empty work and returns it.
func (b *Book) AddWork() (*Work, error) {
	p, err := b.fields.ensureField(WorksField, xmp.FormSeq)
	if err != nil {
		return nil, err
	}
	item, err := b.acc.AppendArrayStructItem(BookNS, p)
	if err != nil {
		return nil, err
	}
	return NewWork(b.acc.tree, Location{SchemaNS: BookNS, Path: item})
}

// Works returns the works in the order they were added.
func (b *Book) Works() ([]*Work, error) {
	return ArrayOfStructs(b.acc, BookNS, b.path(WorksField), func(p xmp.Path) (*Work, error) {
		return NewWork(b.acc.tree, Location{SchemaNS: BookNS, Path: p})
	})
}

// SetProperties sets custom top-level properties of the book namespace.
func (b *Book) SetProperties(props map[string]string) error {
	return b.acc.SetProperties(props)
}

// Properties returns every simple top-level property of the book namespace,
// including the identifier and creation date.
func (b *Book) Properties() (map[string]string, error) {
	return b.acc.Properties()
}

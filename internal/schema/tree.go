package schema

import "github.com/jisj/bookxmp/internal/xmp"

// Namespaces of the book schemas.
const (
	BookNS   = "http://www.jisj.com/ns/book/"
	WorkNS   = "http://www.jisj.com/ns/book/work"
	AuthorNS = "http://www.jisj.com/ns/book/author"
	MusicNS  = "http://www.jisj.com/ns/book/musicsheets"
	TextNS   = "http://www.jisj.com/ns/book/localizedtext"
)

// Preferred prefixes of the book schemas.
const (
	BookPrefix   = "book"
	WorkPrefix   = "work"
	AuthorPrefix = "author"
	MusicPrefix  = "sheets"
	TextPrefix   = "text"
)

// Tree is the property-tree engine the schemas read and write.
type Tree interface {
	Registry() *xmp.Registry
	SetProperty(ns string, p xmp.Path, value string) error
	GetProperty(ns string, p xmp.Path) (xmp.Property, bool, error)
	DeclareProperty(ns string, p xmp.Path, form xmp.Form) error
	DeleteProperty(ns string, p xmp.Path) error
	PropertyNames(ns string) []string
	AppendArrayItem(ns string, array xmp.Path, arrayForm xmp.Form, value string, itemForm xmp.Form) error
	CountArrayItems(ns string, array xmp.Path) (int, error)
	ArrayItems(ns string, array xmp.Path) ([]xmp.Property, error)
}

var _ Tree = (*xmp.Meta)(nil)

package schema

import (
	"github.com/google/uuid"
)

// Field names of Author.
const (
	NameField     = "Name"
	NameLangField = "lang"
)

// Author is one item of an ordered author list.
type Author struct {
	n *Nested
}

// NewAuthor binds an author at loc, normally an item of an Authors array.
func NewAuthor(tree Tree, loc Location) (*Author, error) {
	n, err := NewNested(tree, AuthorNS, AuthorPrefix, loc)
	if err != nil {
		return nil, err
	}
	return &Author{n: n}, nil
}

// Location returns where the author struct lives.
func (a *Author) Location() Location { return a.n.Location() }

// Name returns the author name, or "" when unset.
func (a *Author) Name() (string, error) { return a.n.Text(NameField) }

// Lang returns the language of the name, or "" when unset.
func (a *Author) Lang() (string, error) { return a.n.Text(NameLangField) }

// SetName writes the name, keeping any language already set.
func (a *Author) SetName(name string) error { return a.n.SetField(NameField, name) }

// SetLocalizedName writes the name together with its language.
func (a *Author) SetLocalizedName(name, lang string) error {
	if err := a.n.SetField(NameField, name); err != nil {
		return err
	}
	return a.n.SetField(NameLangField, lang)
}

// Identifier returns the author's library identifier, if any.
func (a *Author) Identifier() (uuid.UUID, bool, error) {
	return a.n.IdentifierField(IdentifierField)
}

// SetIdentifier stores the author's library identifier. The nil UUID means
// "no identifier" and is skipped.
func (a *Author) SetIdentifier(id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return a.n.SetIdentifierField(IdentifierField, id)
}

package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/jisj/bookxmp/internal/xmp"
)

// Field names shared by Book and Work.
const (
	TitleField       = "Title"
	IdentifierField  = "GUID"
	DateCreatedField = "DateCreated"
	GenresField      = "Genres"
	AuthorsField     = "Authors"
	MusicField       = "MusicSheets"
	WorksField       = "Works"
)

// record holds the fields a Book and a Work have in common. Book fields are
// top-level properties of the book namespace; Work fields are struct fields
// of one item of the book's Works array. Both live in the book schema.
type record struct {
	acc    *Accessor
	fields *Nested
}

// newRecord binds a record to the struct at owner in the book schema. A zero
// owner binds the book itself.
func newRecord(acc *Accessor, owner xmp.Path) record {
	return record{acc: acc, fields: &Nested{Accessor: acc, loc: Location{SchemaNS: BookNS, Path: owner}}}
}

func (r record) path(name string) xmp.Path {
	return r.fields.FieldPath(r.acc.ns, name)
}

func (r record) location(name string) Location {
	return Location{SchemaNS: BookNS, Path: r.path(name)}
}

// Title returns the title text, or "" when unset. A title stored as a plain
// string by other tools is read as is.
func (r record) Title() (string, error) {
	p := r.path(TitleField)
	prop, ok, err := r.acc.tree.GetProperty(BookNS, p)
	if err != nil {
		return "", r.acc.fail("get title", BookNS, p, err)
	}
	if !ok {
		return "", nil
	}
	if prop.Form == xmp.FormSimple {
		return prop.Value, nil
	}
	t, err := r.LocalizedTitle()
	if err != nil {
		return "", err
	}
	return t.Content()
}

// LocalizedTitle binds the title as a LocalizedText.
func (r record) LocalizedTitle() (*LocalizedText, error) {
	return NewLocalizedText(r.acc.tree, r.location(TitleField))
}

// TitleLang returns the language of the title, or "" when the title is unset
// or stored as a plain string.
func (r record) TitleLang() (string, error) {
	p := r.path(TitleField)
	prop, ok, err := r.acc.tree.GetProperty(BookNS, p)
	if err != nil {
		return "", r.acc.fail("get title", BookNS, p, err)
	}
	if !ok || prop.Form != xmp.FormStruct {
		return "", nil
	}
	t, err := r.LocalizedTitle()
	if err != nil {
		return "", err
	}
	return t.Lang()
}

// SetTitle sets the title text, keeping any language already set.
func (r record) SetTitle(title string) error {
	t, err := r.titleStruct()
	if err != nil {
		return err
	}
	return t.SetContent(title)
}

// SetLocalizedTitle sets the title text together with its language.
func (r record) SetLocalizedTitle(title, lang string) error {
	t, err := r.titleStruct()
	if err != nil {
		return err
	}
	return t.Set(title, lang)
}

func (r record) titleStruct() (*LocalizedText, error) {
	p := r.path(TitleField)
	prop, ok, err := r.acc.tree.GetProperty(BookNS, p)
	if err != nil {
		return nil, r.acc.fail("get title", BookNS, p, err)
	}
	if ok && prop.Form == xmp.FormSimple {
		// plain title written by another tool; replace it with the struct form
		if err := r.acc.tree.DeleteProperty(BookNS, p); err != nil {
			return nil, r.acc.fail("replace title", BookNS, p, err)
		}
	}
	if _, err := r.fields.ensureField(TitleField, xmp.FormStruct); err != nil {
		return nil, err
	}
	return r.LocalizedTitle()
}

// Identifier returns the library identifier, if any.
func (r record) Identifier() (uuid.UUID, bool, error) {
	return r.fields.IdentifierField(IdentifierField)
}

// SetIdentifier stores the library identifier. The nil UUID is rejected with
// bookxmp.ErrNilIdentifier.
func (r record) SetIdentifier(id uuid.UUID) error {
	if err := requireIdentifier(IdentifierField, id); err != nil {
		return err
	}
	return r.fields.SetIdentifierField(IdentifierField, id)
}

// DateCreated returns the creation date, if any.
func (r record) DateCreated() (time.Time, bool, error) {
	return r.fields.DateField(DateCreatedField)
}

// SetDateCreated stores the calendar date of t as the creation date.
func (r record) SetDateCreated(t time.Time) error {
	return r.fields.SetDateField(DateCreatedField, t)
}

// AddGenre appends a genre.
func (r record) AddGenre(genre string) error {
	p, err := r.fields.ensureField(GenresField, xmp.FormSeq)
	if err != nil {
		return err
	}
	_, err = r.acc.AppendArrayItem(BookNS, p, genre)
	return err
}

// Genres returns the genres in the order they were added.
func (r record) Genres() ([]string, error) {
	return r.acc.Array(BookNS, r.path(GenresField))
}

// AddAuthor appends an author. A nil id adds the author without identifier.
func (r record) AddAuthor(name string, id uuid.UUID) (*Author, error) {
	p, err := r.fields.ensureField(AuthorsField, xmp.FormSeq)
	if err != nil {
		return nil, err
	}
	item, err := r.acc.AppendArrayStructItem(BookNS, p)
	if err != nil {
		return nil, err
	}
	a, err := NewAuthor(r.acc.tree, Location{SchemaNS: BookNS, Path: item})
	if err != nil {
		return nil, err
	}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	if err := a.SetIdentifier(id); err != nil {
		return nil, err
	}
	return a, nil
}

// Authors returns the authors in the order they were added.
func (r record) Authors() ([]*Author, error) {
	return ArrayOfStructs(r.acc, BookNS, r.path(AuthorsField), func(p xmp.Path) (*Author, error) {
		return NewAuthor(r.acc.tree, Location{SchemaNS: BookNS, Path: p})
	})
}

// SetMusic writes the music-sheet attributes.
func (r record) SetMusic(v MusicValues) error {
	if _, err := r.fields.ensureField(MusicField, xmp.FormStruct); err != nil {
		return err
	}
	m, err := r.Music()
	if err != nil {
		return err
	}
	return m.Set(v)
}

// Music binds the music-sheet attributes. They read as empty when unset.
func (r record) Music() (*MusicAttributes, error) {
	return NewMusicAttributes(r.acc.tree, r.location(MusicField))
}

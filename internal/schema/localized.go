package schema

// Field names of LocalizedText.
const (
	LangField    = "lang"
	ContentField = "content"
)

// LocalizedText is a (language, content) pair stored as a struct field of
// its owner, e.g. a title with its language.
type LocalizedText struct {
	n *Nested
}

// NewLocalizedText binds a localized text at loc.
func NewLocalizedText(tree Tree, loc Location) (*LocalizedText, error) {
	n, err := NewNested(tree, TextNS, TextPrefix, loc)
	if err != nil {
		return nil, err
	}
	return &LocalizedText{n: n}, nil
}

// Location returns where the text struct lives.
func (t *LocalizedText) Location() Location { return t.n.Location() }

// Lang returns the language tag, or "" when unset.
func (t *LocalizedText) Lang() (string, error) { return t.n.Text(LangField) }

// Content returns the text, or "" when unset.
func (t *LocalizedText) Content() (string, error) { return t.n.Text(ContentField) }

// SetLang writes the language tag.
func (t *LocalizedText) SetLang(lang string) error { return t.n.SetField(LangField, lang) }

// SetContent writes the text, keeping the language.
func (t *LocalizedText) SetContent(content string) error { return t.n.SetField(ContentField, content) }

// Set writes both the language and the content.
func (t *LocalizedText) Set(content, lang string) error {
	if err := t.n.SetField(LangField, lang); err != nil {
		return err
	}
	return t.n.SetField(ContentField, content)
}

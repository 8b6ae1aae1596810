package schema

import (
	"fmt"
)

// Field names of MusicAttributes.
const (
	KeyField           = "Key"
	InstrumentsField   = "Instruments"
	CatalogNumberField = "CatalogNumber"
	ArrangedByField    = "Transcription"
)

// MusicValues is a snapshot of the music-sheet attributes of a book or work.
type MusicValues struct {
	Key           string // tonality, e.g. "F-dur"
	Instruments   string // comma or semicolon separated
	CatalogNumber string // composer catalog number, e.g. "BWV 1007"
	ArrangedBy    string // transcription or arrangement author
}

// ToMap returns the values keyed by their field names.
func (v MusicValues) ToMap() map[string]string {
	return map[string]string{
		KeyField:           v.Key,
		InstrumentsField:   v.Instruments,
		CatalogNumberField: v.CatalogNumber,
		ArrangedByField:    v.ArrangedBy,
	}
}

func (v MusicValues) String() string {
	return fmt.Sprintf("MusicSheets{%s=%s,%s=%s,%s=%s,%s=%s}",
		KeyField, v.Key,
		InstrumentsField, v.Instruments,
		CatalogNumberField, v.CatalogNumber,
		ArrangedByField, v.ArrangedBy)
}

// IsZero reports whether no attribute is set.
func (v MusicValues) IsZero() bool {
	return v == MusicValues{}
}

// MusicAttributes is the music-sheet attribute block of a book or work.
// Unset attributes read as "".
type MusicAttributes struct {
	n *Nested
}

// NewMusicAttributes binds a music attribute block at loc.
func NewMusicAttributes(tree Tree, loc Location) (*MusicAttributes, error) {
	n, err := NewNested(tree, MusicNS, MusicPrefix, loc)
	if err != nil {
		return nil, err
	}
	return &MusicAttributes{n: n}, nil
}

// Location returns where the attribute block lives.
func (m *MusicAttributes) Location() Location { return m.n.Location() }

// Key returns the tonality, or "" when unset.
func (m *MusicAttributes) Key() (string, error) { return m.n.Text(KeyField) }

// Instruments returns the delimited instrument list, or "" when unset.
func (m *MusicAttributes) Instruments() (string, error) { return m.n.Text(InstrumentsField) }

// CatalogNumber returns the composer catalog number, or "" when unset.
func (m *MusicAttributes) CatalogNumber() (string, error) { return m.n.Text(CatalogNumberField) }

// ArrangedBy returns the arranger, or "" when unset.
func (m *MusicAttributes) ArrangedBy() (string, error) { return m.n.Text(ArrangedByField) }

// SetKey writes the tonality.
func (m *MusicAttributes) SetKey(v string) error { return m.n.SetField(KeyField, v) }

// SetInstruments writes the instrument list as one string.
func (m *MusicAttributes) SetInstruments(v string) error { return m.n.SetField(InstrumentsField, v) }

// SetCatalogNumber writes the catalog number.
func (m *MusicAttributes) SetCatalogNumber(v string) error { return m.n.SetField(CatalogNumberField, v) }

// SetArrangedBy writes the arranger.
func (m *MusicAttributes) SetArrangedBy(v string) error { return m.n.SetField(ArrangedByField, v) }

// Set writes all four attributes.
func (m *MusicAttributes) Set(v MusicValues) error {
	for _, f := range []struct{ name, value string }{
		{KeyField, v.Key},
		{InstrumentsField, v.Instruments},
		{CatalogNumberField, v.CatalogNumber},
		{ArrangedByField, v.ArrangedBy},
	} {
		if err := m.n.SetField(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Values reads all four attributes.
func (m *MusicAttributes) Values() (MusicValues, error) {
	var v MusicValues
	var err error
	if v.Key, err = m.Key(); err != nil {
		return MusicValues{}, err
	}
	if v.Instruments, err = m.Instruments(); err != nil {
		return MusicValues{}, err
	}
	if v.CatalogNumber, err = m.CatalogNumber(); err != nil {
		return MusicValues{}, err
	}
	if v.ArrangedBy, err = m.ArrangedBy(); err != nil {
		return MusicValues{}, err
	}
	return v, nil
}

package schema

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jisj/bookxmp/internal/xmp"
)

func TestMusicValues_ToMapAndString(t *testing.T) {
	v := MusicValues{Key: "d-moll", Instruments: "cello", CatalogNumber: "BWV 1008", ArrangedBy: "A. Wenzinger"}

	assert.Equal(t, map[string]string{
		"Key":           "d-moll",
		"Instruments":   "cello",
		"CatalogNumber": "BWV 1008",
		"Transcription": "A. Wenzinger",
	}, v.ToMap())
	assert.Equal(t, "MusicSheets{Key=d-moll,Instruments=cello,CatalogNumber=BWV 1008,Transcription=A. Wenzinger}", v.String())
	assert.False(t, v.IsZero())
	assert.True(t, MusicValues{}.IsZero())
}

func TestMusicAttributes_IndependentFields(t *testing.T) {
	tree := newTree()
	m, err := NewMusicAttributes(tree, Location{SchemaNS: BookNS, Path: xmp.PropertyPath(MusicField)})
	require.NoError(t, err)

	require.NoError(t, m.SetCatalogNumber("BWV 1007"))

	key, err := m.Key()
	require.NoError(t, err)
	assert.Equal(t, "", key)

	v, err := m.Values()
	require.NoError(t, err)
	assert.Equal(t, MusicValues{CatalogNumber: "BWV 1007"}, v)

	require.NoError(t, m.SetKey("G-dur"))
	require.NoError(t, m.SetInstruments("cello"))
	require.NoError(t, m.SetArrangedBy("nobody"))
	v, err = m.Values()
	require.NoError(t, err)
	assert.Equal(t, MusicValues{Key: "G-dur", Instruments: "cello", CatalogNumber: "BWV 1007", ArrangedBy: "nobody"}, v)
}

func TestAuthor_LocalizedName(t *testing.T) {
	book := newBook(t, newTree())

	a, err := book.AddAuthor("Сергей Рахманинов", uuid.Nil)
	require.NoError(t, err)
	require.NoError(t, a.SetLocalizedName("Сергей Рахманинов", "ru"))

	authors, err := book.Authors()
	require.NoError(t, err)
	require.Len(t, authors, 1)

	lang, err := authors[0].Lang()
	require.NoError(t, err)
	assert.Equal(t, "ru", lang)
	assert.True(t, authors[0].Location().Path.Equal(a.Location().Path))
}

func TestLocalizedText_Standalone(t *testing.T) {
	tree := newTree()
	_, err := NewAccessor(tree, BookNS, BookPrefix)
	require.NoError(t, err)

	lt, err := NewLocalizedText(tree, Location{SchemaNS: BookNS, Path: xmp.PropertyPath("Subtitle")})
	require.NoError(t, err)
	require.NoError(t, lt.SetLang("en"))
	require.NoError(t, lt.SetContent("A Tone Poem"))

	content, err := lt.Content()
	require.NoError(t, err)
	assert.Equal(t, "A Tone Poem", content)
	assert.Equal(t, "Subtitle", lt.Location().Path.Name())
}

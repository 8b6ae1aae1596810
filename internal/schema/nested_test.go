package schema

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jisj/bookxmp/internal/xmp"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

func newNested(t *testing.T, tree Tree) *Nested {
	t.Helper()
	n, err := NewNested(tree, MusicNS, MusicPrefix, Location{SchemaNS: BookNS, Path: xmp.PropertyPath(MusicField)})
	require.NoError(t, err)
	return n
}

func TestNested_Fields(t *testing.T) {
	n := newNested(t, newTree())

	ok, err := n.FieldExists(KeyField)
	require.NoError(t, err)
	assert.False(t, ok)

	text, err := n.Text(KeyField)
	require.NoError(t, err)
	assert.Equal(t, "", text)

	require.NoError(t, n.SetField(KeyField, "F-dur"))

	ok, err = n.FieldExists(KeyField)
	require.NoError(t, err)
	assert.True(t, ok)

	v, ok, err := n.Field(KeyField)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "F-dur", v)
}

func TestNested_FieldPath(t *testing.T) {
	n := newNested(t, newTree())

	want := xmp.PropertyPath(MusicField).Join(xmp.ComposeStructFieldPath(MusicNS, KeyField))
	assert.True(t, n.FieldPath(MusicNS, KeyField).Equal(want))
	assert.True(t, n.Location().Field(MusicNS, KeyField).Equal(want))
}

func TestNested_DeclareField(t *testing.T) {
	tree := newTree()
	n := newNested(t, tree)

	forms := []xmp.Form{xmp.FormSimple, xmp.FormStruct, xmp.FormBag, xmp.FormSeq, xmp.FormAlt}
	for _, form := range forms {
		t.Run(form.String(), func(t *testing.T) {
			name := "Declared_" + form.String()
			p, err := n.DeclareField(MusicNS, name, form)
			require.NoError(t, err)

			prop, ok, err := tree.GetProperty(BookNS, p)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, form, prop.Form)
			assert.Equal(t, "", prop.Value)
		})
	}
}

func TestNested_DeclareField_KeepsContent(t *testing.T) {
	tree := newTree()
	n := newNested(t, tree)

	p, err := n.DeclareField(MusicNS, "Parts", xmp.FormSeq)
	require.NoError(t, err)
	_, err = n.AppendArrayItem(BookNS, p, "violin")
	require.NoError(t, err)

	again, err := n.DeclareField(MusicNS, "Parts", xmp.FormSeq)
	require.NoError(t, err)
	assert.True(t, again.Equal(p))

	items, err := n.Array(BookNS, p)
	require.NoError(t, err)
	assert.Equal(t, []string{"violin"}, items)

	_, err = n.DeclareField(MusicNS, "Parts", xmp.FormStruct)
	assert.ErrorIs(t, err, bookxmp.ErrMetadataAccess)
	assert.ErrorIs(t, err, xmp.ErrFormMismatch)
}

func TestNested_IdentifierField(t *testing.T) {
	n := newNested(t, newTree())
	id := uuid.New()

	_, ok, err := n.IdentifierField(IdentifierField)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, n.SetIdentifierField(IdentifierField, id))
	got, ok, err := n.IdentifierField(IdentifierField)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	require.NoError(t, n.SetField(IdentifierField, "garbage"))
	_, _, err = n.IdentifierField(IdentifierField)
	assert.ErrorIs(t, err, bookxmp.ErrMalformedIdentifier)
}

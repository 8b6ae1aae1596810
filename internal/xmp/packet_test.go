package xmp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleMeta(t *testing.T) *Meta {
	t.Helper()
	m := newTestMeta(t)

	require.NoError(t, m.SetProperty(testNS, PropertyPath("Title"), `Rhapsody <in> "Blue" & more`))
	require.NoError(t, m.SetPropertyLang(testNS, PropertyPath("Title"), "en-US"))
	require.NoError(t, m.SetProperty(testNS, PropertyPath("Empty"), ""))
	require.NoError(t, m.DeclareProperty(testNS, PropertyPath("NoGenres"), FormSeq))
	require.NoError(t, m.DeclareProperty(testNS, PropertyPath("NoMusic"), FormStruct))

	for _, g := range []string{"Jazz", "Classical"} {
		require.NoError(t, m.AppendArrayItem(testNS, PropertyPath("Genres"), FormBag, g, FormSimple))
	}

	authors := PropertyPath("Authors")
	require.NoError(t, m.AppendArrayItem(testNS, authors, FormSeq, "", FormStruct))
	first, err := ComposeArrayItemPath(authors, 1)
	require.NoError(t, err)
	require.NoError(t, m.SetStructField(testNS, first, testNS, "Name", "George Gershwin"))
	require.NoError(t, m.SetStructField(testNS, first, NSDC, "role", "composer"))

	require.NoError(t, m.SetProperty(NSDC, PropertyPath("format"), "application/pdf"))
	return m
}

func TestSerialize_RoundTrip(t *testing.T) {
	m := buildSampleMeta(t)

	packet, err := Serialize(m)
	require.NoError(t, err)

	s := string(packet)
	assert.True(t, strings.HasPrefix(s, "<?xpacket begin="))
	assert.True(t, strings.HasSuffix(s, `<?xpacket end="w"?>`))
	assert.Contains(t, s, `xmlns:test="`+testNS+`"`)
	assert.Contains(t, s, "&lt;in&gt;")

	parsed, err := ParseWithRegistry(packet, m.Registry())
	require.NoError(t, err)
	assert.Equal(t, m.Dump(), parsed.Dump())

	again, err := Serialize(parsed)
	require.NoError(t, err)
	assert.Equal(t, string(packet), string(again))
}

func TestSerialize_SkipsEmptySchemas(t *testing.T) {
	m := newTestMeta(t)
	require.NoError(t, m.SetProperty(testNS, PropertyPath("Title"), "x"))
	require.NoError(t, m.DeleteProperty(testNS, PropertyPath("Title")))

	packet, err := Serialize(m)
	require.NoError(t, err)
	assert.NotContains(t, string(packet), "rdf:Description")

	parsed, err := ParseWithRegistry(packet, m.Registry())
	require.NoError(t, err)
	assert.Empty(t, parsed.Namespaces())
}

func TestParse_EmptyPacket(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		m, err := ParseWithRegistry([]byte(in), NewRegistry())
		require.NoError(t, err)
		assert.Empty(t, m.Namespaces())
	}
}

func TestParse_RegistersPacketNamespaces(t *testing.T) {
	r := NewRegistry()
	packet := `<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="" xmlns:ex="http://example.com/ns/ex/" ex:Short="attr value">
   <ex:Title>Hello</ex:Title>
   <ex:Link rdf:resource="http://example.com/"/>
   <ex:Nested>
    <rdf:Description ex:Inner="1"/>
   </ex:Nested>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>`

	m, err := ParseWithRegistry([]byte(packet), r)
	require.NoError(t, err)

	prefix, ok := r.Prefix("http://example.com/ns/ex/")
	require.True(t, ok)
	assert.Equal(t, "ex", prefix)

	ns := "http://example.com/ns/ex/"
	get := func(p Path) string {
		prop, ok, err := m.GetProperty(ns, p)
		require.NoError(t, err)
		require.True(t, ok, p.Render(r))
		return prop.Value
	}
	assert.Equal(t, "attr value", get(PropertyPath("Short")))
	assert.Equal(t, "Hello", get(PropertyPath("Title")))
	assert.Equal(t, "http://example.com/", get(PropertyPath("Link")))
	assert.Equal(t, "1", get(PropertyPath("Nested").Join(ComposeStructFieldPath(ns, "Inner"))))
}

func TestParse_Malformed(t *testing.T) {
	head := `<x:xmpmeta xmlns:x="adobe:ns:meta/"><rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">` +
		`<rdf:Description rdf:about="" xmlns:ex="http://example.com/ns/ex/">`
	tail := `</rdf:Description></rdf:RDF></x:xmpmeta>`

	tests := []struct {
		name   string
		packet string
	}{
		{"not xml", "this is not a packet"},
		{"truncated", head + "<ex:Title>x"},
		{"no rdf", `<x:xmpmeta xmlns:x="adobe:ns:meta/"></x:xmpmeta>`},
		{"duplicate property", head + "<ex:A>1</ex:A><ex:A>2</ex:A>" + tail},
		{"mixed content", head + "<ex:A>text<ex:B>1</ex:B></ex:A>" + tail},
		{"li outside container", head + "<ex:A><rdf:Seq><ex:B/></rdf:Seq></ex:A>" + tail},
		{"unknown parse type", head + `<ex:A rdf:parseType="Literal">x</ex:A>` + tail},
		{"undeclared prefix", head + "<zz:A>1</zz:A>" + tail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithRegistry([]byte(tt.packet), NewRegistry())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadPacket)
		})
	}
}

func TestSetProperty_RejectsTextXMLCannotCarry(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"control character", "a\x01b"},
		{"escape sequence", "ctrl\x1bseq"},
		{"invalid utf-8", "bad\xffutf8"},
		{"noncharacter", "x\uFFFFy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMeta(t)
			assert.ErrorIs(t, m.SetProperty(testNS, PropertyPath("Title"), tt.value), ErrBadText)
			assert.ErrorIs(t, m.AppendArrayItem(testNS, PropertyPath("Genres"), FormSeq, tt.value, FormSimple), ErrBadText)
			assert.False(t, m.DoesPropertyExist(testNS, PropertyPath("Title")), "rejected value must not be stored")
		})
	}
}

func TestSerialize_KeepsAcceptedTextExact(t *testing.T) {
	values := []string{
		"tab\there",
		"line\nbreak",
		"carriage\r\nreturn",
		`<&>"'`,
		"Dvořák é\U0001F3BB",
		"replacement \uFFFD kept",
	}
	m := newTestMeta(t)
	for _, v := range values {
		require.NoError(t, m.AppendArrayItem(testNS, PropertyPath("Genres"), FormSeq, v, FormSimple))
	}

	packet, err := Serialize(m)
	require.NoError(t, err)
	back, err := ParseWithRegistry(packet, m.Registry())
	require.NoError(t, err)

	items, err := back.ArrayItems(testNS, PropertyPath("Genres"))
	require.NoError(t, err)
	require.Len(t, items, len(values))
	for i, v := range values {
		assert.Equal(t, v, items[i].Value)
	}
}

func TestSerialize_RejectsTextXMLCannotCarry(t *testing.T) {
	m := newTestMeta(t)
	require.NoError(t, m.SetProperty(testNS, PropertyPath("Title"), "placeholder"))

	// values set through the API are checked; plant one behind its back
	n, _, err := m.lookup(testNS, PropertyPath("Title"))
	require.NoError(t, err)
	n.value = "a\x01b"

	_, err = Serialize(m)
	assert.ErrorIs(t, err, ErrBadText)
}

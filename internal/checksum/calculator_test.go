package checksum

import (
	"testing"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty packet",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "Simple value",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.CalculateRaw([]byte(tt.content))
			if result != tt.expected {
				t.Errorf("CalculateRaw() = %s, want %s", result, tt.expected)
			}
		})
	}
}

func TestSHA256Calculator_RawDetectsLayout(t *testing.T) {
	calc := New()

	a := calc.CalculateRaw([]byte("<a>1</a>"))
	b := calc.CalculateRaw([]byte("<a>1</a>\n"))
	if a == b {
		t.Error("raw checksum should change with any byte")
	}
}

func TestSHA256Calculator_normalize(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty",
			content:  "",
			expected: "",
		},
		{
			name:     "Drops xpacket envelope",
			content:  "<?xpacket begin=\"\ufeff\" id=\"W5M0MpCehiHzreSzNTczkc9d\"?>\n<a>1</a>\n<?xpacket end=\"w\"?>",
			expected: "<a>1</a>",
		},
		{
			name:     "Drops comments",
			content:  "<a><!-- generated -->1</a>",
			expected: "<a>1</a>",
		},
		{
			name:     "Drops whitespace between elements",
			content:  "<a>\n  <b>1</b>\n\t<c/>\n</a>",
			expected: "<a><b>1</b><c/></a>",
		},
		{
			name:     "Keeps text content",
			content:  "<a>  Rhapsody   in Blue </a>",
			expected: "<a>  Rhapsody   in Blue </a>",
		},
		{
			name:     "Collapses whitespace in tags",
			content:  "<rdf:li\n   rdf:parseType = \"Resource\"  >x</rdf:li >",
			expected: "<rdf:li rdf:parseType=\"Resource\">x</rdf:li>",
		},
		{
			name:     "Self closing tag",
			content:  "<a b=\"1\" />",
			expected: "<a b=\"1\"/>",
		},
		{
			name:     "Keeps attribute values",
			content:  "<a b='x  >  y'/>",
			expected: "<a b='x  >  y'/>",
		},
		{
			name:     "Keeps case",
			content:  "<book:Title>An American In Paris</book:Title>",
			expected: "<book:Title>An American In Paris</book:Title>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.normalize(tt.content)
			if result != tt.expected {
				t.Errorf("normalize() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSHA256Calculator_NormalizedIgnoresLayout(t *testing.T) {
	calc := New()

	compact := samplePacket(3)
	spaced := []byte("\n\n" + string(samplePacket(3)) + "\n")

	if calc.CalculateNormalized(compact) != calc.CalculateNormalized(spaced) {
		t.Error("normalized checksum should not depend on surrounding whitespace")
	}
	if calc.CalculateNormalized(samplePacket(3)) == calc.CalculateNormalized(samplePacket(4)) {
		t.Error("normalized checksum should change when content changes")
	}
}

func TestSHA256Calculator_Concurrent(t *testing.T) {
	calc := New()
	content := samplePacket(10)
	want := calc.CalculateNormalized(content)

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- calc.CalculateNormalized(content) }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Errorf("concurrent CalculateNormalized() = %s, want %s", got, want)
		}
	}
}

package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Calculator computes checksums of metadata packets.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content, so that
	// packets differing only in layout hash the same.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

func New() SHA256 {
	return SHA256{}
}

func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (c SHA256) CalculateNormalized(content []byte) string {
	normalized := c.normalize(string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

type scanState int

const (
	stText scanState = iota
	stTag
	stQuote
	stComment
	stProcInst
)

// normalize drops processing instructions (including the xpacket envelope),
// comments and whitespace-only text between elements, and collapses
// whitespace inside tags. Text content and attribute values are kept as is.
func (c SHA256) normalize(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := stText
	textStart := 0
	pendingSpace := false
	var quote byte
	var last byte
	write := func(ch byte) {
		b.WriteByte(ch)
		last = ch
	}
	flushText := func(end int) {
		if text := content[textStart:end]; strings.TrimSpace(text) != "" {
			b.WriteString(text)
			last = text[len(text)-1]
		}
	}

	i := 0
	for i < len(content) {
		ch := content[i]

		switch state {
		case stText:
			if ch != '<' {
				i++
				continue
			}
			flushText(i)
			switch {
			case strings.HasPrefix(content[i:], "<!--"):
				state = stComment
				i += 4
			case strings.HasPrefix(content[i:], "<?"):
				state = stProcInst
				i += 2
			default:
				write(ch)
				state = stTag
				pendingSpace = false
				i++
			}

		case stTag:
			switch {
			case isSpace(ch):
				pendingSpace = true
			case ch == '=' || ch == '/' || ch == '>':
				pendingSpace = false
				write(ch)
				if ch == '>' {
					state = stText
					textStart = i + 1
				}
			default:
				if pendingSpace && last != '<' && last != '=' {
					write(' ')
				}
				pendingSpace = false
				write(ch)
				if ch == '"' || ch == '\'' {
					quote = ch
					state = stQuote
				}
			}
			i++

		case stQuote:
			write(ch)
			if ch == quote {
				state = stTag
			}
			i++

		case stComment:
			if strings.HasPrefix(content[i:], "-->") {
				state = stText
				i += 3
				textStart = i
			} else {
				i++
			}

		case stProcInst:
			if strings.HasPrefix(content[i:], "?>") {
				state = stText
				i += 2
				textStart = i
			} else {
				i++
			}
		}
	}
	if state == stText {
		flushText(len(content))
	}

	return b.String()
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

package xmp

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	packetID      = "W5M0MpCehiHzreSzNTczkc9d"
	packetHeader  = "<?xpacket begin=\"\ufeff\" id=\"" + packetID + "\"?>\n"
	packetTrailer = "<?xpacket end=\"w\"?>"
)

// Serialize encodes m as a UTF-8 RDF/XML packet wrapped in an xpacket
// envelope. Schemas without properties are omitted.
func Serialize(m *Meta) ([]byte, error) {
	w := &writer{reg: m.reg}
	w.buf.WriteString(packetHeader)
	w.buf.WriteString(`<x:xmpmeta xmlns:x="` + NSMeta + `">` + "\n")
	w.buf.WriteString(` <rdf:RDF xmlns:rdf="` + NSRDF + `">` + "\n")

	for _, s := range m.schemas {
		if len(s.children) == 0 {
			continue
		}
		if err := w.description(s); err != nil {
			return nil, err
		}
	}

	w.buf.WriteString(" </rdf:RDF>\n")
	w.buf.WriteString("</x:xmpmeta>\n")
	w.buf.WriteString(packetTrailer)
	return w.buf.Bytes(), nil
}

type writer struct {
	reg *Registry
	buf bytes.Buffer
}

func (w *writer) description(schema *node) error {
	w.buf.WriteString(`  <rdf:Description rdf:about=""`)
	for _, ns := range namespacesOf(schema) {
		if ns == NSRDF || ns == NSXML {
			continue
		}
		prefix, ok := w.reg.Prefix(ns)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnregisteredNamespace, ns)
		}
		w.buf.WriteString("\n    xmlns:" + prefix + `="`)
		if err := w.escape(ns); err != nil {
			return err
		}
		w.buf.WriteByte('"')
	}
	w.buf.WriteString(">\n")

	for _, c := range schema.children {
		qname, err := w.qname(c)
		if err != nil {
			return err
		}
		if err := w.element(qname, c, 3); err != nil {
			return err
		}
	}
	w.buf.WriteString("  </rdf:Description>\n")
	return nil
}

func (w *writer) qname(n *node) (string, error) {
	prefix, ok := w.reg.Prefix(n.ns)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnregisteredNamespace, n.ns)
	}
	return prefix + ":" + n.name, nil
}

func (w *writer) element(qname string, n *node, depth int) error {
	indent := strings.Repeat(" ", depth)
	w.buf.WriteString(indent + "<" + qname)
	if n.lang != "" {
		w.buf.WriteString(` xml:lang="`)
		if err := w.escape(n.lang); err != nil {
			return fmt.Errorf("%s: %w", qname, err)
		}
		w.buf.WriteByte('"')
	}

	switch {
	case n.form == FormSimple:
		if n.value == "" {
			w.buf.WriteString("/>\n")
			return nil
		}
		w.buf.WriteByte('>')
		if err := w.escape(n.value); err != nil {
			return fmt.Errorf("%s: %w", qname, err)
		}
		w.buf.WriteString("</" + qname + ">\n")

	case n.form == FormStruct:
		if len(n.children) == 0 {
			w.buf.WriteString(` rdf:parseType="Resource"/>` + "\n")
			return nil
		}
		w.buf.WriteString(` rdf:parseType="Resource">` + "\n")
		for _, c := range n.children {
			cq, err := w.qname(c)
			if err != nil {
				return err
			}
			if err := w.element(cq, c, depth+1); err != nil {
				return err
			}
		}
		w.buf.WriteString(indent + "</" + qname + ">\n")

	case n.form.IsArray():
		container := "rdf:" + n.form.rdfContainer()
		w.buf.WriteString(">\n")
		if len(n.children) == 0 {
			w.buf.WriteString(indent + " <" + container + "/>\n")
		} else {
			w.buf.WriteString(indent + " <" + container + ">\n")
			for _, item := range n.children {
				if err := w.element("rdf:li", item, depth+2); err != nil {
					return err
				}
			}
			w.buf.WriteString(indent + " </" + container + ">\n")
		}
		w.buf.WriteString(indent + "</" + qname + ">\n")

	default:
		return fmt.Errorf("%w: unknown form %d", ErrFormMismatch, n.form)
	}
	return nil
}

// escape writes s as XML character data. EscapeText would replace
// characters XML cannot carry with U+FFFD, so those are rejected first.
func (w *writer) escape(s string) error {
	if err := checkText(s); err != nil {
		return err
	}
	return xml.EscapeText(&w.buf, []byte(s))
}

// checkText rejects invalid UTF-8 and characters outside the XML 1.0 Char
// production (C0 controls other than tab, LF and CR, surrogates, U+FFFE/F).
func checkText(s string) error {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrBadText, i)
			}
		}
		if !isXMLChar(r) {
			return fmt.Errorf("%w: character %U at byte %d", ErrBadText, r, i)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// namespacesOf returns the distinct namespaces used in n's subtree, in first
// use order.
func namespacesOf(n *node) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(*node)
	walk = func(x *node) {
		if x.ns != "" && !seen[x.ns] {
			seen[x.ns] = true
			out = append(out, x.ns)
		}
		for _, c := range x.children {
			walk(c)
		}
	}
	walk(n)
	return out
}

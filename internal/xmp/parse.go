package xmp

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse decodes an RDF/XML packet into a tree bound to the default registry.
// An empty or whitespace-only packet yields an empty tree.
func Parse(packet []byte) (*Meta, error) {
	return ParseWithRegistry(packet, DefaultRegistry())
}

// ParseWithRegistry decodes packet into a tree bound to r. Namespace
// declarations found in the packet are registered with r.
func ParseWithRegistry(packet []byte, r *Registry) (*Meta, error) {
	m := NewWithRegistry(r)
	if len(bytes.TrimSpace(packet)) == 0 {
		return m, nil
	}
	p := &parser{
		dec:  xml.NewDecoder(bytes.NewReader(packet)),
		meta: m,
	}
	if err := p.document(); err != nil {
		return nil, err
	}
	return m, nil
}

type parser struct {
	dec  *xml.Decoder
	meta *Meta
}

func (p *parser) fail(format string, args ...interface{}) error {
	line, _ := p.dec.InputPos()
	return fmt.Errorf("%w: line %d: %s", ErrBadPacket, line, fmt.Sprintf(format, args...))
}

func (p *parser) token() (xml.Token, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrBadPacket, err)
	}
	return tok, nil
}

// known rejects element namespaces with no binding, which the decoder leaves
// as the raw prefix.
func (p *parser) known(ns string) error {
	if ns == "" || !p.meta.reg.IsRegistered(ns) {
		return p.fail("undeclared namespace %q", ns)
	}
	return nil
}

func isRDF(n xml.Name, local string) bool {
	return n.Space == NSRDF && n.Local == local
}

// declare registers the namespace prefixes declared on an element.
func (p *parser) declare(start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Space != "xmlns" {
			continue
		}
		if _, err := p.meta.reg.Register(a.Value, a.Name.Local); err != nil {
			return p.fail("namespace %s: %v", a.Value, err)
		}
	}
	return nil
}

func (p *parser) document() error {
	foundRDF := false
	for {
		tok, err := p.token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if err := p.declare(start); err != nil {
			return err
		}
		switch {
		case start.Name.Space == NSMeta && (start.Name.Local == "xmpmeta" || start.Name.Local == "xapmeta"):
			// wrapper; descend
		case isRDF(start.Name, "RDF"):
			if err := p.rdf(); err != nil {
				return err
			}
			foundRDF = true
		default:
			return p.fail("unexpected element %s", start.Name.Local)
		}
	}
	if !foundRDF {
		return p.fail("no rdf:RDF element")
	}
	return nil
}

func (p *parser) rdf() error {
	for {
		tok, err := p.token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return p.fail("unterminated rdf:RDF")
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isRDF(t.Name, "Description") {
				return p.fail("expected rdf:Description, got %s", t.Name.Local)
			}
			if err := p.description(t); err != nil {
				return err
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return p.fail("text inside rdf:RDF")
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) description(start xml.StartElement) error {
	if err := p.declare(start); err != nil {
		return err
	}
	for _, a := range start.Attr {
		if !isPropertyAttr(a) {
			continue
		}
		if err := p.addTop(&node{ns: a.Name.Space, name: a.Name.Local, value: a.Value}); err != nil {
			return err
		}
	}
	holder := &node{form: FormStruct}
	if err := p.fields(holder); err != nil {
		return err
	}
	for _, c := range holder.children {
		if err := p.addTop(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) addTop(n *node) error {
	if err := p.known(n.ns); err != nil {
		return err
	}
	s := p.meta.schema(n.ns, true)
	if s.field(n.ns, n.name) != nil {
		return p.fail("duplicate property %s", n.name)
	}
	s.children = append(s.children, n)
	return nil
}

// isPropertyAttr reports whether an attribute encodes a property rather than
// RDF syntax or a namespace declaration.
func isPropertyAttr(a xml.Attr) bool {
	switch a.Name.Space {
	case "", "xmlns", NSRDF, NSXML:
		return false
	}
	return true
}

// fields reads property elements into n until the enclosing end tag.
func (p *parser) fields(n *node) error {
	for {
		tok, err := p.token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return p.fail("unexpected end of packet")
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			c, err := p.property(t)
			if err != nil {
				return err
			}
			if err := p.known(c.ns); err != nil {
				return err
			}
			if n.field(c.ns, c.name) != nil {
				return p.fail("duplicate field %s", c.name)
			}
			n.children = append(n.children, c)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return p.fail("text mixed with struct fields")
			}
		case xml.EndElement:
			return nil
		}
	}
}

// items reads rdf:li elements into the array n until the container end tag.
func (p *parser) items(n *node) error {
	for {
		tok, err := p.token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return p.fail("unexpected end of packet")
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !isRDF(t.Name, "li") {
				return p.fail("expected rdf:li, got %s", t.Name.Local)
			}
			item, err := p.property(t)
			if err != nil {
				return err
			}
			item.ns, item.name = "", ""
			n.children = append(n.children, item)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return p.fail("text inside array container")
			}
		case xml.EndElement:
			return nil
		}
	}
}

// expectEnd consumes whitespace up to the end tag of the current element.
func (p *parser) expectEnd() error {
	for {
		tok, err := p.token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return p.fail("unexpected end of packet")
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return p.fail("unexpected element %s", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return p.fail("unexpected text")
			}
		case xml.EndElement:
			return nil
		}
	}
}

// property parses one property element (or rdf:li) whose start tag has
// already been read.
func (p *parser) property(start xml.StartElement) (*node, error) {
	if err := p.declare(start); err != nil {
		return nil, err
	}
	n := &node{ns: start.Name.Space, name: start.Name.Local}

	var parseType, resource string
	hasResource := false
	var fieldAttrs []xml.Attr
	for _, a := range start.Attr {
		switch {
		case a.Name.Space == NSXML && a.Name.Local == "lang":
			n.lang = a.Value
		case isRDF(a.Name, "parseType"):
			parseType = a.Value
		case isRDF(a.Name, "resource"):
			resource, hasResource = a.Value, true
		case isPropertyAttr(a):
			fieldAttrs = append(fieldAttrs, a)
		}
	}

	switch {
	case parseType == "Resource":
		n.form = FormStruct
		addAttrFields(n, fieldAttrs)
		return n, p.fields(n)
	case parseType != "":
		return nil, p.fail("unsupported rdf:parseType %q", parseType)
	case hasResource:
		n.value = resource
		return n, p.expectEnd()
	case len(fieldAttrs) > 0:
		n.form = FormStruct
		addAttrFields(n, fieldAttrs)
		return n, p.fields(n)
	}

	var text []byte
	for {
		tok, err := p.token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, p.fail("unexpected end of packet")
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text = append(text, t...)
		case xml.StartElement:
			if strings.TrimSpace(string(text)) != "" {
				return nil, p.fail("mixed content in %s", start.Name.Local)
			}
			if err := p.declare(t); err != nil {
				return nil, err
			}
			if form, ok := formForContainer(t.Name.Local); ok && t.Name.Space == NSRDF {
				n.form = form
				if err := p.items(n); err != nil {
					return nil, err
				}
				return n, p.expectEnd()
			}
			if isRDF(t.Name, "Description") {
				n.form = FormStruct
				var attrs []xml.Attr
				for _, a := range t.Attr {
					if isPropertyAttr(a) {
						attrs = append(attrs, a)
					}
				}
				addAttrFields(n, attrs)
				if err := p.fields(n); err != nil {
					return nil, err
				}
				return n, p.expectEnd()
			}
			return nil, p.fail("unexpected element %s in %s", t.Name.Local, start.Name.Local)
		case xml.EndElement:
			n.form = FormSimple
			n.value = string(text)
			return n, nil
		}
	}
}

func addAttrFields(n *node, attrs []xml.Attr) {
	for _, a := range attrs {
		n.children = append(n.children, &node{ns: a.Name.Space, name: a.Name.Local, value: a.Value})
	}
}

package xmp

// Form is the shape of a node in the property tree.
type Form uint8

const (
	FormSimple Form = iota // plain string value
	FormStruct             // ordered set of named fields
	FormBag                // unordered array (rdf:Bag)
	FormSeq                // ordered array (rdf:Seq)
	FormAlt                // alternative array (rdf:Alt)
)

// IsArray reports whether f is one of the array forms.
func (f Form) IsArray() bool {
	return f == FormBag || f == FormSeq || f == FormAlt
}

func (f Form) String() string {
	switch f {
	case FormSimple:
		return "simple"
	case FormStruct:
		return "struct"
	case FormBag:
		return "bag"
	case FormSeq:
		return "seq"
	case FormAlt:
		return "alt"
	default:
		return "unknown"
	}
}

// rdfContainer returns the RDF container element name for an array form.
func (f Form) rdfContainer() string {
	switch f {
	case FormBag:
		return "Bag"
	case FormSeq:
		return "Seq"
	case FormAlt:
		return "Alt"
	default:
		return ""
	}
}

func formForContainer(local string) (Form, bool) {
	switch local {
	case "Bag":
		return FormBag, true
	case "Seq":
		return FormSeq, true
	case "Alt":
		return FormAlt, true
	default:
		return FormSimple, false
	}
}

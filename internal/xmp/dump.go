package xmp

import (
	"fmt"
	"strings"
)

// Dump renders the tree as indented text, one node per line. The output is
// deterministic for a given tree and registry.
func (m *Meta) Dump() string {
	var b strings.Builder
	for _, s := range m.schemas {
		if len(s.children) == 0 {
			continue
		}
		prefix, _ := m.reg.Prefix(s.ns)
		fmt.Fprintf(&b, "%s (%s)\n", s.ns, prefix)
		for _, c := range s.children {
			m.dumpNode(&b, c, 1)
		}
	}
	return b.String()
}

func (m *Meta) dumpNode(b *strings.Builder, n *node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.name == "" {
		b.WriteString("-")
	} else {
		if prefix, ok := m.reg.Prefix(n.ns); ok {
			b.WriteString(prefix + ":")
		}
		b.WriteString(n.name)
	}
	switch {
	case n.form == FormSimple:
		fmt.Fprintf(b, " = %q", n.value)
	default:
		fmt.Fprintf(b, " <%s>", n.form)
	}
	if n.lang != "" {
		fmt.Fprintf(b, " @%s", n.lang)
	}
	b.WriteByte('\n')
	for _, c := range n.children {
		m.dumpNode(b, c, depth+1)
	}
}

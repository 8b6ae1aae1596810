package xmp

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Well-known namespace URIs.
const (
	NSMeta  = "adobe:ns:meta/"
	NSRDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSXML   = "http://www.w3.org/XML/1998/namespace"
	NSDC    = "http://purl.org/dc/elements/1.1/"
	NSXMP   = "http://ns.adobe.com/xap/1.0/"
	NSPDF   = "http://ns.adobe.com/pdf/1.3/"
	NSXMPMM = "http://ns.adobe.com/xap/1.0/mm/"
)

var predefined = []struct{ uri, prefix string }{
	{NSMeta, "x"},
	{NSRDF, "rdf"},
	{NSXML, "xml"},
	{NSDC, "dc"},
	{NSXMP, "xmp"},
	{NSPDF, "pdf"},
	{NSXMPMM, "xmpMM"},
}

// Registry binds namespace URIs to prefixes.
//
// A URI binds to exactly one prefix for the registry's lifetime. Registering
// a URI again returns the prefix it is already bound to; registering a
// prefix already taken by another URI binds a derived prefix "prefix_N_".
//
// Safe for concurrent use by multiple goroutines.
type Registry struct {
	mu       sync.RWMutex
	prefixes map[string]string // uri -> prefix
	uris     map[string]string // prefix -> uri
}

// NewRegistry creates a registry preloaded with the well-known namespaces.
func NewRegistry() *Registry {
	r := &Registry{
		prefixes: make(map[string]string),
		uris:     make(map[string]string),
	}
	for _, ns := range predefined {
		r.prefixes[ns.uri] = ns.prefix
		r.uris[ns.prefix] = ns.uri
	}
	return r
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by New and Parse.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register binds uri to prefix and returns the prefix actually bound.
// A trailing ':' on prefix is ignored.
func (r *Registry) Register(uri, prefix string) (string, error) {
	prefix = strings.TrimSuffix(prefix, ":")
	if uri == "" {
		return "", fmt.Errorf("%w: empty namespace URI", ErrBadNamespace)
	}
	if !isNCName(prefix) {
		return "", fmt.Errorf("%w: prefix %q is not a valid XML name", ErrBadNamespace, prefix)
	}
	if strings.EqualFold(prefix, "xmlns") {
		return "", fmt.Errorf("%w: prefix %q is reserved", ErrBadNamespace, prefix)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.prefixes[uri]; ok {
		return existing, nil
	}

	bound := prefix
	if _, taken := r.uris[bound]; taken {
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s_%d_", prefix, n)
			if _, taken := r.uris[candidate]; !taken {
				bound = candidate
				break
			}
		}
	}

	r.prefixes[uri] = bound
	r.uris[bound] = uri
	return bound, nil
}

// Prefix returns the prefix bound to uri.
func (r *Registry) Prefix(uri string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prefixes[uri]
	return p, ok
}

// URI returns the namespace bound to prefix.
func (r *Registry) URI(prefix string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.uris[strings.TrimSuffix(prefix, ":")]
	return u, ok
}

// IsRegistered reports whether uri has a prefix.
func (r *Registry) IsRegistered(uri string) bool {
	_, ok := r.Prefix(uri)
	return ok
}

// Bindings returns a copy of all uri -> prefix bindings.
func (r *Registry) Bindings() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.prefixes))
	for u, p := range r.prefixes {
		out[u] = p
	}
	return out
}

// Prefixes returns the registered prefixes in sorted order.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.uris))
	for p := range r.uris {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func isNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || unicode.IsLetter(c):
		case i > 0 && (c == '-' || c == '.' || unicode.IsDigit(c)):
		default:
			return false
		}
	}
	return true
}

// Package xmp implements a namespace-partitioned, path-addressed property tree
// in the style of the Adobe XMP data model, and its RDF/XML packet encoding.
//
// # Data Model
//
// A Meta holds one node set per schema namespace. Nodes are:
//   - simple values (strings, optionally qualified with xml:lang)
//   - structs: ordered sets of namespace-qualified fields
//   - arrays: rdf:Bag, rdf:Seq or rdf:Alt of items
//
// # Paths
//
// Locations are addressed with typed Path values rather than strings:
//
//	works := xmp.PropertyPath("Works")                 // book:Works
//	item, _ := xmp.ComposeArrayItemPath(works, 1)      // book:Works[1]
//	title := item.Join(xmp.ComposeStructFieldPath(     // book:Works[1]/work:Title
//	    "http://www.jisj.com/ns/book/work", "Title"))
//
// The first step of a path is qualified by the namespace passed to the Meta
// call; every later field step carries its own namespace.
//
// # Namespaces
//
// Every namespace used in a path must be registered before the engine call
// that uses it. Registration is process-wide (DefaultRegistry) and
// idempotent; parsing a packet registers the prefixes it declares.
//
// # Packet Format
//
// Serialize writes one rdf:Description per schema inside an x:xmpmeta wrapper
// and an xpacket envelope. Parse accepts that form plus the common variants
// found in PDF files: attribute-form simple properties, nested
// rdf:Description structs and rdf:resource values.
//
// # Thread Safety
//
// Registry is safe for concurrent use. Meta is not; callers serialize access.
package xmp

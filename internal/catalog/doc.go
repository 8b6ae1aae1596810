// Package catalog keeps a PostgreSQL table of catalogued books: their
// identifier, title, genres, author names, work count and the metadata packet
// they were built from.
//
// Records are keyed by the book identifier. Upsert only rewrites a row when
// the normalized checksum of the packet changed, so pushing the same library
// twice leaves the catalog untouched.
package catalog

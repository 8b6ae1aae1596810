// Package bookxmp holds the public contracts shared by the bookxmp packages:
// the error taxonomy, exit codes, the Logger interface, the host document
// interfaces, and retry interfaces.
//
// The book schema itself lives in internal/schema and is reached through
// internal/document, which binds a parsed metadata tree to a HostDocument.
package bookxmp

// Package scanner discovers sidecar documents in a library directory.
//
// The scanner is filesystem-agnostic through filesystem.Provider, so the
// same code runs against the OS filesystem and the in-memory one used in
// tests.
package scanner

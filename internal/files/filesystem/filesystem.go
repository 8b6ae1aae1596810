package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo.
type FileInfo = fs.FileInfo

// File is a file found while walking a Directory.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked directory
	RelativePath() string

	Info() FileInfo

	ReadContent() ([]byte, error)
}

// Directory is a directory that can be walked.
type Directory interface {
	Path() string

	// Walk calls fn for the directory itself and every entry below it, in
	// lexical order. Walking stops at the first error fn returns.
	Walk(fn func(File, error) error) error
}

// Provider reads and writes documents.
type Provider interface {
	// Open opens a directory for walking.
	Open(path string) (Directory, error)

	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the file at path, creating parent directories as
	// needed. Readers never observe a partially written file.
	WriteFile(path string, data []byte) error

	Stat(path string) (FileInfo, error)
}

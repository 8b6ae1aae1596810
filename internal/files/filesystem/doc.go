// Package filesystem abstracts the storage that book documents are read
// from and written to.
//
// Provider is implemented by OSFileSystem for real files and by
// MemoryFileSystem for tests. Directory walking is used to discover sidecar
// documents in a library folder.
//
// Missing paths are reported with errors wrapping fs.ErrNotExist on both
// implementations.
package filesystem

// Package files provides file-related functionality organized into sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Sidecar discovery in a library directory
//
// # Usage
//
//	fsys := filesystem.NewOSFileSystem()
//	entries, err := scanner.NewScanner(checksum.New(), fsys).ScanLibrary("./library")
package files

// Package host provides the reference host container: a YAML sidecar file
// carrying a metadata packet, document information fields and an encryption
// marker.
//
// A sidecar looks like:
//
//	format: bookxmp/v1
//	info:
//	  Title: An American In Paris
//	  Author: George Gershwin
//	metadata: |
//	  <?xpacket begin="..." id="W5M0MpCehiHzreSzNTczkc9d"?>
//	  ...
//
// Files are read and written through filesystem.Provider, so tests run
// against filesystem.MemoryFileSystem.
package host

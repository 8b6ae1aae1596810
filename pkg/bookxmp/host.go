package bookxmp

// EncryptionPolicy describes how a host document applies encryption.
type EncryptionPolicy struct {
	// EncryptMetadata is true when the metadata stream is encrypted along
	// with the document content.
	EncryptMetadata bool
}

// MetadataEncrypted reports whether the metadata stream is encrypted.
func (p EncryptionPolicy) MetadataEncrypted() bool {
	return p.EncryptMetadata
}

// HostDocument is the container that carries a metadata packet and a flat
// set of document information fields.
//
// Implementations are not required to be safe for concurrent use.
// After Close every method returns an error wrapping fs.ErrClosed.
type HostDocument interface {
	// IsEncrypted reports whether the document is encrypted at all.
	IsEncrypted() bool

	// EncryptionPolicy returns the encryption policy. Only meaningful
	// when IsEncrypted returns true.
	EncryptionPolicy() EncryptionPolicy

	// RawMetadata returns the raw metadata packet (UTF-8). An empty slice
	// means the document carries no metadata yet.
	RawMetadata() ([]byte, error)

	// SetRawMetadata replaces the metadata packet.
	SetRawMetadata(packet []byte) error

	// InfoField returns a document information field; missing fields are "".
	InfoField(name string) (string, error)

	// SetInfoField sets a document information field. An empty value removes it.
	SetInfoField(name, value string) error

	// Save writes the document to path.
	Save(path string) error

	// Close releases the document handle.
	Close() error
}

// HostLoader opens host documents.
type HostLoader interface {
	Load(path string) (HostDocument, error)
}

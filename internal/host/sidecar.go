package host

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jisj/bookxmp/internal/files/filesystem"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// ErrUnsupportedFormat is returned when a sidecar carries an unknown format marker.
var ErrUnsupportedFormat = errors.New("unsupported sidecar format")

// Document information field names understood by the sidecar.
const (
	InfoTitle        = "Title"
	InfoAuthor       = "Author"
	InfoSubject      = "Subject"
	InfoKeywords     = "Keywords"
	InfoCreator      = "Creator"
	InfoProducer     = "Producer"
	InfoCreationDate = "CreationDate"
	InfoModDate      = "ModDate"
)

type encryptionSection struct {
	Encrypted       bool `yaml:"encrypted"`
	EncryptMetadata bool `yaml:"encrypt_metadata"`
}

type sidecarFile struct {
	Format     string             `yaml:"format"`
	Info       map[string]string  `yaml:"info,omitempty"`
	Encryption *encryptionSection `yaml:"encryption,omitempty"`
	Metadata   string             `yaml:"metadata,omitempty"`
}

// Document is a host document stored as a YAML sidecar file.
//
// Document is not safe for concurrent use.
type Document struct {
	fs     filesystem.Provider
	path   string
	file   sidecarFile
	closed bool
}

var _ bookxmp.HostDocument = (*Document)(nil)

// NewDocument creates an unsaved sidecar document with the given info fields.
func NewDocument(fsys filesystem.Provider, info map[string]string) *Document {
	d := &Document{
		fs:   fsys,
		file: sidecarFile{Format: bookxmp.SidecarFormat, Info: map[string]string{}},
	}
	for k, v := range info {
		if v != "" {
			d.file.Info[k] = v
		}
	}
	return d
}

// Path returns the path the document was loaded from or last saved to.
func (d *Document) Path() string { return d.path }

func (d *Document) errClosed(op string) error {
	if d.path == "" {
		return fmt.Errorf("sidecar %s: %w", op, fs.ErrClosed)
	}
	return fmt.Errorf("sidecar %s %s: %w", op, d.path, fs.ErrClosed)
}

// IsEncrypted reports whether the sidecar carries an encryption section.
func (d *Document) IsEncrypted() bool {
	return !d.closed && d.file.Encryption != nil && d.file.Encryption.Encrypted
}

// EncryptionPolicy returns the stored policy, or the zero policy when the
// document is not encrypted.
func (d *Document) EncryptionPolicy() bookxmp.EncryptionPolicy {
	if d.closed || d.file.Encryption == nil {
		return bookxmp.EncryptionPolicy{}
	}
	return bookxmp.EncryptionPolicy{EncryptMetadata: d.file.Encryption.EncryptMetadata}
}

// SetEncryption marks the document as encrypted under policy. The metadata
// packet is stored as given; the sidecar does not encrypt it.
func (d *Document) SetEncryption(policy bookxmp.EncryptionPolicy) error {
	if d.closed {
		return d.errClosed("set encryption")
	}
	d.file.Encryption = &encryptionSection{Encrypted: true, EncryptMetadata: policy.EncryptMetadata}
	return nil
}

// RawMetadata returns the stored metadata packet, empty when there is none.
func (d *Document) RawMetadata() ([]byte, error) {
	if d.closed {
		return nil, d.errClosed("read metadata")
	}
	return []byte(d.file.Metadata), nil
}

// SetRawMetadata replaces the stored metadata packet.
func (d *Document) SetRawMetadata(packet []byte) error {
	if d.closed {
		return d.errClosed("write metadata")
	}
	d.file.Metadata = string(packet)
	return nil
}

// InfoField returns an info field, or "" when it is not set.
func (d *Document) InfoField(name string) (string, error) {
	if d.closed {
		return "", d.errClosed("read info")
	}
	return d.file.Info[name], nil
}

// SetInfoField sets an info field; an empty value removes it.
func (d *Document) SetInfoField(name, value string) error {
	if d.closed {
		return d.errClosed("write info")
	}
	if value == "" {
		delete(d.file.Info, name)
		return nil
	}
	if d.file.Info == nil {
		d.file.Info = map[string]string{}
	}
	d.file.Info[name] = value
	return nil
}

// InfoFields returns the names of all set info fields in sorted order.
func (d *Document) InfoFields() ([]string, error) {
	if d.closed {
		return nil, d.errClosed("read info")
	}
	names := make([]string, 0, len(d.file.Info))
	for k := range d.file.Info {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// Save writes the sidecar to path and makes path the document's path.
func (d *Document) Save(path string) error {
	if d.closed {
		return d.errClosed("save")
	}
	data, err := yaml.Marshal(&d.file)
	if err != nil {
		return fmt.Errorf("failed to encode sidecar: %w", err)
	}
	if err := d.fs.WriteFile(path, data); err != nil {
		return err
	}
	d.path = path
	return nil
}

// Close releases the document. A second Close fails wrapping fs.ErrClosed.
func (d *Document) Close() error {
	if d.closed {
		return d.errClosed("close")
	}
	d.closed = true
	d.file = sidecarFile{}
	return nil
}

// SidecarLoader loads sidecar documents from a filesystem provider.
type SidecarLoader struct {
	fs filesystem.Provider
}

var _ bookxmp.HostLoader = (*SidecarLoader)(nil)

func NewSidecarLoader(fsys filesystem.Provider) *SidecarLoader {
	return &SidecarLoader{fs: fsys}
}

// Load implements bookxmp.HostLoader.
func (l *SidecarLoader) Load(path string) (bookxmp.HostDocument, error) {
	return l.LoadDocument(path)
}

// LoadDocument reads and decodes the sidecar at path.
func (l *SidecarLoader) LoadDocument(path string) (*Document, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file sidecarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode sidecar %s: %w", path, err)
	}
	if file.Format != bookxmp.SidecarFormat {
		return nil, fmt.Errorf("%w: %q in %s (expected %q)", ErrUnsupportedFormat, file.Format, path, bookxmp.SidecarFormat)
	}
	if file.Info == nil {
		file.Info = map[string]string{}
	}

	return &Document{fs: l.fs, path: path, file: file}, nil
}

// New creates an unsaved document bound to the loader's filesystem.
func (l *SidecarLoader) New(info map[string]string) *Document {
	return NewDocument(l.fs, info)
}

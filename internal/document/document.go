package document

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/jisj/bookxmp/internal/checksum"
	"github.com/jisj/bookxmp/internal/logging"
	"github.com/jisj/bookxmp/internal/schema"
	"github.com/jisj/bookxmp/internal/xmp"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// Document wraps a host document and owns its parsed metadata tree.
//
// Document is not safe for concurrent use.
type Document struct {
	host     bookxmp.HostDocument
	logger   bookxmp.Logger
	calc     checksum.Calculator
	registry *xmp.Registry

	meta     *xmp.Meta // nil while metadata are encrypted
	baseline string
	closed   bool
}

// Option configures a Document.
type Option func(*Document)

// WithRegistry parses and binds the metadata tree to r instead of the
// process-wide registry.
func WithRegistry(r *xmp.Registry) Option {
	return func(d *Document) { d.registry = r }
}

// Open loads the host document at path and parses its metadata.
// The host is closed again when parsing fails.
func Open(loader bookxmp.HostLoader, path string, logger bookxmp.Logger, opts ...Option) (*Document, error) {
	h, err := loader.Load(path)
	if err != nil {
		return nil, &bookxmp.IOError{Op: "load", Path: path, Err: err}
	}

	d, err := New(h, logger, opts...)
	if err != nil {
		if closeErr := h.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, err
	}
	return d, nil
}

// New wraps an already loaded host document. Metadata are parsed unless the
// host reports them encrypted; an empty packet yields an empty tree.
func New(h bookxmp.HostDocument, logger bookxmp.Logger, opts ...Option) (*Document, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	d := &Document{
		host:     h,
		logger:   logger,
		calc:     checksum.New(),
		registry: xmp.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.IsMetadataEncrypted() {
		d.logger.Verbose("Metadata are encrypted, skipping parse")
		return d, nil
	}

	raw, err := h.RawMetadata()
	if err != nil {
		return nil, d.hostErr("read metadata", err, bookxmp.ErrMetadataParse)
	}
	meta, err := xmp.ParseWithRegistry(raw, d.registry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bookxmp.ErrMetadataParse, err)
	}
	d.meta = meta

	if d.baseline, err = d.digest(); err != nil {
		return nil, err
	}
	d.logger.Verbose("Parsed metadata packet (%d bytes, %d schemas)", len(raw), len(meta.Namespaces()))
	return d, nil
}

// hostErr maps a host failure: closed handles become ErrDocumentClosed,
// anything else is wrapped with fallback.
func (d *Document) hostErr(op string, err, fallback error) error {
	if errors.Is(err, fs.ErrClosed) {
		return fmt.Errorf("%s: %w: %w", op, bookxmp.ErrDocumentClosed, err)
	}
	return fmt.Errorf("%s: %w: %w", op, fallback, err)
}

func (d *Document) digest() (string, error) {
	packet, err := xmp.Serialize(d.meta)
	if err != nil {
		return "", fmt.Errorf("%w: %w", bookxmp.ErrMetadataSerialize, err)
	}
	return d.calc.CalculateNormalized(packet), nil
}

// IsMetadataEncrypted reports whether the host encrypts its metadata stream.
func (d *Document) IsMetadataEncrypted() bool {
	if d.closed {
		return false
	}
	return d.host.IsEncrypted() && d.host.EncryptionPolicy().MetadataEncrypted()
}

// Metadata returns the owned metadata tree. Mutations are written back by
// Commit or SaveAs.
func (d *Document) Metadata() (*xmp.Meta, error) {
	if d.closed {
		return nil, bookxmp.ErrDocumentClosed
	}
	if d.meta == nil || d.IsMetadataEncrypted() {
		return nil, bookxmp.ErrEncryptedMetadata
	}
	return d.meta, nil
}

// Book binds the book schema to the owned metadata tree.
func (d *Document) Book() (*schema.Book, error) {
	meta, err := d.Metadata()
	if err != nil {
		return nil, err
	}
	return schema.NewBook(meta)
}

// SetMetadata serializes meta into the host's metadata slot and makes it the
// owned tree.
func (d *Document) SetMetadata(meta *xmp.Meta) error {
	if d.closed {
		return bookxmp.ErrDocumentClosed
	}
	if d.IsMetadataEncrypted() {
		return bookxmp.ErrEncryptedMetadata
	}

	packet, err := xmp.Serialize(meta)
	if err != nil {
		return fmt.Errorf("%w: %w", bookxmp.ErrMetadataSerialize, err)
	}
	if err := d.host.SetRawMetadata(packet); err != nil {
		return d.hostErr("write metadata", err, bookxmp.ErrMetadataSerialize)
	}
	d.meta = meta
	d.logger.Verbose("Wrote metadata packet (%d bytes)", len(packet))
	return nil
}

// Commit writes the owned tree back to the host. It is a no-op when the
// metadata were encrypted at open time; a tree parsed before the host turned
// on metadata encryption fails with bookxmp.ErrEncryptedMetadata.
func (d *Document) Commit() error {
	if d.closed {
		return bookxmp.ErrDocumentClosed
	}
	if d.meta == nil {
		return nil
	}
	return d.SetMetadata(d.meta)
}

// Modified reports whether the owned tree differs from the packet loaded at
// open time or written by the last SaveAs. Layout differences are ignored.
func (d *Document) Modified() (bool, error) {
	if d.closed {
		return false, bookxmp.ErrDocumentClosed
	}
	if d.IsMetadataEncrypted() {
		return false, bookxmp.ErrEncryptedMetadata
	}
	sum, err := d.digest()
	if err != nil {
		return false, err
	}
	return sum != d.baseline, nil
}

// SaveAs commits the owned tree and saves the host document to path.
func (d *Document) SaveAs(path string) error {
	if d.closed {
		return bookxmp.ErrDocumentClosed
	}
	if err := d.Commit(); err != nil {
		return err
	}
	if err := d.host.Save(path); err != nil {
		if errors.Is(err, fs.ErrClosed) {
			return fmt.Errorf("save %s: %w: %w", path, bookxmp.ErrDocumentClosed, err)
		}
		return &bookxmp.IOError{Op: "save", Path: path, Err: err}
	}

	if d.meta != nil {
		sum, err := d.digest()
		if err != nil {
			return err
		}
		d.baseline = sum
	}
	d.logger.Verbose("Saved %s", path)
	return nil
}

// Close releases the host document. Calling Close again is a no-op.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.meta = nil
	if err := d.host.Close(); err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	return nil
}

package bookxmp

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	meta, err := doc.Metadata()
//	if errors.Is(err, bookxmp.ErrEncryptedMetadata) {
//	    // Ask the user to unlock the document
//	}
var (
	// ErrEncryptedMetadata indicates metadata access while the host reports metadata encryption.
	ErrEncryptedMetadata = errors.New("metadata are encrypted")

	// ErrDocumentClosed indicates access after the host document handle was released.
	ErrDocumentClosed = errors.New("document closed")

	// ErrMetadataParse indicates a malformed metadata packet.
	ErrMetadataParse = errors.New("metadata parse failed")

	// ErrMetadataSerialize indicates the metadata tree could not be serialized.
	ErrMetadataSerialize = errors.New("metadata serialize failed")

	// ErrMalformedIdentifier indicates a stored identifier that does not parse as a UUID.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrMalformedDate indicates a stored date that does not parse.
	ErrMalformedDate = errors.New("malformed date")

	// ErrNilIdentifier indicates an attempt to store the nil UUID where an identifier is required.
	ErrNilIdentifier = errors.New("nil identifier")

	// ErrAddressing indicates invalid path composition input.
	ErrAddressing = errors.New("invalid path addressing")

	// ErrRegistry indicates the namespace registry rejected a registration.
	ErrRegistry = errors.New("namespace registration failed")

	// ErrMetadataAccess indicates a property-tree operation failed.
	ErrMetadataAccess = errors.New("metadata access failed")

	// ErrIO indicates a host document load or save failure.
	ErrIO = errors.New("document I/O failed")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCatalogUnavailable indicates the catalog database could not be reached.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrNotFound indicates a catalog record does not exist.
	ErrNotFound = errors.New("not found")
)

// AccessError wraps a property-tree engine failure with the operation and
// location that triggered it.
type AccessError struct {
	Op        string // accessor operation, e.g. "set property"
	Namespace string // namespace URI the call was scoped to
	Path      string // rendered path expression
	Err       error  // engine cause
}

func (e *AccessError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s in %s: %v", e.Op, e.Namespace, e.Err)
	}
	return fmt.Sprintf("%s %s in %s: %v", e.Op, e.Path, e.Namespace, e.Err)
}

func (e *AccessError) Unwrap() []error {
	return []error{ErrMetadataAccess, e.Err}
}

// ValueError reports a stored value that cannot be decoded into its typed form.
// Kind is one of ErrMalformedIdentifier or ErrMalformedDate.
type ValueError struct {
	Field string
	Value string
	Kind  error
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v: field %s has value %q: %v", e.Kind, e.Field, e.Value, e.Err)
}

func (e *ValueError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// AddressingError reports invalid path composition input.
type AddressingError struct {
	Array string
	Index int
	Msg   string
}

func (e *AddressingError) Error() string {
	if e.Array == "" {
		return fmt.Sprintf("%v: %s", ErrAddressing, e.Msg)
	}
	return fmt.Sprintf("%v: %s[%d]: %s", ErrAddressing, e.Array, e.Index, e.Msg)
}

func (e *AddressingError) Unwrap() error {
	return ErrAddressing
}

// RegistryError reports a namespace registration rejected by the engine.
type RegistryError struct {
	URI    string
	Prefix string
	Err    error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("register namespace %s as %q: %v", e.URI, e.Prefix, e.Err)
}

func (e *RegistryError) Unwrap() []error {
	return []error{ErrRegistry, e.Err}
}

// IOError reports a host document load or save failure together with the
// path that failed.
type IOError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrEncryptedMetadata):
		return ExitEncryptedMetadata
	case errors.Is(err, ErrIO), errors.Is(err, ErrDocumentClosed):
		return ExitDocumentError
	case errors.Is(err, ErrMetadataParse),
		errors.Is(err, ErrMetadataSerialize),
		errors.Is(err, ErrMalformedIdentifier),
		errors.Is(err, ErrMalformedDate):
		return ExitMetadataInvalid
	case errors.Is(err, ErrCatalogUnavailable):
		return ExitCatalogError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	usagePatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"missing required argument",
	}
	for _, p := range usagePatterns {
		if strings.Contains(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

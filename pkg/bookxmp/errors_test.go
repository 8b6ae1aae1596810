package bookxmp_test

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jisj/bookxmp/pkg/bookxmp"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, bookxmp.ExitSuccess},
		{"general error", errors.New("something went wrong"), bookxmp.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag --foo"), bookxmp.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), bookxmp.ExitUsageError},
		{"required flag", errors.New("required flag(s) \"title\" not set"), bookxmp.ExitUsageError},
		{"missing argument", errors.New("missing required argument: <file>"), bookxmp.ExitUsageError},
		{"invalid config", fmt.Errorf("load: %w", bookxmp.ErrInvalidConfig), bookxmp.ExitConfigError},
		{"encrypted", bookxmp.ErrEncryptedMetadata, bookxmp.ExitEncryptedMetadata},
		{"closed", bookxmp.ErrDocumentClosed, bookxmp.ExitDocumentError},
		{"io", &bookxmp.IOError{Op: "load", Path: "a.yaml", Err: fs.ErrNotExist}, bookxmp.ExitDocumentError},
		{"parse", fmt.Errorf("%w: eof", bookxmp.ErrMetadataParse), bookxmp.ExitMetadataInvalid},
		{"malformed date", &bookxmp.ValueError{Field: "DateCreated", Value: "x", Kind: bookxmp.ErrMalformedDate}, bookxmp.ExitMetadataInvalid},
		{"catalog", fmt.Errorf("%w: refused", bookxmp.ErrCatalogUnavailable), bookxmp.ExitCatalogError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bookxmp.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStructuredErrors_Unwrap(t *testing.T) {
	cause := errors.New("engine failure")

	access := &bookxmp.AccessError{Op: "set property", Namespace: "http://ns/", Path: "Title", Err: cause}
	if !errors.Is(access, bookxmp.ErrMetadataAccess) || !errors.Is(access, cause) {
		t.Errorf("AccessError should match sentinel and cause: %v", access)
	}
	if !strings.Contains(access.Error(), "Title") {
		t.Errorf("AccessError message missing path: %q", access.Error())
	}

	value := &bookxmp.ValueError{Field: "GUID", Value: "zz", Kind: bookxmp.ErrMalformedIdentifier, Err: cause}
	if !errors.Is(value, bookxmp.ErrMalformedIdentifier) || !errors.Is(value, cause) {
		t.Errorf("ValueError should match kind and cause: %v", value)
	}

	addr := &bookxmp.AddressingError{Array: "Works", Index: 0, Msg: "index must be 1 or more"}
	if !errors.Is(addr, bookxmp.ErrAddressing) {
		t.Errorf("AddressingError should match ErrAddressing: %v", addr)
	}

	reg := &bookxmp.RegistryError{URI: "http://ns/", Prefix: "book", Err: cause}
	if !errors.Is(reg, bookxmp.ErrRegistry) || !errors.Is(reg, cause) {
		t.Errorf("RegistryError should match sentinel and cause: %v", reg)
	}

	ioErr := &bookxmp.IOError{Op: "save", Path: "a.yaml", Err: fs.ErrPermission}
	if !errors.Is(ioErr, bookxmp.ErrIO) || !errors.Is(ioErr, fs.ErrPermission) {
		t.Errorf("IOError should match ErrIO and cause: %v", ioErr)
	}
}

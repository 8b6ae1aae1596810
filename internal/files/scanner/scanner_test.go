package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jisj/bookxmp/internal/checksum"
	"github.com/jisj/bookxmp/internal/files/filesystem"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/library")
	return NewScanner(checksum.New(), fs), fs
}

func TestNewScanner_NilArgs(t *testing.T) {
	calc := checksum.New()
	fs := filesystem.NewMemoryFileSystem("/")

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil calculator", func() { NewScanner(nil, fs) }},
		{"nil filesystem", func() { NewScanner(calc, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestScanLibrary(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("paris.yaml", "format: bookxmp/v1\n")
	fs.AddFile("bach/suites.yml", "format: bookxmp/v1\n")
	fs.AddFile("bach/notes.txt", "cello")
	fs.AddFile("bookxmp.yaml", "library: .\n")
	fs.AddFile(".git/config.yaml", "x: 1\n")

	entries, err := s.ScanLibrary("/library")
	if err != nil {
		t.Fatalf("ScanLibrary failed: %v", err)
	}

	want := []string{"./bach/suites.yml", "./paris.yaml"}
	if len(entries) != len(want) {
		t.Fatalf("Expected %d entries, got %d: %+v", len(want), len(entries), entries)
	}
	for i, e := range entries {
		if e.RelativePath != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, e.RelativePath, want[i])
		}
		if e.Checksum == "" {
			t.Errorf("Checksum should be populated for %s", e.RelativePath)
		}
		if e.SizeBytes != int64(len("format: bookxmp/v1\n")) {
			t.Errorf("SizeBytes = %d for %s", e.SizeBytes, e.RelativePath)
		}
	}
	if entries[1].Path != "/library/paris.yaml" {
		t.Errorf("Path = %q", entries[1].Path)
	}
}

func TestScanLibrary_MissingRoot(t *testing.T) {
	s, _ := newTestScanner()
	if _, err := s.ScanLibrary("/elsewhere"); err == nil {
		t.Error("Expected error for missing library")
	}
}

func TestScanLibrary_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scores"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scores", "rhapsody.yaml"), []byte("format: bookxmp/v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewScanner(checksum.New(), filesystem.NewOSFileSystem())
	entries, err := s.ScanLibrary(dir)
	if err != nil {
		t.Fatalf("ScanLibrary failed: %v", err)
	}
	if len(entries) != 1 || entries[0].RelativePath != "./scores/rhapsody.yaml" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestIsSidecarName(t *testing.T) {
	tests := map[string]bool{
		"paris.yaml":   true,
		"suites.YML":   true,
		"bookxmp.yaml": false,
		"notes.txt":    false,
		"yaml":         false,
	}
	for name, want := range tests {
		if got := IsSidecarName(name); got != want {
			t.Errorf("IsSidecarName(%q) = %v, want %v", name, got, want)
		}
	}
}

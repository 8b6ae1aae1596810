package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jisj/bookxmp/internal/checksum"
	"github.com/jisj/bookxmp/internal/config"
	"github.com/jisj/bookxmp/internal/files/filesystem"
)

// Entry is a sidecar candidate found in a library directory.
type Entry struct {
	Path         string // absolute path, suitable for loading
	RelativePath string // ./-prefixed, forward slashes
	SizeBytes    int64
	Checksum     string // raw checksum of the file content
}

// Scanner discovers sidecar documents in a library directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.Provider
}

// NewScanner creates a library scanner over fsProvider.
// Panics if calculator or fsProvider is nil.
func NewScanner(calculator checksum.Calculator, fsProvider filesystem.Provider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// ScanLibrary recursively lists the .yaml and .yml files under root in
// lexical order. The config file and anything inside a dot-directory are
// excluded. Whether a candidate really is a sidecar is decided on load.
func (s *Scanner) ScanLibrary(root string) ([]Entry, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}

	var entries []Entry
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() {
			return nil
		}

		rel := toUnixRelative(file.RelativePath())
		if !IsSidecarName(file.Info().Name()) || inHiddenDir(rel) {
			return nil
		}

		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		entries = append(entries, Entry{
			Path:         file.Path(),
			RelativePath: rel,
			SizeBytes:    file.Info().Size(),
			Checksum:     s.calculator.CalculateRaw(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// IsSidecarName reports whether a file name looks like a sidecar document.
func IsSidecarName(name string) bool {
	if strings.EqualFold(name, config.ConfigFileName) {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func toUnixRelative(rel string) string {
	unixPath := filepath.ToSlash(rel)
	if !strings.HasPrefix(unixPath, "./") {
		unixPath = "./" + unixPath
	}
	return unixPath
}

func inHiddenDir(unixPath string) bool {
	segments := strings.Split(strings.TrimPrefix(unixPath, "./"), "/")
	for _, seg := range segments[:len(segments)-1] {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

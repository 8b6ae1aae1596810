package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return append([]byte(nil), f.content...), nil
}

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	for _, entry := range entries {
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			rel := "."
			if entry.absPath != d.absPath {
				rel = strings.TrimPrefix(entry.absPath, strings.TrimSuffix(d.absPath, "/")+"/")
			}
			callbackErr = fn(&memoryFile{absPath: entry.absPath, relPath: rel, content: entry.content, info: entry.info}, nil)
		}()

		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// MemoryFileSystem implements Provider in memory. Paths use forward slashes;
// relative paths are resolved against the root given to NewMemoryFileSystem.
//
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile
	root  string
	now   func() time.Time
}

func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
		now:   time.Now,
	}
	mfs.files[root] = mfs.dirEntry(root)
	return mfs
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) dirEntry(abs string) *memoryFile {
	return &memoryFile{
		absPath: abs,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			mode:    0o755 | fs.ModeDir,
			modTime: mfs.now(),
			isDir:   true,
		},
	}
}

// AddFile adds or replaces a file.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	_ = mfs.WriteFile(filePath, []byte(content))
}

// WriteFile implements Provider.WriteFile.
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	abs := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if existing, ok := mfs.files[abs]; ok && existing.info.isDir {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	content := append([]byte(nil), data...)
	mfs.files[abs] = &memoryFile{
		absPath: abs,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0o644,
			modTime: mfs.now(),
		},
	}
	for dir := path.Dir(abs); ; dir = path.Dir(dir) {
		if _, ok := mfs.files[dir]; !ok {
			mfs.files[dir] = mfs.dirEntry(dir)
		}
		if dir == "/" || dir == "." {
			break
		}
	}
	return nil
}

func (mfs *MemoryFileSystem) entriesUnder(base string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var entries []*memoryFile
	for p, file := range mfs.files {
		if base == "/" || p == base || strings.HasPrefix(p, base+"/") {
			entries = append(entries, file)
		}
	}
	return entries
}

func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	abs := mfs.resolve(openPath)

	mfs.mu.RLock()
	file, ok := mfs.files[abs]
	mfs.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("directory %s: %w", openPath, fs.ErrNotExist)
	}
	if !file.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: abs, fs: mfs}, nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	abs := mfs.resolve(filePath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, ok := mfs.files[abs]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", filePath, fs.ErrNotExist)
	}
	if file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return append([]byte(nil), file.content...), nil
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	abs := mfs.resolve(statPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, ok := mfs.files[abs]
	if !ok {
		return nil, fmt.Errorf("path %s: %w", statPath, fs.ErrNotExist)
	}
	return file.info, nil
}

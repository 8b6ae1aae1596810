package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_WriteRead(t *testing.T) {
	mfs := NewMemoryFileSystem("/library")

	require.NoError(t, mfs.WriteFile("jazz/paris.bookxmp.yaml", []byte("v1")))

	data, err := mfs.ReadFile("/library/jazz/paris.bookxmp.yaml")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	// returned content is a copy
	data[0] = 'X'
	again, err := mfs.ReadFile("jazz/paris.bookxmp.yaml")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(again))

	info, err := mfs.Stat("jazz")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryFileSystem_NotExist(t *testing.T) {
	mfs := NewMemoryFileSystem("/library")

	_, err := mfs.ReadFile("missing.bookxmp.yaml")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.Stat("missing")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.Open("missing")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_WriteOverDirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/library")
	mfs.AddFile("jazz/a.bookxmp.yaml", "a")

	err := mfs.WriteFile("jazz", []byte("x"))
	assert.Error(t, err)

	_, err = mfs.ReadFile("jazz")
	assert.Error(t, err)
}

func TestMemoryFileSystem_Walk(t *testing.T) {
	mfs := NewMemoryFileSystem("/library")
	mfs.AddFile("b.bookxmp.yaml", "b")
	mfs.AddFile("jazz/a.bookxmp.yaml", "a")
	mfs.AddFile("/elsewhere/c.bookxmp.yaml", "c")

	dir, err := mfs.Open(".")
	require.NoError(t, err)

	var files []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.bookxmp.yaml", "jazz/a.bookxmp.yaml"}, files)
}

func TestMemoryFileSystem_WalkStopsOnError(t *testing.T) {
	mfs := NewMemoryFileSystem("/library")
	mfs.AddFile("a.bookxmp.yaml", "a")
	mfs.AddFile("b.bookxmp.yaml", "b")

	dir, err := mfs.Open("/library")
	require.NoError(t, err)

	stop := errors.New("stop")
	visited := 0
	err = dir.Walk(func(file File, err error) error {
		visited++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

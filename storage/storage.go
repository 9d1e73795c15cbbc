// Package storage reads files from beneath the served directory. Every
// access goes through an os.Root, so neither parent-directory segments nor
// symlinks can reach outside of it.
package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/contiv/staticd/errors"
)

// Filesystem is a read-only view of a single directory tree.
type Filesystem struct {
	root *os.Root
	path string
}

// Open opens dir as the root of a Filesystem.
func Open(dir string) (*Filesystem, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, errors.OpenRoot.Combine(err)
	}

	return &Filesystem{root: root, path: dir}, nil
}

// Path returns the directory the filesystem was opened on.
func (f *Filesystem) Path() string {
	return f.path
}

// Close releases the root directory handle.
func (f *Filesystem) Close() error {
	return f.root.Close()
}

// Stat returns the file information for name. Missing files and anything
// that is not a regular file yield errors.NotExists.
func (f *Filesystem) Stat(name string) (fs.FileInfo, error) {
	if err := checkLocal(name); err != nil {
		return nil, err
	}

	fi, err := f.root.Stat(name)
	if err != nil {
		return nil, errors.StatFile.Combine(OSToErrored(err))
	}

	if !fi.Mode().IsRegular() {
		return nil, errors.NotExists.Combine(fmt.Errorf("%q is not a regular file", name))
	}

	return fi, nil
}

// ReadFile reads the whole of name into memory.
func (f *Filesystem) ReadFile(name string) ([]byte, error) {
	if err := checkLocal(name); err != nil {
		return nil, err
	}

	file, err := f.root.Open(name)
	if err != nil {
		return nil, errors.ReadFile.Combine(OSToErrored(err))
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return nil, errors.ReadFile.Combine(OSToErrored(err))
	}

	if !fi.Mode().IsRegular() {
		return nil, errors.NotExists.Combine(fmt.Errorf("%q is not a regular file", name))
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.ReadFile.Combine(OSToErrored(err))
	}

	return content, nil
}

// OSToErrored converts filesystem errors to their errors counterparts.
func OSToErrored(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return errors.NotExists.Combine(err)
	case errors.Is(err, fs.ErrPermission):
		return errors.Forbidden.Combine(err)
	default:
		return err
	}
}

func checkLocal(name string) error {
	if !filepath.IsLocal(name) {
		return errors.PathEscape.Combine(fmt.Errorf("%q", name))
	}

	return nil
}

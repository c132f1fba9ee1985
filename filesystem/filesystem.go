// Package filesystem routes all file access through a swappable afero backend,
// so tests can run against an in-memory filesystem.
package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the afero wrapper around the active backend.
func API() afero.Afero {
	return backend
}

// SetBackend swaps the active backend.
func SetBackend(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the operating system backend.
func SetOsFs() {
	SetBackend(afero.NewOsFs())
}

// SetMemMapFs swaps in a volatile in-memory backend.
func SetMemMapFs() {
	SetBackend(afero.NewMemMapFs())
}

// GacheFs backs the gache caches with the package backend, so cached
// state follows the swapped filesystem in tests.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

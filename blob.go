package siteapi

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore persists uploaded image bytes under generated filenames. The
// HTTP layer serves the same names back at /uploads/<name>.
type BlobStore interface {
	Put(name string, data []byte) error
}

// DirBlobStore writes blobs into a directory on local disk.
type DirBlobStore struct {
	dir string
}

// NewDirBlobStore creates a DirBlobStore rooted at dir.
func NewDirBlobStore(dir string) *DirBlobStore {
	return &DirBlobStore{dir: dir}
}

// Put writes data under name. Names are generated server-side, but path
// separators are refused anyway so a blob can never land outside the dir.
func (s *DirBlobStore) Put(name string, data []byte) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return errors.New("invalid blob name")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

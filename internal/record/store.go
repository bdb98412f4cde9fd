package record

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/legend-exp/detinfo/internal/fsutil"
)

// Ext is the file extension of metadata documents.
const Ext = ".json"

// Store is a directory of <id>.json metadata documents.
type Store struct {
	FS  fsutil.FileSystem
	Dir string
}

// NewStore returns a store over dir on the real filesystem.
func NewStore(dir string) *Store {
	return &Store{FS: fsutil.OSFileSystem{}, Dir: dir}
}

// Path returns the file path of the document with the given id.
func (s *Store) Path(id string) string {
	return filepath.Join(s.Dir, id+Ext)
}

// Names lists the ids of all documents in the store, sorted.
func (s *Store) Names() ([]string, error) {
	files, err := s.FS.ListDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Dir, err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if !strings.HasSuffix(f, Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(f, Ext))
	}
	return names, nil
}

// Load reads and parses the document with the given id.
func (s *Store) Load(id string) (*Object, error) {
	data, err := s.FS.ReadFile(s.Path(id))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	o, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", id, err)
	}
	return o, nil
}

// Exists reports whether a document with the given id is present.
func (s *Store) Exists(id string) bool {
	return s.FS.Exists(s.Path(id))
}

// Save writes o as <id>.json, creating the directory when needed.
func (s *Store) Save(id string, o *Object) error {
	data, err := Indent(o)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	if err := s.FS.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", s.Dir, err)
	}
	if err := s.FS.WriteFile(s.Path(id), data, os.FileMode(0644)); err != nil {
		return fmt.Errorf("write %s: %w", id, err)
	}
	return nil
}

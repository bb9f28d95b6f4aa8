package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store reads and writes the username to password-hash mapping persisted as
// a single YAML file. Mutations rewrite the whole file; see the service for
// the serialisation guarding concurrent writers.
type Store struct {
	path string
}

// NewStore constructs a file-backed credential store.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Path reports the backing file location.
func (s *Store) Path() string {
	return s.path
}

// EnsureFile seeds an empty mapping when the backing file does not exist so
// fresh deployments can accept signups without manual setup.
func (s *Store) EnsureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credentials: stat %s: %w", s.path, err)
	}
	return s.Save(map[string]string{})
}

// Load reads the full mapping. A missing file is reported as ErrStoreMissing
// so callers can distinguish first-run from corruption.
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: path=%s", ErrStoreMissing, s.path)
		}
		return nil, fmt.Errorf("credentials: read %s: %w", s.path, err)
	}

	mapping := map[string]string{}
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if mapping == nil {
		mapping = map[string]string{}
	}
	return mapping, nil
}

// Save rewrites the full mapping through a temp file in the same directory
// followed by a rename, so a crash mid-write leaves the previous file intact.
func (s *Store) Save(mapping map[string]string) error {
	if mapping == nil {
		mapping = map[string]string{}
	}

	data, err := yaml.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("credentials: marshal store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("credentials: create temp in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("credentials: write temp %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credentials: close temp %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credentials: rename %s: %w", tmpName, err)
	}
	return nil
}

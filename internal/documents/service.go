package documents

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Service exposes the document store backed by a single root directory. The
// directory is the source of truth; every call re-reads it.
type Service interface {
	List(ctx context.Context) ([]Document, error)
	Exists(ctx context.Context, name string) bool
	Get(ctx context.Context, name string) (*Document, error)
	Put(ctx context.Context, name string, content []byte) error
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}

// ServiceOption configures store behaviour.
type ServiceOption func(*service)

// WithFileMode overrides the permission bits applied to written documents.
func WithFileMode(mode os.FileMode) ServiceOption {
	return func(s *service) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

type service struct {
	root string
	mode os.FileMode
}

// NewService constructs a document store rooted at dir. The directory must
// already exist; the store never creates or escapes it.
func NewService(dir string, opts ...ServiceOption) (Service, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrRootRequired
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("documents: stat root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documents: root %s is not a directory", dir)
	}

	s := &service{
		root: filepath.Clean(dir),
		mode: 0o644,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *service) List(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("documents: read root %s: %w", s.root, err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		doc := Document{
			Name: entry.Name(),
			Kind: ClassifyName(entry.Name()),
		}
		if info, err := entry.Info(); err == nil {
			doc.Size = info.Size()
			doc.ModTime = info.ModTime()
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

func (s *service) Exists(ctx context.Context, name string) bool {
	path, err := s.resolve(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *service) Get(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("documents: stat %s: %w", name, err)
		}
		return nil, &NotFoundError{Name: filepath.Base(path)}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("documents: read %s: %w", name, err)
	}

	return &Document{
		Name:    filepath.Base(path),
		Content: content,
		Kind:    ClassifyName(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (s *service) Put(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, s.mode); err != nil {
		return fmt.Errorf("documents: write %s: %w", name, err)
	}
	return nil
}

func (s *service) Create(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if !strings.Contains(name, ".") {
		return ErrExtensionRequired
	}
	// Collisions overwrite silently; the store surfaces no distinct
	// "already exists" condition.
	return s.Put(ctx, name, nil)
}

func (s *service) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("documents: stat %s: %w", name, err)
		}
		return &NotFoundError{Name: filepath.Base(path)}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("documents: delete %s: %w", name, err)
	}
	return nil
}

// resolve normalises name down to its base component and anchors it inside
// the root directory. Traversal segments are stripped rather than resolved,
// so "../../etc/passwd" collapses to "passwd" under the root.
func (s *service) resolve(name string) (string, error) {
	base := filepath.Base(filepath.Clean(strings.TrimSpace(name)))
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", &InvalidNameError{Name: name, Reason: "empty after normalisation"}
	}
	if strings.HasPrefix(base, ".") {
		return "", &InvalidNameError{Name: name, Reason: "dot-files are reserved"}
	}

	path := filepath.Join(s.root, base)
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel != base || strings.Contains(rel, "..") {
		return "", &InvalidNameError{Name: name, Reason: "escapes root directory"}
	}
	return path, nil
}

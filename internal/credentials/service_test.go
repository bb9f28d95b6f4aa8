package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (Service, *Store) {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "users.yml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile: %v", err)
	}

	svc, err := NewService(store, WithBcryptCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestRegisterAndVerify(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "developer", "letmein"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	ok, err := svc.Verify(ctx, "developer", "letmein")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching password to verify")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "developer", "letmein"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	ok, err := svc.Verify(ctx, "developer", "wrong")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestVerifyUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	ok, err := svc.Verify(context.Background(), "ghost", "anything")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("expected unknown user to fail")
	}
}

func TestRegisterRotatesPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "developer", "first"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Register(ctx, "developer", "second"); err != nil {
		t.Fatalf("Register again: %v", err)
	}

	if ok, _ := svc.Verify(ctx, "developer", "first"); ok {
		t.Fatalf("expected old password to stop verifying")
	}
	if ok, _ := svc.Verify(ctx, "developer", "second"); !ok {
		t.Fatalf("expected new password to verify")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "   ", "pw"); !errors.Is(err, ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}
	if err := svc.Register(ctx, "developer", ""); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestStoreHashesAtRest(t *testing.T) {
	svc, store := newTestService(t)

	if err := svc.Register(context.Background(), "developer", "letmein"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	mapping, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	hash, ok := mapping["developer"]
	if !ok {
		t.Fatalf("expected developer entry")
	}
	if hash == "letmein" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("letmein")); err != nil {
		t.Fatalf("stored value is not a bcrypt hash of the password: %v", err)
	}
}

func TestStoreMissingFile(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := store.Load(); !errors.Is(err, ErrStoreMissing) {
		t.Fatalf("expected ErrStoreMissing, got %v", err)
	}
}

func TestStoreEnsureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yml")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile: %v", err)
	}

	mapping, err := store.Load()
	if err != nil {
		t.Fatalf("Load after EnsureFile: %v", err)
	}
	if len(mapping) != 0 {
		t.Fatalf("expected empty mapping, got %d entries", len(mapping))
	}

	// Seeding again must not clobber existing entries.
	mapping["developer"] = "hash"
	if err := store.Save(mapping); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile on existing store: %v", err)
	}
	mapping, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mapping["developer"] != "hash" {
		t.Fatalf("EnsureFile overwrote existing store")
	}
}

func TestStoreMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yml")
	if err := os.WriteFile(path, []byte("not: [valid"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	_, err = store.Load()
	if !errors.Is(err, ErrStoreMalformed) {
		t.Fatalf("expected ErrStoreMalformed, got %v", err)
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if parseErr.Path != path {
		t.Fatalf("unexpected path: %s", parseErr.Path)
	}
}

func TestStoreSaveSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yml")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Save(map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mapping, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mapping["a"] != "1" || mapping["b"] != "2" {
		t.Fatalf("unexpected mapping: %v", mapping)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

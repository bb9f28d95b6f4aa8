package documents

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestService(t *testing.T) (Service, string) {
	t.Helper()

	root := t.TempDir()
	svc, err := NewService(root)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, root
}

func writeDocument(t *testing.T, root, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestServiceList(t *testing.T) {
	svc, root := newTestService(t)

	writeDocument(t, root, "changes.txt", "")
	writeDocument(t, root, "about.md", "")
	writeDocument(t, root, ".hidden", "")
	if err := os.Mkdir(filepath.Join(root, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	docs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Name != "about.md" || docs[1].Name != "changes.txt" {
		t.Fatalf("unexpected ordering: %s, %s", docs[0].Name, docs[1].Name)
	}
	if docs[0].Kind != KindMarkdown {
		t.Fatalf("expected about.md classified as markdown, got %s", docs[0].Kind)
	}
	if docs[1].Kind != KindPlaintext {
		t.Fatalf("expected changes.txt classified as plaintext, got %s", docs[1].Kind)
	}
}

func TestServiceGet(t *testing.T) {
	svc, root := newTestService(t)
	writeDocument(t, root, "history.txt", "2015 release")

	doc, err := svc.Get(context.Background(), "history.txt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(doc.Content) != "2015 release" {
		t.Fatalf("unexpected content: %q", doc.Content)
	}
	if doc.Kind != KindPlaintext {
		t.Fatalf("unexpected kind: %s", doc.Kind)
	}
}

func TestServiceGetMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "ghost.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.Name != "ghost.txt" {
		t.Fatalf("unexpected name: %s", notFound.Name)
	}
}

func TestServiceCreate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, "contacts.txt"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !svc.Exists(ctx, "contacts.txt") {
		t.Fatalf("expected contacts.txt to exist")
	}

	doc, err := svc.Get(ctx, "contacts.txt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(doc.Content) != 0 {
		t.Fatalf("expected empty content, got %q", doc.Content)
	}
}

func TestServiceCreateOverwritesSilently(t *testing.T) {
	svc, root := newTestService(t)
	writeDocument(t, root, "notes.txt", "existing")

	if err := svc.Create(context.Background(), "notes.txt"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	doc, err := svc.Get(context.Background(), "notes.txt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(doc.Content) != 0 {
		t.Fatalf("expected collision to truncate, got %q", doc.Content)
	}
}

func TestServiceCreateInvalidNames(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Create(ctx, ""); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if err := svc.Create(ctx, "noextension"); !errors.Is(err, ErrExtensionRequired) {
		t.Fatalf("expected ErrExtensionRequired, got %v", err)
	}

	docs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no filesystem change, found %d entries", len(docs))
	}
}

func TestServicePutAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Put(ctx, "draft.md", []byte("# Draft")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := svc.Delete(ctx, "draft.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if svc.Exists(ctx, "draft.md") {
		t.Fatalf("expected draft.md to be gone")
	}

	if err := svc.Delete(ctx, "draft.md"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceTraversalCollapsesToBase(t *testing.T) {
	svc, root := newTestService(t)
	writeDocument(t, root, "secrets.txt", "inside")

	outside := filepath.Join(filepath.Dir(root), "outside.txt")
	if err := os.WriteFile(outside, []byte("outside"), 0o644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	// Traversal segments must resolve to the base component under the root,
	// never to the sibling file.
	doc, err := svc.Get(context.Background(), "../secrets.txt")
	if err != nil {
		t.Fatalf("Get with traversal prefix: %v", err)
	}
	if string(doc.Content) != "inside" {
		t.Fatalf("expected root-confined read, got %q", doc.Content)
	}

	_, err = svc.Get(context.Background(), "../outside.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for sibling escape, got %v", err)
	}
}

func TestServiceRejectsDotNames(t *testing.T) {
	svc, _ := newTestService(t)

	for _, name := range []string{".", "..", ".hidden", "   "} {
		if err := svc.Put(context.Background(), name, nil); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName for %q, got %v", name, err)
		}
	}
}

func TestClassifyName(t *testing.T) {
	cases := map[string]Kind{
		"about.md":       KindMarkdown,
		"notes.MARKDOWN": KindMarkdown,
		"changes.txt":    KindPlaintext,
		"data.csv":       KindPlaintext,
		"noext":          KindPlaintext,
	}

	for name, want := range cases {
		if got := ClassifyName(name); got != want {
			t.Fatalf("ClassifyName(%q) = %s, want %s", name, got, want)
		}
	}
}

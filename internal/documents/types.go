package documents

import (
	"path/filepath"
	"strings"
	"time"
)

// Kind classifies a document by its filename extension and determines the
// render path a document takes on the way out.
type Kind string

const (
	// KindMarkdown documents are converted to HTML before serving.
	KindMarkdown Kind = "markdown"
	// KindPlaintext documents are served verbatim with a text/plain marker.
	// This is also the fallback for extensions the store does not recognise.
	KindPlaintext Kind = "plaintext"
)

// Document is a named file inside the store's root directory. The store keeps
// no cache; a Document is a snapshot of the file at read time.
type Document struct {
	Name    string
	Content []byte
	Kind    Kind
	Size    int64
	ModTime time.Time
}

// ClassifyName derives the document kind from a filename extension.
func ClassifyName(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return KindMarkdown
	default:
		return KindPlaintext
	}
}

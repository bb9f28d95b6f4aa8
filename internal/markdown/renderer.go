package markdown

import (
	"errors"

	"github.com/goliatone/go-filecms/internal/documents"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// ContentType markers attached to rendered documents.
const (
	ContentTypeHTML  = "text/html; charset=utf-8"
	ContentTypePlain = "text/plain; charset=utf-8"
)

var ErrDocumentRequired = errors.New("markdown: document is required")

// Rendered is the serve-ready form of a document.
type Rendered struct {
	Title       string
	HTML        []byte
	Plain       []byte
	ContentType string
	Draft       bool
}

// Renderer turns stored documents into responses: Markdown documents become
// HTML via the configured parser, everything else passes through verbatim
// with a plain-text marker. Unrecognised extensions deliberately take the
// plain-text path; the store accepts any extension on create, so the view
// side must handle all of them.
type Renderer struct {
	parser interfaces.MarkdownParser
}

// NewRenderer constructs a renderer. A nil parser falls back to the default
// goldmark engine.
func NewRenderer(parser interfaces.MarkdownParser) *Renderer {
	if parser == nil {
		parser = NewGoldmarkParser(interfaces.ParseOptions{})
	}
	return &Renderer{parser: parser}
}

// Render classifies the document by kind and produces its serve-ready form.
func (r *Renderer) Render(doc *documents.Document) (*Rendered, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}

	if doc.Kind != documents.KindMarkdown {
		return &Rendered{
			Title:       doc.Name,
			Plain:       doc.Content,
			ContentType: ContentTypePlain,
		}, nil
	}

	meta, body, err := ParseFrontMatter(doc.Content)
	if err != nil {
		// A malformed header is not fatal; render the raw source instead of
		// refusing to serve the document.
		meta = FrontMatter{}
		body = doc.Content
	}

	html, err := r.parser.Parse(body)
	if err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = doc.Name
	}

	return &Rendered{
		Title:       title,
		HTML:        html,
		ContentType: ContentTypeHTML,
		Draft:       meta.Draft,
	}, nil
}

// Package markdown converts stored documents into a renderable form: goldmark
// handles the Markdown-to-HTML conversion, adrg/frontmatter strips optional
// YAML metadata, and the Renderer selects the content type per document kind.
package markdown

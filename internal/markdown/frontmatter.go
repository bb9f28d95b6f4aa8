package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the optional YAML header a Markdown document may carry.
// Documents without a header are served as-is with an empty FrontMatter.
type FrontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Draft   bool   `yaml:"draft"`
}

// ParseFrontMatter extracts metadata and the Markdown body from the provided
// source bytes. The body is returned without the frontmatter delimiters.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta, body, nil
}

package header

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// engine is a shared goldmark instance. GFM is required for the Version
// History and Data Provenance tables; goldmark is stateless so a single
// instance is safe for concurrent use.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// HTML renders the header markdown to HTML for preview output.
func (h *Header) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(h.Markdown), &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

package converter

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// MarkdownConverter converts HTML to Markdown
type MarkdownConverter struct {
	domain string
}

// NewMarkdownConverter creates a converter. domain resolves root-relative
// links left in the HTML.
func NewMarkdownConverter(domain string) *MarkdownConverter {
	return &MarkdownConverter{domain: domain}
}

// Convert converts HTML to Markdown
func (c *MarkdownConverter) Convert(html string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}

	markdown, err := md.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return cleanMarkdown(markdown), nil
}

// cleanMarkdown collapses runs of blank lines and trims the result
func cleanMarkdown(markdown string) string {
	for strings.Contains(markdown, "\n\n\n") {
		markdown = strings.ReplaceAll(markdown, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(markdown)
}

package converter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// DefaultContentSelectors locate the article body of a rendered docs site
var DefaultContentSelectors = []string{
	"article.md-content__inner",
	".md-content",
	"article",
	"main",
	"[role='main']",
}

// TagsToRemove never carry documentation content
var TagsToRemove = []string{
	"script",
	"style",
	"noscript",
	"iframe",
	"object",
	"embed",
	"form",
	"nav",
}

// Extractor selects the main content of a page
type Extractor struct {
	selectors []string
}

// NewExtractor creates an extractor that tries selectors in order. An empty
// list uses DefaultContentSelectors.
func NewExtractor(selectors ...string) *Extractor {
	if len(selectors) == 0 {
		selectors = DefaultContentSelectors
	}
	return &Extractor{selectors: selectors}
}

// Extract returns the content selection and the page title. When no selector
// matches, the readability algorithm picks the content.
func (e *Extractor) Extract(doc *goquery.Document, pageURL *url.URL) (*goquery.Selection, string, error) {
	title := extractTitle(doc)

	for _, selector := range e.selectors {
		if content := doc.Find(selector).First(); content.Length() > 0 {
			return content, title, nil
		}
	}

	html, err := doc.Html()
	if err != nil {
		return nil, "", err
	}
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return doc.Find("body"), title, nil
	}
	if title == "" {
		title = article.Title
	}

	fragment, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, "", fmt.Errorf("parse extracted content: %w", err)
	}
	return fragment.Find("body"), title, nil
}

// Clean removes non-content elements from sel in place
func Clean(sel *goquery.Selection) {
	for _, tag := range TagsToRemove {
		sel.Find(tag).Remove()
	}
	sel.Find("[hidden]").Remove()
	sel.Find("[style*='display:none']").Remove()
	sel.Find("[style*='display: none']").Remove()
	// mkdocs permalink anchors
	sel.Find("a.headerlink").Remove()
}

func extractTitle(doc *goquery.Document) string {
	h1 := doc.Find("h1").First().Clone()
	h1.Find("a.headerlink").Remove()
	if title := strings.TrimSpace(h1.Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

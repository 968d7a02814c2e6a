// Package converter turns rendered documentation pages into clean HTML or
// Markdown.
package converter

import (
	"bytes"
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/quantmind-br/docprep/internal/domain"
)

// Document is a converted documentation page
type Document struct {
	URL      string
	Title    string
	HTML     string
	Markdown string
}

// Pipeline decodes, extracts, rewrites and converts a rendered page
type Pipeline struct {
	extractor *Extractor
	rewrite   LinkRewriter
	markdown  bool
}

// PipelineOptions contains options for the conversion pipeline
type PipelineOptions struct {
	// ContentSelectors override DefaultContentSelectors
	ContentSelectors []string
	// RewriteLink maps page references; nil resolves them against the page URL
	RewriteLink LinkRewriter
	// Markdown enables HTML to Markdown conversion
	Markdown bool
}

// NewPipeline creates a new conversion pipeline
func NewPipeline(opts PipelineOptions) *Pipeline {
	return &Pipeline{
		extractor: NewExtractor(opts.ContentSelectors...),
		rewrite:   opts.RewriteLink,
		markdown:  opts.Markdown,
	}
}

// Convert processes a page fetched from pageURL. contentType is the
// Content-Type header of the response and may be empty.
func (p *Pipeline) Convert(ctx context.Context, page []byte, pageURL, contentType string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return nil, domain.NewInputError("page URL must be absolute: "+pageURL, domain.ErrInvalidURL)
	}

	utf8Page, err := ConvertToUTF8(page, contentType)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8Page))
	if err != nil {
		return nil, err
	}

	content, title, err := p.extractor.Extract(doc, base)
	if err != nil {
		return nil, err
	}
	Clean(content)

	rewrite := p.rewrite
	if rewrite == nil {
		rewrite = ResolveAgainst(base)
	}
	RewriteLinks(content, rewrite)

	html, err := content.Html()
	if err != nil {
		return nil, err
	}

	result := &Document{URL: pageURL, Title: title, HTML: html}
	if p.markdown {
		result.Markdown, err = NewMarkdownConverter(base.Scheme + "://" + base.Host).Convert(html)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

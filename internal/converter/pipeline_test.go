package converter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/quantmind-br/docprep/internal/domain"
)

const mkdocsPage = `<!doctype html>
<html>
<head><title>Payments - Docs</title><script>track()</script></head>
<body>
<nav class="md-nav"><a href="../other/">Other</a></nav>
<div class="md-content">
  <article class="md-content__inner">
    <h1>Payments<a class="headerlink" href="#payments">¶</a></h1>
    <p>See the <a href="setup/">setup guide</a> and <a href="#usage">usage</a>.</p>
    <img src="../img/diagram.png" alt="diagram">
    <p hidden>secret</p>
    <pre><code>make run</code></pre>
  </article>
</div>
</body>
</html>`

func TestPipeline_Convert_HTML(t *testing.T) {
	p := NewPipeline(PipelineOptions{})

	doc, err := p.Convert(context.Background(), []byte(mkdocsPage), "https://docs.example.com/component/default/payments/guides/", "text/html")

	require.NoError(t, err)
	assert.Equal(t, "Payments", doc.Title)
	assert.Contains(t, doc.HTML, `href="https://docs.example.com/component/default/payments/guides/setup/"`)
	assert.Contains(t, doc.HTML, `href="#usage"`)
	assert.Contains(t, doc.HTML, `src="https://docs.example.com/component/default/payments/img/diagram.png"`)
	assert.NotContains(t, doc.HTML, "secret")
	assert.NotContains(t, doc.HTML, "headerlink")
	assert.NotContains(t, doc.HTML, "Other")
	assert.Empty(t, doc.Markdown)
}

func TestPipeline_Convert_Markdown(t *testing.T) {
	p := NewPipeline(PipelineOptions{Markdown: true})

	doc, err := p.Convert(context.Background(), []byte(mkdocsPage), "https://docs.example.com/component/default/payments/", "")

	require.NoError(t, err)
	assert.Contains(t, doc.Markdown, "# Payments")
	assert.Contains(t, doc.Markdown, "[setup guide](https://docs.example.com/component/default/payments/setup/)")
	assert.Contains(t, doc.Markdown, "make run")
	assert.NotContains(t, doc.Markdown, "track()")
}

func TestPipeline_Convert_CustomRewriter(t *testing.T) {
	var seen []string
	p := NewPipeline(PipelineOptions{
		RewriteLink: func(ref string) (string, error) {
			seen = append(seen, ref)
			return "https://cdn.example.com/" + ref, nil
		},
	})

	doc, err := p.Convert(context.Background(), []byte(mkdocsPage), "https://docs.example.com/", "")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"setup/", "../img/diagram.png"}, seen)
	assert.Contains(t, doc.HTML, `href="https://cdn.example.com/setup/"`)
}

func TestPipeline_Convert_CustomSelector(t *testing.T) {
	page := `<html><body><div id="docs"><p>inside</p></div><article><p>article</p></article></body></html>`
	p := NewPipeline(PipelineOptions{ContentSelectors: []string{"#docs"}})

	doc, err := p.Convert(context.Background(), []byte(page), "https://docs.example.com/", "")

	require.NoError(t, err)
	assert.Contains(t, doc.HTML, "inside")
	assert.NotContains(t, doc.HTML, "article")
}

func TestPipeline_Convert_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(`<html><body><main><p>Café</p></main></body></html>`)
	require.NoError(t, err)

	doc, err := NewPipeline(PipelineOptions{}).Convert(context.Background(), []byte(encoded), "https://docs.example.com/", "text/html; charset=ISO-8859-1")

	require.NoError(t, err)
	assert.Contains(t, doc.HTML, "Café")
}

func TestPipeline_Convert_Errors(t *testing.T) {
	p := NewPipeline(PipelineOptions{})

	_, err := p.Convert(context.Background(), []byte(mkdocsPage), "relative/page", "")
	assert.True(t, domain.IsInputError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Convert(ctx, []byte(mkdocsPage), "https://docs.example.com/", "")
	assert.ErrorIs(t, err, context.Canceled)
}

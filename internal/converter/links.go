package converter

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkRewriter maps a reference found in a page to its published URL
type LinkRewriter func(ref string) (string, error)

// ResolveAgainst returns a LinkRewriter resolving references against base
func ResolveAgainst(base *url.URL) LinkRewriter {
	return func(ref string) (string, error) {
		u, err := url.Parse(ref)
		if err != nil {
			return "", err
		}
		return base.ResolveReference(u).String(), nil
	}
}

// RewriteLinks passes every href, src and srcset reference in sel through
// rewrite. References that fail to rewrite are left untouched.
func RewriteLinks(sel *goquery.Selection, rewrite LinkRewriter) {
	if rewrite == nil {
		return
	}

	apply := func(attr string) func(int, *goquery.Selection) {
		return func(_ int, node *goquery.Selection) {
			if ref, ok := node.Attr(attr); ok && rewritable(ref) {
				if out, err := rewrite(ref); err == nil {
					node.SetAttr(attr, out)
				}
			}
		}
	}

	sel.Find("a[href]").Each(apply("href"))
	sel.Find("[src]").Each(apply("src"))
	sel.Find("[srcset]").Each(func(_ int, node *goquery.Selection) {
		if srcset, ok := node.Attr("srcset"); ok {
			node.SetAttr("srcset", rewriteSrcset(srcset, rewrite))
		}
	})
}

// rewritable skips in-page anchors and non-navigational schemes
func rewritable(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") {
		return false
	}
	for _, scheme := range []string{"javascript:", "mailto:", "data:", "tel:"} {
		if strings.HasPrefix(strings.ToLower(ref), scheme) {
			return false
		}
	}
	return true
}

func rewriteSrcset(srcset string, rewrite LinkRewriter) string {
	parts := strings.Split(srcset, ",")
	for i, part := range parts {
		tokens := strings.Fields(part)
		if len(tokens) == 0 {
			continue
		}
		if rewritable(tokens[0]) {
			if out, err := rewrite(tokens[0]); err == nil {
				tokens[0] = out
			}
		}
		parts[i] = strings.Join(tokens, " ")
	}
	return strings.Join(parts, ", ")
}

package storage

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/quantmind-br/docprep/internal/domain"
)

// URLFormatter resolves documentation URLs against a base location
type URLFormatter struct {
	base *url.URL
}

// NewURLFormatter parses base, which must be an absolute URL
func NewURLFormatter(base string) (*URLFormatter, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidURL, base, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %s is not absolute", domain.ErrInvalidURL, base)
	}
	return &URLFormatter{base: u}, nil
}

// FormatBaseURL returns the base without query or fragment and with a
// trailing slash on its path.
func (f *URLFormatter) FormatBaseURL() string {
	return f.baseDir().String()
}

// FormatURL resolves ref against the formatted base. Absolute references
// are returned unchanged.
func (f *URLFormatter) FormatURL(ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidURL, ref, err)
	}
	if r.IsAbs() {
		return r.String(), nil
	}
	return f.baseDir().ResolveReference(r).String(), nil
}

func (f *URLFormatter) baseDir() *url.URL {
	u := *f.base
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	return &u
}

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/docprep/internal/domain"
)

func TestURLFormatter(t *testing.T) {
	f, err := NewURLFormatter("https://example.com/docs/component/default/payments?x=1#top")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/docs/component/default/payments/", f.FormatBaseURL())

	got, err := f.FormatURL("guide/index.html")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs/component/default/payments/guide/index.html", got)

	got, err = f.FormatURL("/root.css")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/root.css", got)

	got, err = f.FormatURL("#section")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs/component/default/payments/#section", got)
}

func TestNewURLFormatter_Invalid(t *testing.T) {
	for _, base := range []string{"", "relative/path", "://bad"} {
		_, err := NewURLFormatter(base)
		assert.ErrorIs(t, err, domain.ErrInvalidURL, base)
	}
}

func TestShouldRetryStatus(t *testing.T) {
	for _, code := range []int{429, 502, 503, 504} {
		assert.True(t, ShouldRetryStatus(code), code)
	}
	for _, code := range []int{200, 400, 404, 500} {
		assert.False(t, ShouldRetryStatus(code), code)
	}
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseRetryAfter("5"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter(""))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestNewRetrier_Defaults(t *testing.T) {
	r := NewRetrier(RetrierOptions{})
	assert.Equal(t, 3, r.maxRetries)

	r = NewRetrier(RetrierOptions{MaxRetries: -1})
	assert.Equal(t, 0, r.maxRetries)
}

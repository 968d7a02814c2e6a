package converter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DetectEncoding returns the canonical charset name of an HTML page. The
// Content-Type header wins over a <meta> declaration, which wins over
// content sniffing.
func DetectEncoding(content []byte, contentType string) string {
	if name := charsetFromContentType(contentType); name != "" {
		if enc, err := htmlindex.Get(name); err == nil {
			if canonical, err := htmlindex.Name(enc); err == nil {
				return canonical
			}
		}
	}

	_, name, _ := charset.DetermineEncoding(content, "")
	if name == "" {
		return "utf-8"
	}
	return name
}

func charsetFromContentType(contentType string) string {
	for _, part := range strings.Split(contentType, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(key, "charset") {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}

// ConvertToUTF8 decodes content from its detected encoding into UTF-8
func ConvertToUTF8(content []byte, contentType string) ([]byte, error) {
	name := DetectEncoding(content, contentType)
	if name == "utf-8" {
		return content, nil
	}

	enc, err := GetEncoding(name)
	if err != nil {
		// Unknown encoding, return as-is
		return content, nil
	}

	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode %s content: %w", name, err)
	}
	return out, nil
}

// GetEncoding returns the encoding for a charset name
func GetEncoding(name string) (encoding.Encoding, error) {
	return htmlindex.Get(name)
}

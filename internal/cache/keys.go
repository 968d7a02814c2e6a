package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// KeyPrefix constants for different cache record types
const (
	PrefixCheckout = "checkout"
	PrefixPage     = "page"
)

// GenerateKey generates a cache key from a checkout directory path.
// The key is a SHA256 hash of the cleaned, slash-separated path.
func GenerateKey(path string) string {
	normalized := filepath.ToSlash(filepath.Clean(path))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// GenerateKeyWithPrefix generates a cache key with a prefix
func GenerateKeyWithPrefix(prefix, path string) string {
	return prefix + ":" + GenerateKey(path)
}

// CheckoutKey generates the index key for a checkout directory
func CheckoutKey(dir string) string {
	return GenerateKeyWithPrefix(PrefixCheckout, dir)
}

// CheckoutPrefix is the scan prefix covering every checkout record
func CheckoutPrefix() string {
	return PrefixCheckout + ":"
}

// PageKey generates the key for a fetched documentation page.
// URLs are hashed verbatim since path cleaning would alter them.
func PageKey(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	return PrefixPage + ":" + hex.EncodeToString(hash[:])
}

package domain

import (
	"context"
	"time"
)

// Resolver turns an EntityLocation into the local directory holding the entity definition
type Resolver interface {
	// Resolve returns an absolute directory path
	Resolve(ctx context.Context, loc EntityLocation) (string, error)
}

// RemoteFetcher checks out a remote repository into a target directory
type RemoteFetcher interface {
	// Checkout clones remoteURL at ref into targetDir
	Checkout(ctx context.Context, remoteURL, ref, targetDir string) (*CheckoutResult, error)
}

// RepositoryCache maps remote descriptors onto local checkouts
type RepositoryCache interface {
	// KeyFor returns the directory a descriptor is checked out into
	KeyFor(d *RemoteRepositoryDescriptor) (string, error)
	// EnsureCheckedOut returns the checkout directory, fetching it when absent
	EnsureCheckedOut(ctx context.Context, d *RemoteRepositoryDescriptor) (string, error)
}

// Preparer produces the documentation source directory of an entity
type Preparer interface {
	Prepare(ctx context.Context, entity *Entity) (string, error)
}

// Cache defines the key/value store behind the checkout index and the page cache
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL, zero means no expiry
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Scan calls fn for every key with the given prefix
	Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error
	// Close releases cache resources
	Close() error
}

package repocache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/utils"
)

var _ domain.RepositoryCache = (*Cache)(nil)

// Cache materializes remote repositories under a root directory
type Cache struct {
	root    string
	fetcher domain.RemoteFetcher
	index   *Index
	logger  *utils.Logger
	group   singleflight.Group
	now     func() time.Time
}

// Options contains options for creating a Cache
type Options struct {
	Root    string
	Fetcher domain.RemoteFetcher
	Index   *Index // optional
	Logger  *utils.Logger
}

// New creates a Cache rooted at opts.Root
func New(opts Options) (*Cache, error) {
	if opts.Root == "" {
		return nil, domain.NewValidationError("cache.directory", "cache root is required")
	}
	if opts.Fetcher == nil {
		return nil, domain.NewValidationError("fetcher", "remote fetcher is required")
	}

	root, err := filepath.Abs(utils.ExpandPath(opts.Root))
	if err != nil {
		return nil, fmt.Errorf("resolve cache root: %w", err)
	}

	return &Cache{
		root:    root,
		fetcher: opts.Fetcher,
		index:   opts.Index,
		logger:  opts.Logger.OrNop().WithComponent("repocache"),
		now:     time.Now,
	}, nil
}

// Root returns the absolute cache root
func (c *Cache) Root() string {
	return c.root
}

// KeyFor returns <root>/<host>/<owner>/<repo>/<ref>. The file path of the
// descriptor does not take part in the key. A host port is kept as host_port
// so the key stays a portable path.
func (c *Cache) KeyFor(d *domain.RemoteRepositoryDescriptor) (string, error) {
	if d == nil {
		return "", domain.NewInputError("missing repository descriptor", nil)
	}

	ref := d.Ref
	if ref == "" {
		ref = domain.DefaultRef
	}

	host := strings.ReplaceAll(d.SourceHost, ":", "_")
	segments := []string{host, d.Owner, d.RepoName, ref}
	for _, s := range segments {
		if !utils.IsSafeSegment(s) {
			return "", domain.NewInputError(fmt.Sprintf("invalid repository descriptor segment %q", s), nil)
		}
	}

	return filepath.Join(append([]string{c.root}, segments...)...), nil
}

// EnsureCheckedOut returns the checkout directory for d, cloning it first when
// no directory exists at its key.
func (c *Cache) EnsureCheckedOut(ctx context.Context, d *domain.RemoteRepositoryDescriptor) (string, error) {
	key, err := c.KeyFor(d)
	if err != nil {
		return "", err
	}

	if utils.DirExists(key) {
		c.logger.Debug().Str("key", key).Msg("Checkout cache hit")
		return key, nil
	}

	// The clone outlives a cancelled caller so joined callers are not failed
	// by it; the fetcher timeout still bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return key, c.publish(fetchCtx, d, key)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			c.logger.Debug().Str("key", key).Msg("Joined in-flight checkout")
		}
		return key, nil
	}
}

// publish clones d into a temporary sibling of key and renames it onto key
func (c *Cache) publish(ctx context.Context, d *domain.RemoteRepositoryDescriptor, key string) error {
	if utils.DirExists(key) {
		return nil
	}

	parent := filepath.Dir(key)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.MkdirTemp(parent, "."+filepath.Base(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	c.logger.Info().
		Str("url", d.CloneURL()).
		Str("ref", d.Ref).
		Msg("Checkout cache miss")

	res, err := c.fetcher.Checkout(ctx, d.CloneURL(), d.Ref, tmp)
	if err != nil {
		return err
	}

	if err := os.Rename(tmp, key); err != nil {
		// Another writer may have published the same key first.
		if utils.DirExists(key) {
			return nil
		}
		return fmt.Errorf("publish checkout: %w", err)
	}

	c.record(ctx, d, key, res)
	return nil
}

func (c *Cache) record(ctx context.Context, d *domain.RemoteRepositoryDescriptor, key string, res *domain.CheckoutResult) {
	if c.index == nil {
		return
	}

	rec := domain.CheckoutRecord{
		Key:       key,
		URL:       d.CloneURL(),
		Ref:       d.Ref,
		FetchedAt: c.now(),
	}
	if res != nil {
		rec.Commit = res.Commit
		rec.Method = res.Method
	}

	if err := c.index.Record(ctx, rec); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to record checkout")
	}
}

// Lookup returns the index record of the checkout for d
func (c *Cache) Lookup(ctx context.Context, d *domain.RemoteRepositoryDescriptor) (*domain.CheckoutRecord, error) {
	key, err := c.KeyFor(d)
	if err != nil {
		return nil, err
	}
	if !utils.DirExists(key) {
		return nil, fmt.Errorf("%w: no checkout at %s", domain.ErrNotFound, key)
	}
	if c.index == nil {
		return &domain.CheckoutRecord{Key: key, URL: d.CloneURL(), Ref: d.Ref}, nil
	}

	rec, err := c.index.Lookup(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.CheckoutRecord{Key: key, URL: d.CloneURL(), Ref: d.Ref}, nil
	}
	return rec, err
}

// List returns the recorded checkouts that still exist on disk
func (c *Cache) List(ctx context.Context) ([]domain.CheckoutRecord, error) {
	if c.index == nil {
		return nil, nil
	}
	records, err := c.index.List(ctx)
	if err != nil {
		return nil, err
	}
	existing := records[:0]
	for _, r := range records {
		if utils.DirExists(r.Key) {
			existing = append(existing, r)
		}
	}
	return existing, nil
}

// Clear removes every checkout under the root and empties the index
func (c *Cache) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(c.root)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.root, e.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
	}
	if c.index != nil {
		return c.index.Clear()
	}
	return nil
}

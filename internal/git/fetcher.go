package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/utils"
)

// Client defines the clone operation the fetcher needs from go-git
type Client interface {
	PlainCloneContext(ctx context.Context, path string, isBare bool, o *git.CloneOptions) (*git.Repository, error)
}

// RealClient implements Client using go-git
type RealClient struct{}

// NewClient creates a new RealClient
func NewClient() *RealClient {
	return &RealClient{}
}

// PlainCloneContext calls git.PlainCloneContext
func (c *RealClient) PlainCloneContext(ctx context.Context, path string, isBare bool, o *git.CloneOptions) (*git.Repository, error) {
	return git.PlainCloneContext(ctx, path, isBare, o)
}

// Checkout methods reported in domain.CheckoutResult
const (
	MethodDefault  = "default"
	MethodBranch   = "branch"
	MethodTag      = "tag"
	MethodRevision = "revision"
)

// DefaultTimeout bounds a single checkout
const DefaultTimeout = 5 * time.Minute

var _ domain.RemoteFetcher = (*CloneFetcher)(nil)

// CloneFetcher checks out repositories with go-git
type CloneFetcher struct {
	client   Client
	logger   *utils.Logger
	depth    int
	timeout  time.Duration
	progress io.Writer
}

// CloneFetcherOptions contains options for creating a CloneFetcher
type CloneFetcherOptions struct {
	Client   Client
	Logger   *utils.Logger
	Depth    int           // Clone depth for branch/tag checkouts, 0 means full history
	Timeout  time.Duration // Zero means DefaultTimeout, negative disables the timeout
	Progress io.Writer     // Receives git sideband progress, may be nil
}

// NewCloneFetcher creates a new CloneFetcher
func NewCloneFetcher(opts CloneFetcherOptions) *CloneFetcher {
	client := opts.Client
	if client == nil {
		client = NewClient()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &CloneFetcher{
		client:   client,
		logger:   opts.Logger.OrNop().WithComponent("fetcher"),
		depth:    opts.Depth,
		timeout:  timeout,
		progress: opts.Progress,
	}
}

// Checkout clones remoteURL into targetDir and checks out ref.
// A branch is tried first, then a tag, then an arbitrary revision on a full clone.
// Every failure is returned as a *domain.FetchError.
func (f *CloneFetcher) Checkout(ctx context.Context, remoteURL, ref, targetDir string) (*domain.CheckoutResult, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	f.logger.Info().
		Str("url", remoteURL).
		Str("ref", ref).
		Str("dir", targetDir).
		Msg("Cloning repository")

	res, err := f.checkout(ctx, remoteURL, ref, targetDir)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", domain.ErrTimeout, f.timeout, err)
		}
		return nil, domain.NewFetchError(remoteURL, 0, err)
	}

	f.logger.Debug().
		Str("url", remoteURL).
		Str("commit", res.Commit).
		Str("method", res.Method).
		Msg("Repository checked out")

	return res, nil
}

func (f *CloneFetcher) checkout(ctx context.Context, remoteURL, ref, targetDir string) (*domain.CheckoutResult, error) {
	if ref == "" || ref == domain.DefaultRef {
		repo, err := f.clone(ctx, targetDir, &git.CloneOptions{
			URL:   remoteURL,
			Depth: f.depth,
		})
		if err != nil {
			return nil, err
		}
		return result(repo, targetDir, domain.DefaultRef, MethodDefault), nil
	}

	candidates := []struct {
		name   plumbing.ReferenceName
		method string
	}{
		{plumbing.NewBranchReferenceName(ref), MethodBranch},
		{plumbing.NewTagReferenceName(ref), MethodTag},
	}

	for _, cand := range candidates {
		repo, err := f.clone(ctx, targetDir, &git.CloneOptions{
			URL:           remoteURL,
			ReferenceName: cand.name,
			SingleBranch:  true,
			Depth:         f.depth,
		})
		if err == nil {
			return result(repo, targetDir, ref, cand.method), nil
		}
		if !isRefNotFound(err) {
			return nil, err
		}
		f.logger.Debug().Str("ref", cand.name.String()).Msg("Reference not found on remote")
		if err := resetDir(targetDir); err != nil {
			return nil, err
		}
	}

	repo, err := f.clone(ctx, targetDir, &git.CloneOptions{URL: remoteURL})
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolve revision %s: %w", ref, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return nil, fmt.Errorf("checkout %s: %w", ref, err)
	}

	return result(repo, targetDir, ref, MethodRevision), nil
}

func (f *CloneFetcher) clone(ctx context.Context, dir string, opts *git.CloneOptions) (*git.Repository, error) {
	if f.progress != nil {
		opts.Progress = f.progress
	}
	return f.client.PlainCloneContext(ctx, dir, false, opts)
}

func result(repo *git.Repository, dir, ref, method string) *domain.CheckoutResult {
	res := &domain.CheckoutResult{
		Dir:    dir,
		Ref:    ref,
		Method: method,
	}
	if head, err := repo.Head(); err == nil {
		res.Commit = head.Hash().String()
	}
	return res
}

func isRefNotFound(err error) bool {
	return errors.Is(err, plumbing.ErrReferenceNotFound) ||
		errors.Is(err, git.NoMatchingRefSpecError{})
}

// resetDir empties dir so a new clone attempt starts clean
func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

package resolver

import (
	"context"
	"path/filepath"

	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/git"
)

// GitHubResolver materializes remote repositories through a repository cache
type GitHubResolver struct {
	cache domain.RepositoryCache
}

// NewGitHubResolver creates a resolver backed by cache
func NewGitHubResolver(cache domain.RepositoryCache) *GitHubResolver {
	return &GitHubResolver{cache: cache}
}

// Resolve checks out the repository named by loc and returns the directory
// holding the referenced file. A location without a file path resolves to
// the checkout root itself, not to dirname(root), which would point at the
// parent of the cache key and outside the checkout.
func (g *GitHubResolver) Resolve(ctx context.Context, loc domain.EntityLocation) (string, error) {
	d, err := git.ParseRemoteLocation(loc.Location)
	if err != nil {
		return "", err
	}

	root, err := g.cache.EnsureCheckedOut(ctx, d)
	if err != nil {
		return "", err
	}

	if d.FilePath == "" {
		return root, nil
	}
	return filepath.Dir(filepath.Join(root, filepath.FromSlash(d.FilePath))), nil
}

// Package mocks provides test doubles for the docprep interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/mock"
)

// MockGitClient mocks the git.Client interface
type MockGitClient struct {
	mock.Mock
}

// PlainCloneContext records the clone request and returns the configured repository
func (m *MockGitClient) PlainCloneContext(ctx context.Context, path string, isBare bool, o *git.CloneOptions) (*git.Repository, error) {
	args := m.Called(ctx, path, isBare, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*git.Repository), args.Error(1)
}

// NewMemoryRepository returns an in-memory repository holding a single commit
// with the given files, and the hash of that commit.
func NewMemoryRepository(files map[string]string) (*git.Repository, string, error) {
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	if err != nil {
		return nil, "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, "", err
	}

	if len(files) == 0 {
		files = map[string]string{"README.md": "# repo\n"}
	}
	for name, content := range files {
		f, err := fs.Create(name)
		if err != nil {
			return nil, "", err
		}
		if _, err := f.Write([]byte(content)); err != nil {
			return nil, "", err
		}
		if err := f.Close(); err != nil {
			return nil, "", err
		}
		if _, err := wt.Add(name); err != nil {
			return nil, "", err
		}
	}

	hash, err := wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Unix(1700000000, 0)},
	})
	if err != nil {
		return nil, "", err
	}

	return repo, hash.String(), nil
}

package preparer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/preparer"
	"github.com/quantmind-br/docprep/internal/repocache"
	"github.com/quantmind-br/docprep/internal/resolver"
	"github.com/quantmind-br/docprep/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newEntity(annotations map[string]string) *domain.Entity {
	return &domain.Entity{
		APIVersion: "backstage.io/v1alpha1",
		Kind:       "Component",
		Metadata: domain.EntityMetadata{
			Name:        "payments",
			Annotations: annotations,
		},
	}
}

func TestPrepare_FileProtocol(t *testing.T) {
	p := preparer.New(resolver.NewDefaultRegistry(nil, nil), preparer.Options{})

	dir, err := p.Prepare(context.Background(), newEntity(map[string]string{
		domain.ManagedByLocationKey: "file:/repo/catalog-info.yaml",
		domain.TechDocsRefKey:       "file:docs",
	}))

	require.NoError(t, err)
	assert.Equal(t, "/repo/docs", dir)
}

func TestPrepare_GitHubProtocol(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockRemoteFetcher(ctrl)
	fetcher.EXPECT().
		Checkout(gomock.Any(), "https://github.com/org/repo.git", "main", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, ref, dir string) (*domain.CheckoutResult, error) {
			return &domain.CheckoutResult{Dir: dir, Ref: ref}, nil
		}).
		Times(1)

	root := t.TempDir()
	repoCache, err := repocache.New(repocache.Options{Root: root, Fetcher: fetcher})
	require.NoError(t, err)

	p := preparer.New(resolver.NewDefaultRegistry(repoCache, nil), preparer.Options{})
	entity := newEntity(map[string]string{
		domain.ManagedByLocationKey: "github:https://github.com/org/repo/blob/main/catalog-info.yaml",
		domain.TechDocsRefKey:       "dir:./docs/",
	})

	dir, err := p.Prepare(context.Background(), entity)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "github.com", "org", "repo", "main", "docs"), dir)

	// the checkout is reused
	again, err := p.Prepare(context.Background(), entity)
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestPrepare_MissingAnnotationPerformsNoResolution(t *testing.T) {
	tests := []struct {
		name        string
		annotations map[string]string
	}{
		{
			name:        "missing managed-by",
			annotations: map[string]string{domain.TechDocsRefKey: "dir:."},
		},
		{
			name:        "missing techdocs-ref",
			annotations: map[string]string{domain.ManagedByLocationKey: "github:https://github.com/org/repo/blob/main/catalog-info.yaml"},
		},
		{
			name: "malformed managed-by",
			annotations: map[string]string{
				domain.ManagedByLocationKey: "catalog-info.yaml",
				domain.TechDocsRefKey:       "dir:.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := mocks.NewMockResolver(ctrl)
			r.EXPECT().Resolve(gomock.Any(), gomock.Any()).Times(0)

			_, err := preparer.New(r, preparer.Options{}).Prepare(context.Background(), newEntity(tt.annotations))

			require.Error(t, err)
			assert.True(t, domain.IsInputError(err))
		})
	}
}

func TestPrepare_UnsupportedProtocol(t *testing.T) {
	p := preparer.New(resolver.NewDefaultRegistry(nil, nil), preparer.Options{})

	_, err := p.Prepare(context.Background(), newEntity(map[string]string{
		domain.ManagedByLocationKey: "url:https://example.com/catalog-info.yaml",
		domain.TechDocsRefKey:       "dir:.",
	}))

	require.Error(t, err)
	assert.True(t, domain.IsInputError(err))
	assert.Contains(t, err.Error(), "unable to resolve location type url")
}

func TestPrepare_AbsoluteDocsRef(t *testing.T) {
	p := preparer.New(resolver.NewDefaultRegistry(nil, nil), preparer.Options{})

	dir, err := p.Prepare(context.Background(), newEntity(map[string]string{
		domain.ManagedByLocationKey: "file:/repo/catalog-info.yaml",
		domain.TechDocsRefKey:       "dir:/srv/docs/../handbook",
	}))

	require.NoError(t, err)
	assert.Equal(t, "/srv/handbook", dir)
}

func TestPrepare_RequireExisting(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "docs"), 0755))
	p := preparer.New(resolver.NewDefaultRegistry(nil, nil), preparer.Options{RequireExisting: true})

	t.Run("existing directory", func(t *testing.T) {
		dir, err := p.Prepare(context.Background(), newEntity(map[string]string{
			domain.ManagedByLocationKey: "file:" + filepath.Join(repo, "catalog-info.yaml"),
			domain.TechDocsRefKey:       "dir:docs",
		}))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(repo, "docs"), dir)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := p.Prepare(context.Background(), newEntity(map[string]string{
			domain.ManagedByLocationKey: "file:" + filepath.Join(repo, "catalog-info.yaml"),
			domain.TechDocsRefKey:       "dir:handbook",
		}))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.True(t, domain.IsInputError(err))
	})
}

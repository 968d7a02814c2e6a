package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/docprep/internal/app"
	"github.com/quantmind-br/docprep/internal/cache"
	"github.com/quantmind-br/docprep/internal/config"
	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/utils"
	"github.com/quantmind-br/docprep/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Directory = filepath.Join(t.TempDir(), "checkouts")
	cfg.Cache.IndexDirectory = filepath.Join(t.TempDir(), "index")
	cfg.Concurrency.Workers = 3
	return cfg
}

func newApp(t *testing.T, cfg *config.Config, fetcher domain.RemoteFetcher, mutate func(*app.Options)) *app.App {
	t.Helper()
	store, err := cache.NewBadgerCache(cache.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	opts := app.Options{
		Config:  cfg,
		Logger:  utils.NewNopLogger(),
		Fetcher: fetcher,
		Store:   store,
	}
	if mutate != nil {
		mutate(&opts)
	}

	a, err := app.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func writeCheckout(_ context.Context, _, ref, dir string) (*domain.CheckoutResult, error) {
	if err := os.MkdirAll(filepath.Join(dir, "docs"), 0755); err != nil {
		return nil, err
	}
	return &domain.CheckoutResult{Dir: dir, Ref: ref, Commit: "0123abcd", Method: "branch"}, nil
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := app.New(app.Options{})
	assert.Error(t, err)
}

func TestNew_OpensIndexOnDisk(t *testing.T) {
	cfg := testConfig(t)

	a, err := app.New(app.Options{Config: cfg, Logger: utils.NewNopLogger()})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.DirExists(t, cfg.Cache.IndexDirectory)
}

func TestNew_IndexHeldByAnotherProcess(t *testing.T) {
	cfg := testConfig(t)
	holder, err := cache.NewBadgerCache(cache.Options{Directory: cfg.Cache.IndexDirectory})
	require.NoError(t, err)
	defer holder.Close()

	a, err := app.New(app.Options{Config: cfg, Logger: utils.NewNopLogger()})
	require.NoError(t, err)
	defer a.Close()

	dir, err := a.Resolve(context.Background(), "file:/repo/catalog-info.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/repo", dir)

	_, err = a.Checkouts(context.Background())
	assert.ErrorIs(t, err, cache.ErrLocked)
	assert.Contains(t, err.Error(), cfg.Cache.IndexDirectory)

	assert.ErrorIs(t, a.ClearCheckouts(context.Background()), cache.ErrLocked)
}

func TestApp_PrepareFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockRemoteFetcher(ctrl)
	fetcher.EXPECT().
		Checkout(gomock.Any(), "https://github.com/org/repo.git", "main", gomock.Any()).
		DoAndReturn(writeCheckout).
		Times(1)

	cfg := testConfig(t)
	a := newApp(t, cfg, fetcher, nil)

	repo := t.TempDir()
	catalogFile := filepath.Join(repo, "catalog-info.yaml")
	require.NoError(t, os.WriteFile(catalogFile, []byte(`
kind: Component
metadata:
  name: local
  annotations:
    backstage.io/techdocs-ref: dir:.
---
kind: Component
metadata:
  name: remote-a
  annotations:
    backstage.io/managed-by-location: github:https://github.com/org/repo/blob/main/catalog-info.yaml
    backstage.io/techdocs-ref: dir:docs
---
kind: Component
metadata:
  name: remote-b
  annotations:
    backstage.io/managed-by-location: github:https://github.com/org/repo/blob/main/services/b/catalog-info.yaml
    backstage.io/techdocs-ref: dir:../../docs
---
kind: Component
metadata:
  name: undocumented
`), 0644))

	results, err := a.PrepareFiles(context.Background(), []string{catalogFile})
	require.NoError(t, err)
	require.Len(t, results, 4)

	checkout := filepath.Join(a.CacheRoot(), "github.com", "org", "repo", "main")

	assert.Equal(t, "component:default/local", results[0].EntityRef)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, repo, results[0].Dir)

	assert.NoError(t, results[1].Err)
	assert.Equal(t, filepath.Join(checkout, "docs"), results[1].Dir)

	assert.NoError(t, results[2].Err)
	assert.Equal(t, filepath.Join(checkout, "docs"), results[2].Dir)

	assert.Equal(t, "component:default/undocumented", results[3].EntityRef)
	assert.True(t, domain.IsInputError(results[3].Err))

	records, err := a.Checkouts(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, checkout, records[0].Key)
	assert.Equal(t, "0123abcd", records[0].Commit)

	rec, err := a.Lookup(context.Background(), "https://github.com/org/repo@main")
	require.NoError(t, err)
	assert.Equal(t, checkout, rec.Key)

	_, err = a.Lookup(context.Background(), "https://github.com/org/repo@v2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, a.ClearCheckouts(context.Background()))
	assert.NoDirExists(t, checkout)
	records, err = a.Checkouts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestApp_PrepareFiles_MissingCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newApp(t, testConfig(t), mocks.NewMockRemoteFetcher(ctrl), nil)

	_, err := a.PrepareFiles(context.Background(), []string{"/nonexistent/catalog-info.yaml"})
	assert.Error(t, err)
}

func TestApp_PrepareAll_FetchFailureIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockRemoteFetcher(ctrl)
	fetcher.EXPECT().
		Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.NewFetchError("https://github.com/org/broken.git", 0, errors.New("repository not found")))

	a := newApp(t, testConfig(t), fetcher, nil)

	entities := []domain.Entity{
		{Kind: "Component", Metadata: domain.EntityMetadata{Name: "broken", Annotations: map[string]string{
			domain.ManagedByLocationKey: "github:https://github.com/org/broken/blob/main/catalog-info.yaml",
			domain.TechDocsRefKey:       "dir:.",
		}}},
		{Kind: "Component", Metadata: domain.EntityMetadata{Name: "fine", Annotations: map[string]string{
			domain.ManagedByLocationKey: "file:/repo/catalog-info.yaml",
			domain.TechDocsRefKey:       "dir:docs",
		}}},
	}

	results, err := a.PrepareAll(context.Background(), entities)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, domain.IsFetchError(results[0].Err))
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "/repo/docs", results[1].Dir)
}

func TestApp_RequireExistingOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	enabled := true
	a := newApp(t, testConfig(t), mocks.NewMockRemoteFetcher(ctrl), func(o *app.Options) {
		o.RequireExisting = &enabled
	})

	_, err := a.Prepare(context.Background(), &domain.Entity{
		Kind: "Component",
		Metadata: domain.EntityMetadata{Name: "x", Annotations: map[string]string{
			domain.ManagedByLocationKey: "file:/nonexistent/catalog-info.yaml",
			domain.TechDocsRefKey:       "dir:docs",
		}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApp_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newApp(t, testConfig(t), mocks.NewMockRemoteFetcher(ctrl), nil)

	dir, err := a.Resolve(context.Background(), "file:/a/b/doc.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/a/b", dir)

	_, err = a.Resolve(context.Background(), "unknown:whatever")
	var unsupported *domain.UnsupportedProtocolError
	assert.ErrorAs(t, err, &unsupported)

	_, err = a.Resolve(context.Background(), "no-protocol")
	assert.True(t, domain.IsInputError(err))
}

func TestApp_FetchDocs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/docs/component/default/payments/guides/index.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><article><h1>Guides</h1><a href="setup/">Setup</a><img src="../img/a.png"></article></body></html>`))
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.Storage.APIOrigin = server.URL + "/docs"
	ctrl := gomock.NewController(t)
	a := newApp(t, cfg, mocks.NewMockRemoteFetcher(ctrl), nil)

	name := domain.EntityName{Kind: "component", Namespace: "default", Name: "payments"}
	assert.Equal(t, server.URL+"/docs", a.StorageOrigin())

	doc, err := a.FetchDocs(context.Background(), name, "guides", false)
	require.NoError(t, err)
	assert.Equal(t, "Guides", doc.Title)
	assert.Contains(t, doc.HTML, `href="`+server.URL+`/docs/component/default/payments/guides/setup/"`)
	assert.Contains(t, doc.HTML, `src="`+server.URL+`/docs/component/default/payments/img/a.png"`)

	md, err := a.FetchDocs(context.Background(), name, "guides", true)
	require.NoError(t, err)
	assert.Contains(t, md.Markdown, "# Guides")

	_, err = a.FetchDocs(context.Background(), name, "missing", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Package app wires configuration, the checkout cache, the resolvers and
// the storage client into the operations exposed by the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quantmind-br/docprep/internal/cache"
	"github.com/quantmind-br/docprep/internal/catalog"
	"github.com/quantmind-br/docprep/internal/config"
	"github.com/quantmind-br/docprep/internal/converter"
	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/git"
	"github.com/quantmind-br/docprep/internal/preparer"
	"github.com/quantmind-br/docprep/internal/repocache"
	"github.com/quantmind-br/docprep/internal/resolver"
	"github.com/quantmind-br/docprep/internal/storage"
	"github.com/quantmind-br/docprep/internal/utils"
)

// App coordinates documentation directory preparation
type App struct {
	config   *config.Config
	logger   *utils.Logger
	store    domain.Cache
	ownStore bool
	repos    *repocache.Cache
	registry *resolver.Registry
	preparer *preparer.DirectoryPreparer
	loader   *catalog.Loader
	storage  *storage.Client
	progress io.Writer
	// indexBusy is set when another process holds the checkout index
	indexBusy bool
}

// Options contains options for creating an App
type Options struct {
	Config  *config.Config
	Logger  *utils.Logger
	Verbose bool

	// RequireExisting overrides prepare.require_existing when set
	RequireExisting *bool

	// Fetcher replaces the go-git fetcher (e.g., for testing)
	Fetcher domain.RemoteFetcher
	// Store replaces the badger store opened at cache.index_directory
	Store domain.Cache
	// HTTPClient replaces the storage client's HTTP client
	HTTPClient *http.Client
	// Progress receives progress bars and clone progress, may be nil
	Progress io.Writer
}

// New creates an App from opts
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	a := &App{
		config:   cfg,
		logger:   logger,
		loader:   catalog.NewLoader(catalog.Options{StampLocation: true}),
		progress: opts.Progress,
	}

	a.store = opts.Store
	if a.store == nil && cfg.Cache.Index {
		store, err := cache.NewBadgerCache(cache.Options{
			Directory: utils.ExpandPath(cfg.Cache.IndexDirectory),
		})
		switch {
		case errors.Is(err, cache.ErrLocked):
			// Checkouts still work; only the index and page cache are skipped
			logger.Warn().
				Str("directory", cfg.Cache.IndexDirectory).
				Msg("Checkout index is in use by another docprep process, continuing without it")
			a.indexBusy = true
		case err != nil:
			return nil, fmt.Errorf("failed to open checkout index: %w", err)
		default:
			a.store = store
			a.ownStore = true
		}
	}

	var index *repocache.Index
	if a.store != nil {
		index = repocache.NewIndex(a.store)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = git.NewCloneFetcher(git.CloneFetcherOptions{
			Logger:   logger,
			Depth:    cfg.Git.Depth,
			Timeout:  cfg.Git.Timeout,
			Progress: opts.Progress,
		})
	}

	repos, err := repocache.New(repocache.Options{
		Root:    cfg.Cache.Directory,
		Fetcher: fetcher,
		Index:   index,
		Logger:  logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.repos = repos
	a.registry = resolver.NewDefaultRegistry(repos, logger)

	requireExisting := cfg.Prepare.RequireExisting
	if opts.RequireExisting != nil {
		requireExisting = *opts.RequireExisting
	}
	a.preparer = preparer.New(a.registry, preparer.Options{
		RequireExisting: requireExisting,
		Logger:          logger,
	})

	a.storage, err = storage.NewClient(storage.ClientOptions{
		APIOrigin:  cfg.Storage.APIOrigin,
		Timeout:    cfg.Storage.Timeout,
		MaxRetries: storageRetries(cfg.Storage.MaxRetries),
		Cache:      a.store,
		CacheTTL:   cfg.Storage.CacheTTL,
		HTTPClient: opts.HTTPClient,
		Logger:     logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// storageRetries maps the configured retry count to client options, where
// zero selects the default and a negative value disables retries
func storageRetries(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

// Close releases the checkout index
func (a *App) Close() error {
	if a.ownStore && a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Logger returns the application logger
func (a *App) Logger() *utils.Logger {
	return a.logger
}

// CacheRoot returns the absolute checkout cache root
func (a *App) CacheRoot() string {
	return a.repos.Root()
}

// Prepare returns the documentation source directory of entity
func (a *App) Prepare(ctx context.Context, entity *domain.Entity) (string, error) {
	return a.preparer.Prepare(ctx, entity)
}

// PrepareAll prepares entities concurrently. A failing entity is reported in
// its result and does not stop the others. Results keep the input order.
func (a *App) PrepareAll(ctx context.Context, entities []domain.Entity) ([]domain.PrepareResult, error) {
	start := time.Now()

	bar := utils.NewProgressBar(len(entities), utils.DescPreparing, a.progress)
	pool := utils.NewPool(a.config.Concurrency.Workers, func(ctx context.Context, e domain.Entity) domain.PrepareResult {
		dir, err := a.preparer.Prepare(ctx, &e)
		if err != nil {
			a.logger.WithEntity(e.Ref()).Error().Err(err).Msg("Failed to prepare documentation directory")
		}
		return domain.PrepareResult{EntityRef: e.Ref(), Dir: dir, Err: err}
	}).OnDone(func(domain.PrepareResult) {
		_ = bar.Add(1)
	})

	results, err := pool.Process(ctx, entities)
	_ = bar.Finish()

	failed := 0
	for i := range results {
		if results[i].EntityRef == "" {
			// never started because ctx was cancelled
			results[i] = domain.PrepareResult{EntityRef: entities[i].Ref(), Err: err}
		}
		if results[i].Err != nil {
			failed++
		}
	}

	a.logger.Info().
		Int("entities", len(entities)).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Preparation completed")

	return results, err
}

// LoadCatalogs loads the entities described by the given catalog files
func (a *App) LoadCatalogs(paths []string) ([]domain.Entity, error) {
	var entities []domain.Entity
	for _, p := range paths {
		loaded, err := a.loader.Load(p)
		if err != nil {
			return nil, err
		}
		entities = append(entities, loaded...)
	}
	return entities, nil
}

// PrepareFiles loads catalog files and prepares every entity they define
func (a *App) PrepareFiles(ctx context.Context, paths []string) ([]domain.PrepareResult, error) {
	entities, err := a.LoadCatalogs(paths)
	if err != nil {
		return nil, err
	}
	return a.PrepareAll(ctx, entities)
}

// Resolve resolves a "protocol:location" reference to a directory
func (a *App) Resolve(ctx context.Context, ref string) (string, error) {
	protocol, location, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok || protocol == "" || location == "" {
		return "", domain.NewInputError(fmt.Sprintf("failure to parse either protocol or location from %q", ref), nil)
	}
	return a.registry.Resolve(ctx, domain.EntityLocation{Protocol: protocol, Location: location})
}

// Checkouts lists the recorded checkouts present in the cache
func (a *App) Checkouts(ctx context.Context) ([]domain.CheckoutRecord, error) {
	if err := a.indexAvailable(); err != nil {
		return nil, err
	}
	return a.repos.List(ctx)
}

// indexAvailable fails when the index is held by another process, since
// listing or clearing without it would silently miss records
func (a *App) indexAvailable() error {
	if a.indexBusy {
		return fmt.Errorf("checkout index %s: %w, retry when it finishes",
			a.config.Cache.IndexDirectory, cache.ErrLocked)
	}
	return nil
}

// Lookup returns the checkout of a remote location given as <url>[@ref]
func (a *App) Lookup(ctx context.Context, location string) (*domain.CheckoutRecord, error) {
	loc, ref := splitRef(location)
	d, err := git.ParseRemoteLocation(loc)
	if err != nil {
		return nil, err
	}
	if ref != "" {
		d.Ref = ref
	}
	return a.repos.Lookup(ctx, d)
}

// splitRef splits a trailing @ref off the last path segment
func splitRef(location string) (string, string) {
	at := strings.LastIndex(location, "@")
	if at <= strings.LastIndex(location, "/") {
		return location, ""
	}
	return location[:at], location[at+1:]
}

// StorageOrigin returns the documentation storage origin used by FetchDocs
func (a *App) StorageOrigin() string {
	return a.storage.APIOrigin()
}

// ClearCheckouts removes every checkout and its index records
func (a *App) ClearCheckouts(ctx context.Context) error {
	if err := a.indexAvailable(); err != nil {
		return err
	}
	if err := a.repos.Clear(ctx); err != nil {
		return err
	}
	a.logger.Info().Str("root", a.repos.Root()).Msg("Checkout cache cleared")
	return nil
}

// FetchDocs fetches a rendered documentation page of an entity and rewrites
// its links against the storage location. markdown additionally converts the
// page content to Markdown.
func (a *App) FetchDocs(ctx context.Context, name domain.EntityName, path string, markdown bool) (*converter.Document, error) {
	page, err := a.storage.GetEntityDocs(ctx, name, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no documentation for %s at %q: %w", name, path, err)
		}
		return nil, err
	}

	pipeline := converter.NewPipeline(converter.PipelineOptions{
		Markdown: markdown,
		RewriteLink: func(ref string) (string, error) {
			return a.storage.BaseURL(ref, name, path)
		},
	})
	return pipeline.Convert(ctx, page.Body, page.URL, page.ContentType)
}

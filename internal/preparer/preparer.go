// Package preparer locates the documentation source directory of an entity.
package preparer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/docprep/internal/annotation"
	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/utils"
)

var _ domain.Preparer = (*DirectoryPreparer)(nil)

// Options configures a DirectoryPreparer
type Options struct {
	// RequireExisting makes Prepare fail when the composed directory is absent
	RequireExisting bool
	Logger          *utils.Logger
}

// DirectoryPreparer combines an entity's managed-by location with its
// documentation reference into an absolute directory.
type DirectoryPreparer struct {
	resolver        domain.Resolver
	requireExisting bool
	logger          *utils.Logger
}

// New creates a DirectoryPreparer that resolves managed-by locations with r
func New(r domain.Resolver, opts Options) *DirectoryPreparer {
	return &DirectoryPreparer{
		resolver:        r,
		requireExisting: opts.RequireExisting,
		logger:          opts.Logger.OrNop().WithComponent("preparer"),
	}
}

// Prepare returns the absolute documentation source directory of entity.
// Both annotations are parsed before anything is resolved, so a missing or
// malformed annotation fails without filesystem or network access.
func (p *DirectoryPreparer) Prepare(ctx context.Context, entity *domain.Entity) (string, error) {
	managedBy, err := annotation.ManagedByLocation(entity)
	if err != nil {
		return "", err
	}
	docsRef, err := annotation.TechDocsRef(entity)
	if err != nil {
		return "", err
	}

	log := p.logger.WithEntity(entity.Ref())
	log.Debug().
		Str("managed_by", managedBy.String()).
		Str("techdocs_ref", docsRef.String()).
		Msg("Preparing documentation directory")

	base, err := p.resolver.Resolve(ctx, managedBy)
	if err != nil {
		return "", err
	}

	dir, err := compose(base, docsRef.Location)
	if err != nil {
		return "", err
	}

	if p.requireExisting && !utils.DirExists(dir) {
		return "", domain.NewInputError(
			fmt.Sprintf("documentation directory for entity %s does not exist", entity.Ref()),
			fmt.Errorf("%w: %s", domain.ErrNotFound, dir))
	}

	log.Info().Str("dir", dir).Msg("Prepared documentation directory")
	return dir, nil
}

// compose joins the relative fragment onto base. An absolute fragment
// replaces base.
func compose(base, fragment string) (string, error) {
	fragment = filepath.FromSlash(fragment)
	if filepath.IsAbs(fragment) {
		return filepath.Clean(fragment), nil
	}
	dir, err := filepath.Abs(filepath.Join(base, fragment))
	if err != nil {
		return "", fmt.Errorf("compose documentation directory: %w", err)
	}
	return dir, nil
}

// Package resolver maps an entity location to a local directory.
//
// Each location protocol is served by its own domain.Resolver. The Registry
// dispatches on the protocol name and fails with an
// UnsupportedProtocolError for protocols nobody registered.
package resolver

import (
	"context"
	"sort"
	"sync"

	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/quantmind-br/docprep/internal/utils"
)

// Protocol names understood by the default registry
const (
	ProtocolGitHub = "github"
	ProtocolFile   = "file"
)

var _ domain.Resolver = (*Registry)(nil)

// Registry dispatches locations to the resolver registered for their protocol
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]domain.Resolver
	logger    *utils.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *utils.Logger) *Registry {
	return &Registry{
		resolvers: make(map[string]domain.Resolver),
		logger:    logger.OrNop().WithComponent("resolver"),
	}
}

// NewDefaultRegistry registers the github and file protocols
func NewDefaultRegistry(cache domain.RepositoryCache, logger *utils.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(ProtocolGitHub, NewGitHubResolver(cache))
	r.Register(ProtocolFile, NewFileResolver())
	return r
}

// Register binds protocol to res, replacing any previous binding
func (r *Registry) Register(protocol string, res domain.Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers[protocol] = res
}

// Protocols returns the registered protocol names in sorted order
func (r *Registry) Protocols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.resolvers))
	for name := range r.resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the directory containing the entity definition at loc
func (r *Registry) Resolve(ctx context.Context, loc domain.EntityLocation) (string, error) {
	r.mu.RLock()
	res, ok := r.resolvers[loc.Protocol]
	r.mu.RUnlock()

	if !ok {
		return "", domain.NewUnsupportedProtocolError(loc.Protocol)
	}

	dir, err := res.Resolve(ctx, loc)
	if err != nil {
		return "", err
	}

	r.logger.Debug().
		Str("protocol", loc.Protocol).
		Str("location", loc.Location).
		Str("dir", dir).
		Msg("Resolved location")
	return dir, nil
}

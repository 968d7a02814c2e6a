package resolver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/docprep/internal/domain"
)

// FileResolver resolves local file locations without touching the filesystem
type FileResolver struct{}

// NewFileResolver creates a FileResolver
func NewFileResolver() *FileResolver {
	return &FileResolver{}
}

// Resolve returns the absolute parent directory of loc.Location
func (FileResolver) Resolve(_ context.Context, loc domain.EntityLocation) (string, error) {
	if loc.Location == "" {
		return "", domain.NewInputError("empty file location", nil)
	}

	dir, err := filepath.Abs(filepath.Dir(filepath.FromSlash(loc.Location)))
	if err != nil {
		return "", domain.NewInputError(fmt.Sprintf("invalid file location %s", loc.Location), err)
	}
	return dir, nil
}

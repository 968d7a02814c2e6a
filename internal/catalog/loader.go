package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/docprep/internal/domain"
)

// Options configures a Loader
type Options struct {
	// StampLocation sets the managed-by annotation on entities that lack it
	StampLocation bool
}

// Loader loads and validates catalog descriptor files
type Loader struct {
	opts Options
}

// NewLoader creates a new catalog loader
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

// Load reads and parses the descriptor at path
func (l *Loader) Load(path string) ([]domain.Entity, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog descriptor: %w", err)
	}

	entities, err := l.LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if l.opts.StampLocation {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve descriptor path: %w", err)
		}
		for i := range entities {
			if _, ok := entities[i].Annotation(domain.ManagedByLocationKey); !ok {
				entities[i].SetAnnotation(domain.ManagedByLocationKey, "file:"+abs)
			}
		}
	}

	return entities, nil
}

// LoadFromBytes parses entities from raw descriptor bytes
func (l *Loader) LoadFromBytes(data []byte, ext string) ([]domain.Entity, error) {
	var (
		entities []domain.Entity
		err      error
	)

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		entities, err = decodeYAML(data)
	case ".json":
		entities, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if len(entities) == 0 {
		return nil, ErrNoEntities
	}
	for i := range entities {
		if err := validate(&entities[i]); err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
	}

	return entities, nil
}

func decodeYAML(data []byte) ([]domain.Entity, error) {
	var entities []domain.Entity

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(node.Content) == 0 || node.Content[0].Tag == "!!null" {
			continue
		}

		var e domain.Entity
		if err := node.Decode(&e); err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}

	return entities, nil
}

func decodeJSON(data []byte) ([]domain.Entity, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entities []domain.Entity
		if err := json.Unmarshal(trimmed, &entities); err != nil {
			return nil, err
		}
		return entities, nil
	}

	var e domain.Entity
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return nil, err
	}
	return []domain.Entity{e}, nil
}

func validate(e *domain.Entity) error {
	if strings.TrimSpace(e.Kind) == "" {
		return ErrMissingKind
	}
	if strings.TrimSpace(e.Metadata.Name) == "" {
		return ErrMissingName
	}
	return nil
}

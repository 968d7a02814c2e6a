package catalog

import "errors"

// Sentinel errors for the catalog package
var (
	// ErrNoEntities indicates the descriptor has no entities defined
	ErrNoEntities = errors.New("catalog descriptor must contain at least one entity")

	// ErrMissingName indicates an entity is missing metadata.name
	ErrMissingName = errors.New("entity metadata.name cannot be empty")

	// ErrMissingKind indicates an entity is missing its kind
	ErrMissingKind = errors.New("entity kind cannot be empty")

	// ErrInvalidFormat indicates the descriptor is not valid YAML or JSON
	ErrInvalidFormat = errors.New("catalog descriptor must be valid YAML or JSON")

	// ErrFileNotFound indicates the descriptor file does not exist
	ErrFileNotFound = errors.New("catalog descriptor not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")
)

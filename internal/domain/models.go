package domain

import (
	"fmt"
	"strings"
	"time"
)

// Well-known annotation keys
const (
	// ManagedByLocationKey points at the file the entity definition was read from
	ManagedByLocationKey = "backstage.io/managed-by-location"

	// TechDocsRefKey points at the documentation source, relative to the entity definition
	TechDocsRefKey = "backstage.io/techdocs-ref"
)

// DefaultNamespace is used when an entity does not declare a namespace
const DefaultNamespace = "default"

// DefaultRef is used when a remote location does not pin a revision
const DefaultRef = "HEAD"

// Entity is a catalog-described unit that owns documentation
type Entity struct {
	APIVersion string         `yaml:"apiVersion" json:"apiVersion"`
	Kind       string         `yaml:"kind" json:"kind"`
	Metadata   EntityMetadata `yaml:"metadata" json:"metadata"`
	Spec       map[string]any `yaml:"spec,omitempty" json:"spec,omitempty"`
}

// EntityMetadata holds the identifying fields and annotations of an entity
type EntityMetadata struct {
	Name        string            `yaml:"name" json:"name"`
	Namespace   string            `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Annotation returns the annotation value stored under key
func (e *Entity) Annotation(key string) (string, bool) {
	if e == nil || e.Metadata.Annotations == nil {
		return "", false
	}
	v, ok := e.Metadata.Annotations[key]
	return v, ok
}

// SetAnnotation stores an annotation value, allocating the map if needed
func (e *Entity) SetAnnotation(key, value string) {
	if e.Metadata.Annotations == nil {
		e.Metadata.Annotations = make(map[string]string)
	}
	e.Metadata.Annotations[key] = value
}

// Name returns the storage name triple of the entity
func (e *Entity) Name() EntityName {
	ns := e.Metadata.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return EntityName{
		Kind:      strings.ToLower(e.Kind),
		Namespace: ns,
		Name:      e.Metadata.Name,
	}
}

// Ref returns the entity reference in kind:namespace/name form
func (e *Entity) Ref() string {
	return e.Name().String()
}

// EntityName identifies an entity in the documentation storage
type EntityName struct {
	Kind      string
	Namespace string
	Name      string
}

func (n EntityName) String() string {
	return fmt.Sprintf("%s:%s/%s", n.Kind, n.Namespace, n.Name)
}

// ParseEntityName parses "kind/namespace/name" or "kind:namespace/name"
func ParseEntityName(s string) (EntityName, error) {
	normalized := strings.Replace(s, ":", "/", 1)
	parts := strings.Split(normalized, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return EntityName{}, NewInputError(fmt.Sprintf("invalid entity name %q, expected kind/namespace/name", s), nil)
	}
	return EntityName{
		Kind:      strings.ToLower(parts[0]),
		Namespace: parts[1],
		Name:      parts[2],
	}, nil
}

// EntityLocation is the decoded form of a protocol:location annotation value
type EntityLocation struct {
	Protocol string
	Location string
}

func (l EntityLocation) String() string {
	return l.Protocol + ":" + l.Location
}

// RemoteRepositoryDescriptor is the parsed form of a remote location URI
type RemoteRepositoryDescriptor struct {
	SourceHost string
	Owner      string
	RepoName   string
	Ref        string
	FilePath   string
}

// CloneURL returns the https checkout URL of the repository
func (d *RemoteRepositoryDescriptor) CloneURL() string {
	return fmt.Sprintf("https://%s/%s/%s.git", d.SourceHost, d.Owner, d.RepoName)
}

// CheckoutResult describes a completed checkout
type CheckoutResult struct {
	Dir    string // Directory holding the working tree
	Ref    string // Ref that was checked out
	Commit string // Commit hash of HEAD after checkout
	Method string // "branch", "tag", "revision" or "default"
}

// CheckoutRecord is the metadata kept for a published checkout
type CheckoutRecord struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Ref       string    `json:"ref"`
	Commit    string    `json:"commit,omitempty"`
	Method    string    `json:"method,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// PrepareResult is the outcome of preparing a single entity
type PrepareResult struct {
	EntityRef string
	Dir       string
	Err       error
}

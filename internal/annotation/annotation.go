// Package annotation decodes location references stored in entity annotations.
package annotation

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/docprep/internal/domain"
)

// ParseReferenceAnnotation reads the annotation stored under key and splits
// it at the first colon into a protocol and a location.
func ParseReferenceAnnotation(key string, entity *domain.Entity) (domain.EntityLocation, error) {
	value, ok := entity.Annotation(key)
	if !ok || strings.TrimSpace(value) == "" {
		return domain.EntityLocation{}, domain.NewInputError(
			fmt.Sprintf("no location annotation %q provided in entity: %s", key, entityName(entity)), nil)
	}

	protocol, location, found := strings.Cut(value, ":")
	protocol = strings.TrimSpace(protocol)
	location = strings.TrimSpace(location)
	if !found || protocol == "" || location == "" {
		return domain.EntityLocation{}, domain.NewInputError(
			fmt.Sprintf("failure to parse either protocol or location for entity: %s", entityName(entity)), nil)
	}

	return domain.EntityLocation{Protocol: protocol, Location: location}, nil
}

// ManagedByLocation parses the annotation naming the entity's definition file
func ManagedByLocation(entity *domain.Entity) (domain.EntityLocation, error) {
	return ParseReferenceAnnotation(domain.ManagedByLocationKey, entity)
}

// TechDocsRef parses the annotation naming the entity's documentation source
func TechDocsRef(entity *domain.Entity) (domain.EntityLocation, error) {
	return ParseReferenceAnnotation(domain.TechDocsRefKey, entity)
}

func entityName(entity *domain.Entity) string {
	if entity == nil {
		return "<nil>"
	}
	return entity.Metadata.Name
}

package annotation

import (
	"testing"

	"github.com/quantmind-br/docprep/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityWith(annotations map[string]string) *domain.Entity {
	return &domain.Entity{
		Kind:     "Component",
		Metadata: domain.EntityMetadata{Name: "payments", Annotations: annotations},
	}
}

func TestParseReferenceAnnotation(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected domain.EntityLocation
	}{
		{
			name:     "file location",
			value:    "file:/repo/catalog-info.yaml",
			expected: domain.EntityLocation{Protocol: "file", Location: "/repo/catalog-info.yaml"},
		},
		{
			name:     "splits at first colon only",
			value:    "github:https://github.com/org/repo/blob/main/catalog-info.yaml",
			expected: domain.EntityLocation{Protocol: "github", Location: "https://github.com/org/repo/blob/main/catalog-info.yaml"},
		},
		{
			name:     "relative fragment",
			value:    "dir:.",
			expected: domain.EntityLocation{Protocol: "dir", Location: "."},
		},
		{
			name:     "surrounding whitespace",
			value:    " file : docs ",
			expected: domain.EntityLocation{Protocol: "file", Location: "docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entityWith(map[string]string{domain.TechDocsRefKey: tt.value})
			loc, err := ParseReferenceAnnotation(domain.TechDocsRefKey, e)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestParseReferenceAnnotation_Errors(t *testing.T) {
	tests := []struct {
		name        string
		annotations map[string]string
		contains    string
	}{
		{name: "no annotations", annotations: nil, contains: "no location annotation"},
		{name: "empty value", annotations: map[string]string{domain.ManagedByLocationKey: ""}, contains: "no location annotation"},
		{name: "no colon", annotations: map[string]string{domain.ManagedByLocationKey: "catalog-info.yaml"}, contains: "failure to parse"},
		{name: "empty protocol", annotations: map[string]string{domain.ManagedByLocationKey: ":/repo"}, contains: "failure to parse"},
		{name: "empty location", annotations: map[string]string{domain.ManagedByLocationKey: "file:"}, contains: "failure to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ManagedByLocation(entityWith(tt.annotations))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Contains(t, err.Error(), "payments")
		})
	}
}

func TestParseReferenceAnnotation_NilEntity(t *testing.T) {
	_, err := TechDocsRef(nil)
	assert.True(t, domain.IsInputError(err))
}

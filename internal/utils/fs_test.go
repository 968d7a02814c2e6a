package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.False(t, DirExists(filepath.Join(dir, "missing")))
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c.txt")

	require.NoError(t, EnsureDir(target))
	assert.True(t, DirExists(filepath.Join(dir, "a", "b")))

	// idempotent
	require.NoError(t, EnsureDir(target))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
	}{
		{"~", home},
		{"~/.docprep/checkouts", filepath.Join(home, ".docprep/checkouts")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestIsSafeSegment(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"main", true},
		{"v1.2.3", true},
		{"", false},
		{".", false},
		{"..", false},
		{"feature/x", false},
		{`a\b`, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSafeSegment(tt.input))
		})
	}
}

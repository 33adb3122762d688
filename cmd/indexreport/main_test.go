package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "Japan", []string{"Japan"}},
		{"multiple with spaces", "Japan, Korea ,India", []string{"Japan", "Korea", "India"}},
		{"empty segments dropped", "Japan,,Korea,", []string{"Japan", "Korea"}},
		{"empty string", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.in))
		})
	}
}

func TestResolveInputs(t *testing.T) {
	t.Run("explicit list wins", func(t *testing.T) {
		paths, err := resolveInputs("a.csv, b.xlsx", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, []string{"a.csv", "b.xlsx"}, paths)
	})

	t.Run("falls back to data directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "asia.csv"), []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

		paths, err := resolveInputs("", dir)
		require.NoError(t, err)
		require.Len(t, paths, 1)
		assert.Equal(t, "asia.csv", filepath.Base(paths[0]))
	})

	t.Run("empty data directory is an error", func(t *testing.T) {
		_, err := resolveInputs("", t.TempDir())
		assert.Error(t, err)
	})
}

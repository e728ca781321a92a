package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveStreamKeepsExtension(t *testing.T) {
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	name, err := store.SaveStream("field-trip.PDF", strings.NewReader("consent form"))
	require.NoError(t, err)
	assert.Equal(t, ".PDF", filepath.Ext(name))
	_, err = uuid.Parse(strings.TrimSuffix(name, ".PDF"))
	assert.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "consent form", string(content))
}

func TestRandomNameIgnoresDirectories(t *testing.T) {
	name := RandomName("../../etc/passwd")
	assert.Empty(t, filepath.Ext(name))
	assert.NotContains(t, name, "/")

	assert.NotEqual(t, RandomName("a.png"), RandomName("a.png"))
}

package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
	"github.com/klasstra/klasstra-api/pkg/storage"
)

type failingStore struct{}

func (failingStore) SaveStream(string, io.Reader) (string, error) {
	return "", errors.New("disk full")
}

func TestUploadStoresFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	svc := NewUploadService(store, "http://127.0.0.1:8000", nil)

	resp, err := svc.Upload(context.Background(), "notes.pdf", strings.NewReader("hello"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.URL, "http://127.0.0.1:8000/uploads/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".pdf"))

	name := strings.TrimPrefix(resp.URL, "http://127.0.0.1:8000/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestUploadStoreFailure(t *testing.T) {
	svc := NewUploadService(failingStore{}, "http://localhost", nil)
	_, err := svc.Upload(context.Background(), "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

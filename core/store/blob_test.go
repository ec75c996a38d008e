package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newBlobStore(t *testing.T, maxBytes int64) *FileBlobStore {
	t.Helper()
	s, err := NewFileBlobStore(t.TempDir(), "/uploads/", "images", maxBytes)
	require.NoError(t, err)
	s.newKey = func() string { return "01TESTKEY" }
	return s
}

func TestFileBlobStore_PutSniffed(t *testing.T) {
	s := newBlobStore(t, 0)

	up, err := s.Put(context.Background(), pngHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "images/01TESTKEY.png", up.Key)
	assert.Equal(t, "/uploads/images/01TESTKEY.png", up.URL)
	assert.Equal(t, "image/png", up.ContentType)
	assert.Equal(t, len(pngHeader), up.Size)

	data, err := os.ReadFile(filepath.Join(s.Dir, "images", "01TESTKEY.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestFileBlobStore_PutDeclaredType(t *testing.T) {
	s := newBlobStore(t, 0)

	up, err := s.Put(context.Background(), []byte("notes"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", up.ContentType)
	assert.Equal(t, "images/01TESTKEY.txt", up.Key)
}

func TestFileBlobStore_Rejects(t *testing.T) {
	s := newBlobStore(t, 16)
	ctx := context.Background()

	_, err := s.Put(ctx, nil, "")
	assert.True(t, errors.Is(err, ErrEmptyUpload))

	_, err = s.Put(ctx, bytes.Repeat([]byte("a"), 17), "text/plain")
	assert.True(t, errors.Is(err, ErrTooLarge))

	_, err = s.Put(ctx, []byte("MZ"), "application/x-msdownload")
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestFileBlobStore_DefaultKeyIsULID(t *testing.T) {
	s, err := NewFileBlobStore(t.TempDir(), "/uploads", "", 0)
	require.NoError(t, err)
	assert.EqualValues(t, DefaultMaxBytes, s.MaxBytes)

	up, err := s.Put(context.Background(), []byte("hello"), "text/plain")
	require.NoError(t, err)
	assert.Len(t, up.Key, 26+len(".txt"))
	assert.Equal(t, "/uploads/"+up.Key, up.URL)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("IMAGE/JPEG"))
	assert.True(t, Allowed("application/pdf"))
	assert.False(t, Allowed("application/zip"))
	assert.False(t, Allowed(""))
}

package store

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

var (
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrTooLarge        = errors.New("upload too large")
	ErrEmptyUpload     = errors.New("empty upload")
)

// DefaultMaxBytes caps uploads at 10 MiB.
const DefaultMaxBytes = 10 << 20

// AllowedTypes are the content types accepted for upload.
var AllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

// FileBlobStore writes uploads below Dir and serves them from BaseURL.
type FileBlobStore struct {
	Dir      string
	BaseURL  string
	Folder   string
	MaxBytes int64

	newKey func() string
}

// NewFileBlobStore creates the upload directory if needed. Zero maxBytes
// means DefaultMaxBytes.
func NewFileBlobStore(dir, baseURL, folder string, maxBytes int64) (*FileBlobStore, error) {
	if dir == "" {
		return nil, errors.New("blob directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating blob directory")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &FileBlobStore{
		Dir:      dir,
		BaseURL:  baseURL,
		Folder:   strings.Trim(folder, "/"),
		MaxBytes: maxBytes,
		newKey:   func() string { return ulid.Make().String() },
	}, nil
}

// Put stores data under <folder>/<ulid><ext>. An empty contentType is
// sniffed from the bytes.
func (s *FileBlobStore) Put(ctx context.Context, data []byte, contentType string) (*core.Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	if int64(len(data)) > s.MaxBytes {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes, limit %d", len(data), s.MaxBytes)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = mimetype.Detect(data).String()
	}
	contentType = baseType(contentType)
	if !Allowed(contentType) {
		return nil, errors.Wrapf(ErrUnsupportedType, "%q", contentType)
	}

	name := s.newKey() + extension(contentType)
	key := name
	if s.Folder != "" {
		key = path.Join(s.Folder, name)
	}

	full := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating blob folder")
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, errors.Wrapf(err, "writing blob %s", key)
	}

	log.Get().Debug("blob stored", zap.String("key", key), zap.String("content_type", contentType))
	return &core.Upload{
		Key:         key,
		URL:         strings.TrimRight(s.BaseURL, "/") + "/" + key,
		ContentType: contentType,
		Size:        len(data),
	}, nil
}

// Allowed reports whether contentType (parameters ignored) may be uploaded.
func Allowed(contentType string) bool {
	ct := baseType(contentType)
	for _, a := range AllowedTypes {
		if ct == a {
			return true
		}
	}
	return false
}

func baseType(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

func extension(contentType string) string {
	if m := mimetype.Lookup(contentType); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	return ".bin"
}

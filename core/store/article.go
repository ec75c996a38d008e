// Package store holds file-backed implementations of the storage
// collaborators: articles as <slug>.html plus <slug>.json metadata, and
// uploaded blobs under a folder of time-ordered object keys.
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

var (
	ErrNotFound    = errors.New("article not found")
	ErrInvalidSlug = errors.New("invalid slug")
)

const (
	bodyExt = ".html"
	metaExt = ".json"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// NormalizeSlug lowercases and trims slug and checks it against [a-z0-9-]+.
func NormalizeSlug(slug string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(slug))
	if !slugRegex.MatchString(s) {
		return "", errors.Wrapf(ErrInvalidSlug, "%q", slug)
	}
	return s, nil
}

// FileStore keeps articles in a single directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
// An empty dir means the current working directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "getting working directory")
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}
	return &FileStore{Dir: dir}, nil
}

// Save writes the body verbatim and the metadata as JSON. The slug in the
// metadata is normalized before use.
func (s *FileStore) Save(ctx context.Context, article core.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slug, err := NormalizeSlug(article.Meta.Slug)
	if err != nil {
		return err
	}
	article.Meta.Slug = slug

	meta, err := json.MarshalIndent(article.Meta, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding metadata")
	}

	bodyPath := s.path(slug, bodyExt)
	if err := os.WriteFile(bodyPath, []byte(article.Body), 0o644); err != nil {
		return errors.Wrapf(err, "writing file %s", bodyPath)
	}
	metaPath := s.path(slug, metaExt)
	if err := os.WriteFile(metaPath, meta, 0o644); err != nil {
		return errors.Wrapf(err, "writing file %s", metaPath)
	}

	log.Get().Debug("article saved", zap.String("slug", slug), zap.Int("bytes", len(article.Body)))
	return nil
}

// Load reads an article back. A missing body returns ErrNotFound; a missing
// metadata file yields metadata holding only the slug.
func (s *FileStore) Load(ctx context.Context, slug string) (*core.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}

	body, err := os.ReadFile(s.path(slug, bodyExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%q", slug)
		}
		return nil, errors.Wrapf(err, "reading article %q", slug)
	}

	meta, err := s.readMeta(slug)
	if err != nil {
		return nil, err
	}
	return &core.Article{Meta: meta, Body: string(body)}, nil
}

// List returns the metadata of every stored article, newest first.
func (s *FileStore) List(ctx context.Context) ([]core.ArticleMeta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*"+bodyExt))
	if err != nil {
		return nil, errors.Wrap(err, "listing articles")
	}

	metas := make([]core.ArticleMeta, 0, len(matches))
	for _, m := range matches {
		slug := strings.TrimSuffix(filepath.Base(m), bodyExt)
		if !slugRegex.MatchString(slug) {
			continue
		}
		meta, err := s.readMeta(slug)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}

	sort.SliceStable(metas, func(i, j int) bool {
		if !metas[i].PublishedAt.Equal(metas[j].PublishedAt) {
			return metas[i].PublishedAt.After(metas[j].PublishedAt)
		}
		return metas[i].Slug < metas[j].Slug
	})
	return metas, nil
}

func (s *FileStore) readMeta(slug string) (core.ArticleMeta, error) {
	meta := core.ArticleMeta{Slug: slug}
	data, err := os.ReadFile(s.path(slug, metaExt))
	if err != nil {
		if os.IsNotExist(err) {
			return meta, nil
		}
		return meta, errors.Wrapf(err, "reading metadata %q", slug)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, errors.Wrapf(err, "decoding metadata %q", slug)
	}
	meta.Slug = slug
	return meta, nil
}

func (s *FileStore) path(slug, ext string) string {
	return filepath.Join(s.Dir, slug+ext)
}

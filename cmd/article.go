// Package cmd — article store commands.
// publish renders blocks and saves them with metadata; show runs a stored
// body through the display pipeline; list prints stored articles.
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/display"
	"github.com/gaurav-prasanna/blockpipe/core/excerpt"
	"github.com/gaurav-prasanna/blockpipe/core/render"
	"github.com/gaurav-prasanna/blockpipe/core/store"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

const summaryWords = 30

var (
	flagSlug     string
	flagTitle    string
	flagSummary  string
	flagCategory string
	flagTags     []string
	flagFeatured bool
	flagDraft    bool
)

// now is replaced in tests.
var now = time.Now

var publishCmd = &cobra.Command{
	Use:   "publish [file|-]",
	Short: "Render blocks and save them to the article store",
	Long: `Publish reads blocks (JSON or tagged HTML), renders them and saves the body
with its metadata under the given slug. An empty summary is taken from the
first words of the body.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Print the public HTML of a stored article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewFileStore(cfg.Store.Dir)
		if err != nil {
			return err
		}
		article, err := st.Load(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		pipeline := display.New(newNormalizer(), newEnhancer())
		return writeString(cmd, pipeline.Render(article.Body))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored articles, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := store.NewFileStore(cfg.Store.Dir)
		if err != nil {
			return err
		}
		metas, err := st.List(commandContext(cmd))
		if err != nil {
			return err
		}
		for _, m := range metas {
			state := "draft"
			if m.Published {
				state = "published"
			}
			if err := writeString(cmd, fmt.Sprintf("%s\t%s\t%s", m.Slug, state, m.Title)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVar(&flagSlug, "slug", "", "Article slug ([a-z0-9-]+)")
	publishCmd.Flags().StringVar(&flagTitle, "title", "", "Article title")
	publishCmd.Flags().StringVar(&flagSummary, "summary", "", "Article summary")
	publishCmd.Flags().StringVar(&flagCategory, "category", "", "Article category")
	publishCmd.Flags().StringSliceVar(&flagTags, "tag", nil, "Article tag (repeatable)")
	publishCmd.Flags().BoolVar(&flagFeatured, "featured", false, "Mark the article as featured")
	publishCmd.Flags().BoolVar(&flagDraft, "draft", false, "Save without publishing")
	_ = publishCmd.MarkFlagRequired("slug")
	_ = publishCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(publishCmd, showCmd, listCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	blocks, err := readBlocks(cmd, args)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return errors.New("nothing to publish: no blocks in input")
	}

	st, err := store.NewFileStore(cfg.Store.Dir)
	if err != nil {
		return err
	}
	slug, err := store.NormalizeSlug(flagSlug)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	ts := now().UTC()
	meta := core.ArticleMeta{
		Slug:      slug,
		Title:     strings.TrimSpace(flagTitle),
		Summary:   strings.TrimSpace(flagSummary),
		Category:  strings.TrimSpace(flagCategory),
		Tags:      flagTags,
		Featured:  flagFeatured,
		Published: !flagDraft,
		UpdatedAt: ts,
	}
	if meta.Summary == "" {
		meta.Summary = excerpt.Summary(excerpt.PlainText(blocks), summaryWords)
	}
	meta.ImageURL = firstImage(blocks)

	// Republishing keeps the first publication time.
	if prev, err := st.Load(ctx, slug); err == nil && !prev.Meta.PublishedAt.IsZero() {
		meta.PublishedAt = prev.Meta.PublishedAt
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if meta.Published && meta.PublishedAt.IsZero() {
		meta.PublishedAt = ts
	}

	article := core.Article{Meta: meta, Body: render.BlocksToHTML(blocks)}
	if err := st.Save(ctx, article); err != nil {
		return err
	}
	log.Get().Info("published", zap.String("slug", slug), zap.Int("blocks", len(blocks)))
	return writeString(cmd, "✓ Saved: "+slug)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// firstImage returns the URL of the first image block, used as the cover.
func firstImage(blocks []block.Block) string {
	for _, b := range blocks {
		if img, ok := b.(block.Image); ok && strings.TrimSpace(img.URL) != "" {
			return strings.TrimSpace(img.URL)
		}
	}
	return ""
}

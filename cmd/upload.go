// Package cmd — upload command.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/store"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

var (
	flagCaption     string
	flagAlt         string
	flagContentType string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Store a file in the upload directory and print an image block for it",
	Long: `Upload copies a file into the blob store. The content type is sniffed
unless --content-type is given; only images, PDF, Word and plain text
documents up to the configured size are accepted. The printed URL goes on
the first line, followed by an image block referencing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&flagCaption, "caption", "", "Caption for the printed image block")
	uploadCmd.Flags().StringVar(&flagAlt, "alt", "", "Alt text for the printed image block (default: caption)")
	uploadCmd.Flags().StringVar(&flagContentType, "content-type", "", "Content type (default: sniffed)")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "reading %s", args[0])
	}

	blobs, err := store.NewFileBlobStore(cfg.Blobs.Dir, cfg.Blobs.BaseURL, cfg.Blobs.Folder, cfg.Blobs.MaxBytes)
	if err != nil {
		return err
	}
	up, err := blobs.Put(commandContext(cmd), data, flagContentType)
	if err != nil {
		return err
	}
	log.Get().Info("uploaded",
		zap.String("file", filepath.Base(args[0])),
		zap.String("key", up.Key),
		zap.String("content_type", up.ContentType),
	)

	if err := writeString(cmd, up.URL); err != nil {
		return err
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return nil
	}

	alt := flagAlt
	if alt == "" {
		alt = flagCaption
	}
	img := block.Image{ID: block.NewID(), URL: up.URL, Caption: flagCaption, Alt: alt}
	return writeBlocks(cmd, []block.Block{img})
}

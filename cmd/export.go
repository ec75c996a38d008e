// Package cmd — export command.
// Reads an article body (blocks JSON or tagged HTML, from a file, URL or
// the store) and writes it as Markdown, JSON or PDF.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/parse"
	"github.com/gaurav-prasanna/blockpipe/core/render"
	"github.com/gaurav-prasanna/blockpipe/core/store"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

// Flag variables.
var (
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagOutputDir string
	flagFromStore bool
	flagName      string
)

var exportCmd = &cobra.Command{
	Use:   "export <file|url|slug>",
	Short: "Export an article to the specified output format",
	Long: `Export reads an article body and converts it to the specified output format
(PDF, Markdown, or JSON).

Examples:
  blockpipe export article.html --markdown
  blockpipe export blocks.json --json --output_dir ./out
  blockpipe export my-post --store --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	// Output format flags (mutually exclusive).
	exportCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	exportCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	exportCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	exportCmd.Flags().BoolVar(&flagFromStore, "store", false, "Treat the argument as a slug in the article store")
	exportCmd.Flags().StringVar(&flagName, "name", "", "Output file name without extension (default: input base name)")
	exportCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}
	exporter, err := selectExporter()
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd, args)
	if err != nil {
		return err
	}

	data, err := exporter.Export(doc)
	if err != nil {
		return errors.Wrap(err, "export")
	}

	name := flagName
	if name == "" {
		name = outputName(args[0], doc.Meta.Slug)
	}
	path, err := writeOutput(flagOutputDir, name+exporter.Extension(), data)
	if err != nil {
		return err
	}
	log.Get().Info("exported", zap.String("path", path), zap.Int("blocks", len(doc.Blocks)))
	return writeString(cmd, "✓ Written: "+path)
}

// loadDocument builds a Document from a stored article or an input file.
func loadDocument(cmd *cobra.Command, args []string) (core.Document, error) {
	if !flagFromStore {
		blocks, err := readBlocks(cmd, args)
		if err != nil {
			return core.Document{}, err
		}
		return core.Document{Blocks: blocks}, nil
	}

	st, err := store.NewFileStore(cfg.Store.Dir)
	if err != nil {
		return core.Document{}, err
	}
	article, err := st.Load(commandContext(cmd), args[0])
	if err != nil {
		return core.Document{}, err
	}
	blocks, err := parse.HTMLToBlocks(article.Body)
	if err != nil {
		return core.Document{}, err
	}
	return core.Document{Meta: article.Meta, Blocks: blocks}, nil
}

// outputName derives a flat file name from the input path or URL.
func outputName(src, slug string) string {
	if slug != "" {
		return slug
	}
	if src == "-" {
		return "article"
	}
	base := filepath.Base(strings.TrimRight(src, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if s, err := store.NormalizeSlug(sanitize(base)); err == nil {
		return s
	}
	return "article"
}

// sanitize replaces runs outside [a-zA-Z0-9] with single dashes.
func sanitize(s string) string {
	var b strings.Builder
	dash := false
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
			dash = false
		} else if !dash {
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func writeOutput(dir, name string, data []byte) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "getting working directory")
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing file %s", path)
	}
	return path, nil
}

// validateFlags checks that exactly one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, on := range []bool{flagPDF, flagMarkdown, flagJSON} {
		if on {
			formatCount++
		}
	}
	if formatCount == 0 {
		return errors.New("exactly one output format is required: --pdf, --markdown, or --json")
	}
	if formatCount > 1 {
		return errors.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectExporter creates the appropriate Exporter based on flags.
func selectExporter() (core.Exporter, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(cfg.Reading.WordsPerMinute, 0), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, errors.New("no output format selected")
	}
}

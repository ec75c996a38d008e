// Package cmd — block codec commands.
// new, render, parse, normalize, enhance and import each run one stage of
// the codec over stdin, a file or a URL and write the result to stdout.
package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/enhance"
	"github.com/gaurav-prasanna/blockpipe/core/extract"
	"github.com/gaurav-prasanna/blockpipe/core/markdown"
	"github.com/gaurav-prasanna/blockpipe/core/normalize"
	"github.com/gaurav-prasanna/blockpipe/core/parse"
	"github.com/gaurav-prasanna/blockpipe/core/render"
)

var flagEnhance bool

var newCmd = &cobra.Command{
	Use:   "new <kind>",
	Short: "Print an empty block of the given kind as JSON",
	Long: `New prints a one-element block array holding an empty block with a fresh id.

Kinds: paragraph, heading, quote, list, image, cta.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := block.Kind(strings.ToLower(args[0]))
		if !kind.Known() {
			return errors.Errorf("unknown block kind %q", args[0])
		}
		return writeBlocks(cmd, []block.Block{block.NewEmpty(kind)})
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render a blocks JSON array to tagged HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		blocks, err := block.Unmarshal([]byte(in))
		if err != nil {
			return errors.Wrap(err, "decoding blocks JSON")
		}
		out := render.NewHTMLRenderer().Render(blocks)
		if flagEnhance {
			out = newEnhancer().Enhance(out)
		}
		return writeString(cmd, out)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [file|url|-]",
	Short: "Parse tagged HTML back into a blocks JSON array",
	Long: `Parse reads tagged article HTML and prints the blocks it holds. A full page,
such as a published article fetched by URL, is cut down to the article
body first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		if extract.IsPage(in) {
			if in, err = extract.New().Extract(in); err != nil {
				return err
			}
		}
		blocks, err := parse.New().Parse(in)
		if err != nil {
			return err
		}
		return writeBlocks(cmd, blocks)
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file|-]",
	Short: "Convert legacy plain text to display HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return writeString(cmd, newNormalizer().Normalize(in))
	},
}

var enhanceCmd = &cobra.Command{
	Use:   "enhance [file|-]",
	Short: "Rewrite CTA sections of rendered HTML for display",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return writeString(cmd, newEnhancer().Enhance(in))
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file.md|-]",
	Short: "Import Markdown editor content as a blocks JSON array",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return writeBlocks(cmd, markdown.Import([]byte(in)))
	},
}

func init() {
	renderCmd.Flags().BoolVar(&flagEnhance, "enhance", false, "Run the CTA enhancer over the rendered HTML")

	rootCmd.AddCommand(newCmd, renderCmd, parseCmd, normalizeCmd, enhanceCmd, importCmd)
}

func newNormalizer() *normalize.LegacyNormalizer {
	return normalize.New(cfg.Steps)
}

func newEnhancer() *enhance.CTAEnhancer {
	return enhance.New(enhance.WithButtonIcon(cfg.CTA.ButtonIcon))
}

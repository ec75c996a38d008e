package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/fetch"
	"github.com/gaurav-prasanna/blockpipe/core/parse"
)

// readInput reads the first argument: "-" or no argument is stdin, an
// http(s) URL is fetched, anything else is a file path.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	src := "-"
	if len(args) > 0 {
		src = args[0]
	}

	switch {
	case src == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(data), nil
	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		res, err := fetch.New().Fetch(commandContext(cmd), src)
		if err != nil {
			return "", err
		}
		return res.Body, nil
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", src)
		}
		return string(data), nil
	}
}

// readBlocks reads blocks as a JSON array, or parses the input as tagged
// HTML when it does not look like JSON.
func readBlocks(cmd *cobra.Command, args []string) ([]block.Block, error) {
	in, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.TrimSpace(in), "[") {
		blocks, err := block.Unmarshal([]byte(in))
		if err != nil {
			return nil, errors.Wrap(err, "decoding blocks JSON")
		}
		return blocks, nil
	}
	return parse.HTMLToBlocks(in)
}

func writeBlocks(cmd *cobra.Command, blocks []block.Block) error {
	data, err := block.Marshal(blocks)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}

func writeString(cmd *cobra.Command, s string) error {
	_, err := io.WriteString(cmd.OutOrStdout(), s+"\n")
	return err
}

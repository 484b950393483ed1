package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/storyblocks/internal/term"
	"github.com/stateful/storyblocks/pkg/document"
)

// readInput reads a file, or stdin when fileName is "-".
func readInput(cmd *cobra.Command, fileName string) ([]byte, error) {
	if fileName == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read from stdin")
	}

	data, err := os.ReadFile(fileName)
	return data, errors.Wrapf(err, "failed to read file %q", fileName)
}

func readDocument(cmd *cobra.Command, fileName string) (*document.Document, error) {
	data, err := readInput(cmd, fileName)
	if err != nil {
		return nil, err
	}

	doc, err := document.Parse(data)
	return doc, errors.WithMessagef(err, "failed to parse %q", fileName)
}

// writeOutput writes data to the named file, or to the command output
// when fileName is empty.
func writeOutput(cmd *cobra.Command, fileName string, data []byte) error {
	if fileName == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "failed to write result")
	}
	return errors.Wrapf(os.WriteFile(fileName, data, 0o644), "failed to write %q", fileName)
}

func writeJSON(cmd *cobra.Command, fileName string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.WithStack(err)
	}

	var buf bytes.Buffer
	colorize := fileName == "" && term.FromIO(cmd.OutOrStdout(), cmd.ErrOrStderr()).Color()
	if err := jsonpretty.Format(&buf, bytes.NewReader(raw), "  ", colorize); err != nil {
		return errors.WithStack(err)
	}

	return writeOutput(cmd, fileName, buf.Bytes())
}

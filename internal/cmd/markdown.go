package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stateful/storyblocks/pkg/document/markdown"
)

func importCmd() *cobra.Command {
	var output string

	cmd := cobra.Command{
		Use:   "import file.md",
		Short: "Convert Markdown to a JSON document.",
		Long: `Convert Markdown to a JSON document. Use "-" to read from stdin.

Headings, paragraphs, lists and images become blocks. Constructs without
a block equivalent, like code, become plain paragraphs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			doc := markdown.Import(data)

			return writeJSON(cmd, output, doc)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to a file instead of stdout.")

	return &cmd
}

func exportCmd() *cobra.Command {
	var output string

	cmd := cobra.Command{
		Use:   "export file.json",
		Short: "Convert a JSON document to Markdown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			return writeOutput(cmd, output, []byte(markdown.Export(doc.Blocks())))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write Markdown to a file instead of stdout.")

	return &cmd
}

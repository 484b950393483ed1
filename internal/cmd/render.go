package cmd

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/storyblocks/internal/config"
	"github.com/stateful/storyblocks/internal/config/autoconfig"
	"github.com/stateful/storyblocks/pkg/document/render"
)

func renderCmd(builder *autoconfig.Builder) *cobra.Command {
	var (
		conditions []string
		outDir     string
	)

	cmd := cobra.Command{
		Use:   "render file.json [file.json ...]",
		Short: "Render documents to article HTML.",
		Long: `Render JSON documents to article HTML.

Filters from the config file, and those passed with --filter, are applied
first. A document rejected by a document filter is skipped.`,
		Example: `Render a document:
  storyblocks render story.json

Render several documents, dropping empty paragraphs:
  storyblocks render --out-dir public --filter "type != 'paragraph' || content != ''" *.json
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return builder.Invoke(
				func(
					filters []*config.Filter,
					renderer *render.Renderer,
					logger *zap.Logger,
				) error {
					for _, c := range conditions {
						filters = append(filters, &config.Filter{Type: config.FilterTypeBlock, Condition: c})
					}

					results := make([]string, len(args))

					g, ctx := errgroup.WithContext(cmd.Context())
					g.SetLimit(runtime.GOMAXPROCS(0))

					for i, fileName := range args {
						g.Go(func() error {
							if err := ctx.Err(); err != nil {
								return err
							}

							doc, err := readDocument(cmd, fileName)
							if err != nil {
								return err
							}

							filtered, ok, err := config.ApplyFilters(filters, doc)
							if err != nil {
								return errors.WithMessagef(err, "failed to filter %q", fileName)
							}
							if !ok {
								logger.Info("document skipped by filters", zap.String("file", fileName))
								return nil
							}

							results[i] = renderer.Render(filtered)
							logger.Debug("rendered document", zap.String("file", fileName), zap.Int("blocks", filtered.Len()))
							return nil
						})
					}

					if err := g.Wait(); err != nil {
						return err
					}

					for i, fileName := range args {
						if results[i] == "" {
							continue
						}
						if outDir == "" {
							if err := writeOutput(cmd, "", []byte(results[i]+"\n")); err != nil {
								return err
							}
							continue
						}
						if err := writeOutput(cmd, htmlFileName(outDir, fileName), []byte(results[i])); err != nil {
							return err
						}
					}

					return nil
				},
			)
		},
	}

	cmd.Flags().StringArrayVar(&conditions, "filter", nil, "Block filter condition (expr-lang), may be repeated.")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Write one .html file per document to this directory.")

	return &cmd
}

func htmlFileName(dir, fileName string) string {
	if fileName == "-" {
		fileName = "stdin.json"
	}
	base := filepath.Base(fileName)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".html")
}

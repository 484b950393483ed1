package cmd

import (
	"fmt"
	"strconv"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/storyblocks/internal/config/autoconfig"
	"github.com/stateful/storyblocks/internal/store"
	"github.com/stateful/storyblocks/internal/term"
	"github.com/stateful/storyblocks/pkg/document"
	"github.com/stateful/storyblocks/pkg/document/markdown"
	"github.com/stateful/storyblocks/pkg/document/render"
)

func articleStore(builder *autoconfig.Builder) (*store.ArticleStore, error) {
	var result *store.ArticleStore
	err := builder.Invoke(func(s *store.ArticleStore) {
		result = s
	})
	return result, err
}

func saveCmd(builder *autoconfig.Builder) *cobra.Command {
	var (
		id    string
		title string
	)

	cmd := cobra.Command{
		Use:   "save file.json",
		Short: "Save a document to the article store.",
		Long: `Save a document to the article store under a title. Without --id a new
article is created; with it, the article is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return errors.Wrap(err, "invalid document")
			}

			return builder.Invoke(
				func(
					s *store.ArticleStore,
					renderer *render.Renderer,
					logger *zap.Logger,
				) error {
					defer s.Close()

					if id == "" {
						id = uuid.NewString()
					}

					article := &document.Article{
						ID:       id,
						Title:    title,
						Document: doc,
						Markup:   renderer.Render(doc),
					}
					if err := s.Save(cmd.Context(), article); err != nil {
						return err
					}
					logger.Info("saved article", zap.String("id", id))

					_, err := fmt.Fprintln(cmd.OutOrStdout(), article.ID)
					return errors.WithStack(err)
				},
			)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Id of the article to replace.")
	cmd.Flags().StringVar(&title, "title", "", "Title of the article.")
	_ = cmd.MarkFlagRequired("title")

	return &cmd
}

func listCmd(builder *autoconfig.Builder) *cobra.Command {
	cmd := cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored articles.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return builder.Invoke(
				func(s *store.ArticleStore) error {
					defer s.Close()

					articles, err := s.List(cmd.Context())
					if err != nil {
						return err
					}

					return renderArticlesAsTable(term.FromIO(cmd.OutOrStdout(), cmd.ErrOrStderr()), articles)
				},
			)
		},
	}

	return &cmd
}

func renderArticlesAsTable(t *term.Term, articles []store.Summary) error {
	table := tableprinter.New(t.Out(), t.IsTTY(), t.Width())

	title := color.New(color.Bold)
	if t.Color() {
		title.EnableColor()
	} else {
		title.DisableColor()
	}

	table.AddField("ID")
	table.AddField("TITLE")
	table.AddField("SIZE")
	table.AddField("UPDATED")
	table.EndRow()

	for _, a := range articles {
		table.AddField(a.ID)
		table.AddField(a.Title, tableprinter.WithColor(func(s string) string { return title.Sprint(s) }))
		table.AddField(humanize.Bytes(uint64(a.MarkupSize)))
		if t.IsTTY() {
			table.AddField(humanize.Time(a.UpdatedAt))
		} else {
			table.AddField(strconv.FormatInt(a.UpdatedAt.Unix(), 10))
		}
		table.EndRow()
	}

	return errors.WithStack(table.Render())
}

func showCmd(builder *autoconfig.Builder) *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "show id",
		Short: "Print a stored article.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return builder.Invoke(
				func(s *store.ArticleStore) error {
					defer s.Close()

					article, err := s.Get(cmd.Context(), args[0])
					if err != nil {
						return err
					}

					switch format {
					case "json":
						return writeJSON(cmd, "", article.Document)
					case "html":
						return writeOutput(cmd, "", []byte(article.Markup+"\n"))
					case "markdown":
						return writeOutput(cmd, "", []byte(markdown.Export(article.Document.Blocks())))
					default:
						return errors.Errorf("invalid format: %s", format)
					}
				},
			)
		},
	}

	cmd.Flags().StringVar(&format, "format", "html", "Output format (html, json, markdown)")

	return &cmd
}

func deleteCmd(builder *autoconfig.Builder) *cobra.Command {
	cmd := cobra.Command{
		Use:     "delete id",
		Aliases: []string{"rm"},
		Short:   "Delete a stored article.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return builder.Invoke(
				func(s *store.ArticleStore) error {
					defer s.Close()
					return s.Delete(cmd.Context(), args[0])
				},
			)
		},
	}

	return &cmd
}

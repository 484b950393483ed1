package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/storyblocks/internal/config/autoconfig"
	"github.com/stateful/storyblocks/internal/session"
	"github.com/stateful/storyblocks/pkg/document"
)

func editCmd(builder *autoconfig.Builder) *cobra.Command {
	var (
		scriptPath string
		output     string
		preview    bool
		title      string
	)

	cmd := cobra.Command{
		Use:   "edit [file.json]",
		Short: "Replay an edit script on a document.",
		Long: `Replay a YAML script of editor events on a document, or on a new
one when no file is given, and print the resulting document.

With --preview the rendered article is printed instead. With --title the
result is also saved to the article store.`,
		Example: `Append an image and move the first block to the end:
  cat > script.yaml <<EOF
  - action: drag_start
    id: template:image
  - action: drag_end
    over: __end__
  - action: drag_start
    id: "@0"
  - action: drag_end
    over: "@last"
  EOF
  storyblocks edit story.json --script script.yaml
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(scriptPath)
			if err != nil {
				return errors.Wrapf(err, "failed to open script %q", scriptPath)
			}
			steps, err := session.ParseScript(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			doc := document.NewDocument()
			if len(args) == 1 {
				doc, err = readDocument(cmd, args[0])
				if err != nil {
					return err
				}
			}

			var (
				opts   autoconfig.SessionOptions
				logger *zap.Logger
			)
			err = builder.Invoke(func(o autoconfig.SessionOptions, l *zap.Logger) {
				opts, logger = o, l
			})
			if err != nil {
				return err
			}
			opts = append(opts, session.WithDocument(doc))

			if title != "" {
				s, err := articleStore(builder)
				if err != nil {
					return err
				}
				defer s.Close()
				opts = append(opts, session.WithSaver(s))
			}

			sess := session.New(opts...)
			defer sess.Close()

			if err := sess.Replay(steps); err != nil {
				return err
			}
			logger.Info("replayed script", zap.String("session", sess.ID), zap.Int("steps", len(steps)))

			if title != "" {
				article, err := sess.Save(cmd.Context(), title)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", article.ID)
			}

			if preview {
				return writeOutput(cmd, output, []byte(sess.Preview()+"\n"))
			}
			return writeJSON(cmd, output, sess.Document())
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "Path to the YAML edit script.")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to a file instead of stdout.")
	cmd.Flags().BoolVar(&preview, "preview", false, "Print the rendered article instead of the document.")
	cmd.Flags().StringVar(&title, "title", "", "Save the result to the article store under this title.")
	_ = cmd.MarkFlagRequired("script")

	return &cmd
}

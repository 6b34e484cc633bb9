package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cutxml/fcp"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var layout layoutFlags
	var output string

	cmd := &cobra.Command{
		Use:   "generate <cut-table>",
		Short: "Generate an XMEML sequence from a cut table",
		Long: `Generate a Final Cut Pro 7 XML sequence from a cut table file.
Use "-" to read the cut table from stdin. The document is written to
<project name>.xml unless --output is given; "--output -" writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if err := layout.apply(cmd, cfg); err != nil {
				return err
			}

			project, err := readProject(args[0], cmd.InOrStdin(), layout.strict, ctx.logger)
			if err != nil {
				return err
			}

			renderer, cleanup, err := newRenderer(cfg, ctx.logger)
			if err != nil {
				return err
			}
			defer cleanup()

			tl, err := assembleProject(cmd, ctx, project, renderer, false)
			if err != nil {
				return err
			}

			doc := fcp.Build(tl, fcp.Meta{SequenceUUID: uuid.NewString()})

			if output == "-" {
				data, err := fcp.Marshal(doc)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			filename := output
			if filename == "" {
				filename = defaultOutputName(project.Name)
			}
			if err := fcp.WriteToFile(doc, filename); err != nil {
				return err
			}

			media, titles, transitions := tl.Counts()
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s: %d clips, %d title cards, %d transitions, %d frames\n",
				filename, media, titles, transitions, tl.Duration)
			return nil
		},
	}

	layout.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output filename (defaults to <project name>.xml)")
	return cmd
}

// defaultOutputName keeps the document in the working directory whatever
// the FILENAME: directive contains.
func defaultOutputName(project string) string {
	name := filepath.Base(filepath.FromSlash(strings.ReplaceAll(project, "\\", "/")))
	switch name {
	case "", ".", "..", string(filepath.Separator):
		name = "sequence"
	}
	return name + ".xml"
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cutxml/timecode"
	"cutxml/timeline"
	"cutxml/titlecard"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var layout layoutFlags

	cmd := &cobra.Command{
		Use:   "plan <cut-table>",
		Short: "Show the assembled timeline without writing anything",
		Long: `Assemble a cut table and print the video track as a table. No title card
images and no document are written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := layout.apply(cmd, ctx.config); err != nil {
				return err
			}
			project, err := readProject(args[0], cmd.InOrStdin(), layout.strict, ctx.logger)
			if err != nil {
				return err
			}
			tl, err := assembleProject(cmd, ctx, project, titlecard.Placeholder{}, true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", tl.Name)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Type", "ID", "Content", "Start", "End", "Frames"},
				planRows(tl),
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight},
			))
			media, titles, transitions := tl.Counts()
			fmt.Fprintf(out, "%d clips, %d title cards, %d transitions\n", media, titles, transitions)
			fmt.Fprintf(out, "Total: %d frames (%s)\n", tl.Duration, timecode.FromFrames(tl.Duration, tl.Rate))
			return nil
		},
	}

	layout.register(cmd)
	return cmd
}

func planRows(tl *timeline.Timeline) [][]string {
	rows := make([][]string, 0, len(tl.Video))
	for i, e := range tl.Video {
		var kind, id, content string
		switch el := e.(type) {
		case timeline.MediaClip:
			kind = "clip"
			id = strconv.Itoa(el.ID)
			content = fmt.Sprintf("%s [%s-%s]", el.Source,
				timecode.FromFrames(el.In, tl.Rate), timecode.FromFrames(el.Out, tl.Rate))
		case timeline.TitleClip:
			kind = "title"
			id = strconv.Itoa(el.ID)
			content = el.Caption
		case timeline.Transition:
			kind = "dissolve"
			id = "-"
			content = "Cross Dissolve"
		}
		start, end := e.Span()
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			kind,
			id,
			content,
			strconv.Itoa(start),
			strconv.Itoa(end),
			strconv.Itoa(end - start),
		})
	}
	return rows
}

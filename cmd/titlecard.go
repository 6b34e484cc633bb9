package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTitleCardCommand(ctx *commandContext) *cobra.Command {
	var color, renderer, output string

	cmd := &cobra.Command{
		Use:   "titlecard <caption>",
		Short: "Render a single title card image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if cmd.Flags().Changed("color") {
				cfg.TitleCards.BackgroundColor = color
			}
			if cmd.Flags().Changed("renderer") {
				cfg.TitleCards.Renderer = renderer
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			r, cleanup, err := newRenderer(cfg, ctx.logger)
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := r.RenderTitle(cmd.Context(), args[0], cfg.TitleCards.BackgroundColor, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated title card: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Background color (#RRGGBB)")
	cmd.Flags().StringVar(&renderer, "renderer", "", "Renderer: raster or browser")
	cmd.Flags().StringVarP(&output, "output", "o", "title_card.png", "Output PNG file")
	return cmd
}

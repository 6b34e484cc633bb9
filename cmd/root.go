package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:   "cutxml",
		Short: "Generate Final Cut Pro 7 XML sequences from cut tables",
		Long: `cutxml turns a plain-text cut table (project name, source files and
timecode ranges) into a Final Cut Pro 7 XMEML sequence. Cuts are laid end to end
on one video track with a stereo audio pair; title cards and cross dissolves can
be placed between cuts of the same source.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (default ~/.config/cutxml/config.toml)")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&ctx.logFormat, "log-format", "", "Log format: auto, console, json")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newExampleCommand())
	rootCmd.AddCommand(newTitleCardCommand(ctx))

	return rootCmd
}

func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cutxml/cuttable"
)

func newExampleCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example cut table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := cuttable.Example
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(output, []byte(text), 0644); err != nil {
				return fmt.Errorf("failed to write example: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote example cut table: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the example to a file instead of stdout")
	return cmd
}

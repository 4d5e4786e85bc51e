package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the augment CLI and returns an error if any command fails.
//
// Logging defaults to info level on stderr; --verbose (-v) enables debug
// level. The logger is attached to the command context and accessible to
// all commands via loggerFromContext.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "augment",
		Short:        "Apply geometric augmentation pipelines to images",
		Long:         `augment applies randomized or fixed spatial transforms (scale, rotate, flip, zoom, crop) to images and their annotations, composing whole transform chains into a single resampling pass.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newInspectCmd())

	return root.ExecuteContext(context.Background())
}

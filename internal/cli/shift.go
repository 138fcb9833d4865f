package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/transform"
)

const shiftLongDescription = `Shift the common indentation level of files by a signed amount.

The target level is the current common level plus --by, clamped at
zero. Relative indentation inside the body is preserved, so shifting
by -2 and then by 2 round-trips any text whose common level is at
least two columns.

Examples:
  # Indent a snippet two columns deeper
  reindent shift --by 2 snippet.txt

  # Dedent everything under src/ by four columns, in place
  reindent shift --by -4 --write src/

  # Shift piped input
  cat body.txt | reindent shift --by 2`

func newShiftCommand() *cobra.Command {
	var (
		cfg config.Config
		by  int
	)

	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "shift [paths...]",
		Short: "Shift the indentation level of files by a signed amount",
		Long:  shiftLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			makeOpts := func(*config.Config) transform.Options {
				return transform.Options{Delta: by}
			}

			return runApply(cmd, args, transform.OpShift, makeOpts, &cfg, flags)
		},
	}

	cmd.Flags().IntVar(&by, "by", 0, "signed number of columns to shift by")
	_ = cmd.MarkFlagRequired("by")

	addApplyFlags(cmd, &cfg, flags)

	return cmd
}

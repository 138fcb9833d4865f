package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/transform"
)

const stripLongDescription = `Remove the common indentation of files.

Equivalent to "set --level 0": the least-indented non-blank line moves
to column zero and the rest of the body keeps its relative depth. Handy
for normalizing code snippets copied out of nested contexts.

Examples:
  # Print a snippet flush left
  reindent strip snippet.txt

  # Normalize every file under examples/ in place
  reindent strip --write examples/

  # Strip piped input
  pbpaste | reindent strip`

func newStripCommand() *cobra.Command {
	var cfg config.Config

	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "strip [paths...]",
		Short: "Remove the common indentation of files",
		Long:  stripLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			makeOpts := func(*config.Config) transform.Options {
				return transform.Options{}
			}

			return runApply(cmd, args, transform.OpStrip, makeOpts, &cfg, flags)
		},
	}

	addApplyFlags(cmd, &cfg, flags)

	return cmd
}

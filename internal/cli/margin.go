package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/transform"
)

const marginLongDescription = `Trim margin prefixes from files.

Each line loses its leading whitespace plus one margin prefix (default
"|"). A line without the prefix is kept completely untouched, and blank
first and last lines are dropped. This mirrors the margin convention
used for embedding blocks of text in indented source code:

    text := doc.TrimMargin(` + "`" + `
        |Usage:
        |  tool [flags]
        ` + "`" + `)

An empty --prefix removes leading whitespace only. The prefix can also
be set via the margin_prefix config key or REINDENT_MARGIN_PREFIX.

Examples:
  # Trim the default "|" margin
  reindent margin usage.txt

  # Trim a ">" margin from quoted mail, in place
  reindent margin --prefix ">" --write quote.txt

  # Trim piped input
  cat block.txt | reindent margin`

func newMarginCommand() *cobra.Command {
	var (
		cfg    config.Config
		prefix string
	)

	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "margin [paths...]",
		Short: "Trim margin prefixes from files",
		Long:  marginLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Fall back to the merged config value unless --prefix was
			// given explicitly. An explicit empty prefix is meaningful.
			makeOpts := func(finalCfg *config.Config) transform.Options {
				p := finalCfg.MarginPrefix
				if cmd.Flags().Changed("prefix") {
					p = prefix
				}
				return transform.Options{MarginPrefix: p}
			}

			return runApply(cmd, args, transform.OpMargin, makeOpts, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "margin delimiter (default from config, usually \"|\")")

	addApplyFlags(cmd, &cfg, flags)

	return cmd
}

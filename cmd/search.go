package cmd

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/profiling"
	"github.com/grovetools/jsonview/pkg/tree"
	"github.com/grovetools/jsonview/tui/theme"
)

// NewSearchCmd lists the nodes whose key or value matches a query.
func NewSearchCmd() *cobra.Command {
	var regex bool

	cmd := &cobra.Command{
		Use:   "search [file] <query>",
		Short: "List the paths of nodes matching a query",
		Long: `List the paths of nodes matching a query, in document order.

Matching is case-insensitive and tests both the key and the value. With
--regex the query is a regular expression; a pattern that does not compile
is matched literally.

Examples:
  jsonview search config.json timeout
  curl -s api/users | jsonview search "^adm" --regex --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[len(args)-1]
			doc, name, err := readDocument(cmd, args[:len(args)-1])
			if err != nil {
				return err
			}

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("regex") {
				regex = cfg.Search.Regex
			}

			matcher := tree.NewMatcher(query, regex)
			if regex && !matcher.IsRegex() {
				logging.NewPrettyLogger().WarnPretty("Invalid regular expression, matching literally")
			}
			span := profiling.Start("search")
			matches := tree.FindMatches(tree.FilterWith(tree.Build(doc), matcher))
			span.Stop()
			cli.GetLogger(cmd).WithField("file", name).WithField("matches", len(matches)).Debug("search finished")

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				rows := make([]nodeOutput, len(matches))
				for i, n := range matches {
					rows[i] = toOutput(n)
				}
				data, err := gojson.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			t := theme.DefaultTheme
			for _, n := range matches {
				fmt.Fprintf(out, "%s  %s\n", t.Key.Render(n.JSONPath()), t.ValueStyle(n.Kind()).Render(tree.Summary(n)))
			}
			if len(matches) == 0 {
				logging.NewPrettyLogger().InfoPretty("No matches")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&regex, "regex", "r", false, "Treat the query as a regular expression")
	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/stream"
	"github.com/grovetools/jsonview/pkg/tree"
	"github.com/grovetools/jsonview/tui/theme"
)

// lineMatches is the --json record printed for each matching line.
type lineMatches struct {
	Line    int          `json:"line"`
	Matches []nodeOutput `json:"matches"`
}

// NewFollowCmd searches a JSON Lines file, one document per line.
func NewFollowCmd() *cobra.Command {
	var (
		opts     stream.Options
		noFollow bool
	)

	cmd := &cobra.Command{
		Use:   "follow <file.jsonl> [query]",
		Short: "Search each line of a JSON Lines file as it grows",
		Long: `Search each line of a JSON Lines file, following the file as it grows.

Every non-blank line is parsed as its own document and searched like the
viewer does. Lines that are not valid JSON are reported and skipped.

Examples:
  jsonview follow app.log.jsonl error
  jsonview follow events.jsonl --select "**/user_id" --from-end
  jsonview follow dump.jsonl "5\d\d" --regex --no-follow --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				opts.Search = args[1]
			}
			if opts.Search == "" && len(opts.Select) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "follow needs a query or --select")
			}
			if !cmd.Flags().Changed("regex") {
				cfg, err := cli.LoadConfig(cmd)
				if err != nil {
					return err
				}
				opts.Regex = cfg.Search.Regex
			}
			opts.Follow = !noFollow

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return follow(ctx, cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Regex, "regex", "r", false, "Treat the query as a regular expression")
	cmd.Flags().StringSliceVar(&opts.Select, "select", nil, "Only report matches under these path patterns")
	cmd.Flags().BoolVar(&opts.FromEnd, "from-end", false, "Skip lines already in the file")
	cmd.Flags().BoolVar(&noFollow, "no-follow", false, "Stop at the end of the file")

	return cmd
}

func follow(ctx context.Context, cmd *cobra.Command, path string, opts stream.Options) error {
	out := cmd.OutOrStdout()
	jsonOut := cli.GetOptions(cmd).JSONOutput
	ulog := logging.NewUnifiedLogger("follow").WithWriter(cmd.ErrOrStderr())
	t := theme.DefaultTheme

	return stream.Follow(ctx, path, opts, func(res stream.Result) error {
		if res.Err != nil {
			ulog.Warn(fmt.Sprintf("line %d is not valid JSON", res.Line)).
				Field("line", res.Line).
				Err(res.Err).
				Log()
			return nil
		}
		if len(res.Matches) == 0 {
			return nil
		}

		if jsonOut {
			rec := lineMatches{Line: res.Line, Matches: make([]nodeOutput, len(res.Matches))}
			for i, n := range res.Matches {
				rec.Matches[i] = toOutput(n)
			}
			data, err := gojson.Marshal(rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		for _, n := range res.Matches {
			fmt.Fprintf(out, "%s %s  %s\n",
				t.Muted.Render(fmt.Sprintf("%d:", res.Line)),
				t.Key.Render(n.JSONPath()),
				t.ValueStyle(n.Kind()).Render(tree.Summary(n)))
		}
		return nil
	})
}

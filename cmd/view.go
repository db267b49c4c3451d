package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/session"
	"github.com/grovetools/jsonview/pkg/watch"
	"github.com/grovetools/jsonview/tui"
	"github.com/grovetools/jsonview/tui/components/jsontree"
)

// NewViewCmd opens the interactive viewer.
func NewViewCmd() *cobra.Command {
	var (
		watchFile bool
		search    string
		regex     bool
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a JSON document interactively",
		Long: `Explore a JSON document interactively.

Keys: j/k move, space toggles, h folds, zR/zM expand or collapse all,
1-9 expand to a depth, / searches (ctrl+r toggles regex), n/N jump
between matches, ? shows every binding.

With --watch the view reloads whenever the file changes on disk. Invalid
JSON is shown as an error until the file is fixed.

Examples:
  jsonview view package.json
  curl -s api/items | jsonview view
  jsonview view state.json --watch --search pending`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if watchFile && name == stdinName {
				return errors.New(errors.ErrCodeInvalidInput, "--watch needs a file argument")
			}

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("regex") {
				regex = cfg.Search.Regex
			}

			s := session.New(
				session.WithInitialLevel(cfg.InitialLevel()),
				session.WithSearch(search, regex),
			)
			s.SetText(text)

			m := jsontree.New(s,
				jsontree.WithKeyMap(jsontree.LoadKeyMap(cfg)),
				jsontree.WithTitle(name),
				jsontree.WithRegex(regex),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			var updates <-chan watch.Event
			if watchFile {
				if updates, err = watch.File(ctx, name, watch.DefaultDebounce); err != nil {
					return errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to watch file").
						WithDetail("path", name)
				}
				cli.GetLogger(cmd).WithField("file", name).Debug("watching for changes")
			}

			debounce := time.Duration(cfg.DebounceMs) * time.Millisecond
			return tui.Run(ctx, m, updates, debounce)
		},
	}

	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Reload when the file changes")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Start with this search")
	cmd.Flags().BoolVarP(&regex, "regex", "r", false, "Start searches in regular expression mode")

	return cmd
}

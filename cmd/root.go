package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/pkg/profiling"
	"github.com/grovetools/jsonview/version"
)

// NewRootCmd builds the jsonview command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"jsonview",
		"Explore, search and format JSON documents",
	)
	root.Long = `Explore, search and format JSON documents.

Documents are read from a file argument or from stdin. Settings come from
jsonview.yml (or .toml) in the current directory or a parent, layered over
the global file shown by 'jsonview paths'.`
	cli.SetVersionTemplate(root, version.GetInfo())
	profiling.NewCobraProfiler().Attach(root)

	root.AddCommand(
		NewViewCmd(),
		NewTreeCmd(),
		NewSearchCmd(),
		NewFormatCmd(),
		NewEscapeCmd(),
		NewUnescapeCmd(),
		NewValidateCmd(),
		NewFollowCmd(),
		NewServeCmd(),
		NewConfigCmd(),
		NewPathsCmd(),
		cli.NewVersionCommand("jsonview"),
	)
	return root
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

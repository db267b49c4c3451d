package cmd

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/paths"
)

// PathsOutput lists the directories jsonview reads and writes.
type PathsOutput struct {
	ConfigDir   string   `json:"config_dir"`
	StateDir    string   `json:"state_dir"`
	CacheDir    string   `json:"cache_dir"`
	LogFile     string   `json:"log_file"`
	GlobalFiles []string `json:"global_config_files"`
}

// NewPathsCmd prints the XDG locations.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the directories used by jsonview",
		Long: `Print the directories used by jsonview.

The paths follow the XDG Base Directory Specification; JSONVIEW_HOME moves
all of them under one directory. Output is JSON with --json or when stdout is not a terminal:
- config_dir: global jsonview.yml / jsonview.toml
- state_dir: log file
- cache_dir: regenerable data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir:   paths.ConfigDir(),
				StateDir:    paths.StateDir(),
				CacheDir:    paths.CacheDir(),
				LogFile:     paths.LogFile(),
				GlobalFiles: paths.GlobalConfigFiles(),
			}

			if cli.GetOptions(cmd).JSONOutput || !isTerminal() {
				data, err := gojson.MarshalIndent(output, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal paths to JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			p := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			p.Path("config", output.ConfigDir)
			p.Path("state", output.StateDir)
			p.Path("cache", output.CacheDir)
			p.Path("log file", output.LogFile)
			for _, f := range output.GlobalFiles {
				p.Path("global config", f)
			}
			return nil
		},
	}
}

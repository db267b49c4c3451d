package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
)

// CommandOptions holds the persistent flags shared by every command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a command with the standard jsonview flags.
// The flags are applied before any subcommand runs.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ApplyOptions(GetOptions(cmd))
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a jsonview.yml or jsonview.toml file")

	SetStyledHelp(cmd)

	return cmd
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// ApplyOptions makes --config visible to every later config load and turns
// on debug logging for --verbose.
func ApplyOptions(opts CommandOptions) error {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return errors.ConfigNotFound(opts.ConfigFile)
		}
		if err := os.Setenv(config.EnvConfigPath, opts.ConfigFile); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to set config path")
		}
	}
	if opts.Verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// LoadConfig loads the file named by --config, or the layered configuration
// for the working directory.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path := GetOptions(cmd).ConfigFile; path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

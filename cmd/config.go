package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/tui/theme"
)

// NewConfigCmd groups the configuration inspection commands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect jsonview configuration",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSchemaCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the layered configuration for the current directory",
		Long: `Shows how the final configuration is built by merging layers:
1. Global config (~/.config/jsonview/jsonview.yml)
2. Project config (jsonview.yml found upward from the current directory)
3. Override files (jsonview.override.yml next to the project file)
With --config only that file is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if path := cli.GetOptions(cmd).ConfigFile; path != "" {
				cfg, err := config.Load(path)
				if err != nil {
					return err
				}
				return printLayer(out, strings.ToUpper(string(config.SourceExplicit))+" CONFIG", path, cfg)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to get current directory")
			}
			layered, err := config.LoadLayered(cwd)
			if err != nil {
				return err
			}

			for _, layer := range layered.Layers {
				title := strings.ToUpper(string(layer.Source)) + " CONFIG"
				if err := printLayer(out, title, layer.Path, layer.Raw); err != nil {
					return err
				}
			}
			return printLayer(out, "FINAL MERGED CONFIG", "", layered.Final)
		},
	}
}

func printLayer(w io.Writer, title, path string, v interface{}) error {
	t := theme.DefaultTheme
	fmt.Fprintln(w, t.Muted.Render("--- # "+title))
	if path != "" {
		fmt.Fprintln(w, t.Muted.Render("# Source: "+path))
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to render configuration")
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for jsonview.yml",
		Long: `Print the JSON Schema that configuration files are validated against.
Editors with YAML language support can use it for completion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

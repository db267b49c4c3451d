package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/errors"
)

func TestStandardFlags(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	path := filepath.Join(t.TempDir(), "jsonview.yml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\nindent: 4\n"), 0o644))

	var got CommandOptions
	var cfg *config.Config
	root := NewStandardCommand("jsonview", "test")
	root.AddCommand(&cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			got = GetOptions(cmd)
			var err error
			cfg, err = LoadConfig(cmd)
			return err
		},
	})
	root.SetArgs([]string{"probe", "--json", "--config", path})
	require.NoError(t, root.Execute())

	assert.True(t, got.JSONOutput)
	assert.False(t, got.Verbose)
	assert.Equal(t, path, got.ConfigFile)
	assert.Equal(t, path, os.Getenv(config.EnvConfigPath))
	assert.Equal(t, config.ThemeDark, cfg.Theme)
	assert.Equal(t, "    ", cfg.Indent.Unit())
}

func TestMissingConfigFlag(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	root := NewStandardCommand("jsonview", "test")
	root.AddCommand(&cobra.Command{Use: "probe", RunE: func(*cobra.Command, []string) error { return nil }})
	root.SetArgs([]string{"probe", "--config", filepath.Join(t.TempDir(), "nope.yml")})

	err := root.Execute()
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

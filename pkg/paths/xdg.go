// Package paths resolves the directories jsonview reads and writes.
//
// Resolution order:
// 1. JSONVIEW_HOME (portable root) → $JSONVIEW_HOME/{config,state,cache}
// 2. XDG env vars → $XDG_*_HOME/jsonview
// 3. Platform defaults → ~/.config/jsonview, ~/.local/state/jsonview, ~/.cache/jsonview
package paths

import (
	"os"
	"path/filepath"
)

const appName = "jsonview"

// HomeEnv is the environment variable that relocates every directory.
const HomeEnv = "JSONVIEW_HOME"

// base resolves one XDG category: the portable root's sub directory, the
// XDG variable, or the fallback below the user's home.
func base(sub, xdgVar string, fallback ...string) string {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Join(home, sub)
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, appName)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append(append([]string{homeDir}, fallback...), appName)...)
	}
	return ""
}

// ConfigDir holds the global jsonview.yml or jsonview.toml.
func ConfigDir() string {
	return base("config", "XDG_CONFIG_HOME", ".config")
}

// StateDir holds logs.
func StateDir() string {
	return base("state", "XDG_STATE_HOME", ".local", "state")
}

// CacheDir holds regenerable data such as the generated config schema.
func CacheDir() string {
	return base("cache", "XDG_CACHE_HOME", ".cache")
}

// GlobalConfigFiles lists the candidate global config files in precedence order.
func GlobalConfigFiles() []string {
	dir := ConfigDir()
	if dir == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, "jsonview.yml"),
		filepath.Join(dir, "jsonview.yaml"),
		filepath.Join(dir, "jsonview.toml"),
	}
}

// LogFile is the default file sink for logs.
func LogFile() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "jsonview.log")
}

// EnsureDirs creates all jsonview directories if they don't exist.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), StateDir(), CacheDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

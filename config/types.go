package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/grovetools/jsonview/pkg/format"
)

// Theme names accepted by the theme setting.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// SearchConfig holds defaults for the search prompt.
type SearchConfig struct {
	Regex bool `yaml:"regex,omitempty" toml:"regex,omitempty" mapstructure:"regex" jsonschema:"description=Start searches in regular expression mode"`
}

// KeybindingsConfig maps action names (e.g. "toggle", "expand_all") to the
// keys that trigger them, replacing the defaults for those actions.
type KeybindingsConfig map[string][]string

// Config represents the merged jsonview.yml / jsonview.toml settings.
type Config struct {
	Theme       string            `yaml:"theme,omitempty" toml:"theme,omitempty" mapstructure:"theme" jsonschema:"enum=light,enum=dark,enum=system,description=Color theme; system follows the terminal background"`
	Indent      format.Indent     `yaml:"indent,omitempty" toml:"indent,omitempty" mapstructure:"indent" jsonschema:"description=Indentation used when beautifying: 2, 4 or tab"`
	ExpandLevel *int              `yaml:"expand_level,omitempty" toml:"expand_level,omitempty" mapstructure:"expand_level" jsonschema:"minimum=0,description=Depth expanded when a document is opened; unset keeps the root and its children open"`
	Search      SearchConfig      `yaml:"search,omitempty" toml:"search,omitempty" mapstructure:"search" jsonschema:"description=Search defaults"`
	DebounceMs  int               `yaml:"debounce_ms,omitempty" toml:"debounce_ms,omitempty" mapstructure:"debounce_ms" jsonschema:"minimum=0,description=Delay before a changed document is re-parsed, in milliseconds"`
	Keys        KeybindingsConfig `yaml:"keys,omitempty" toml:"keys,omitempty" mapstructure:"keys" jsonschema:"description=Keybinding overrides for the interactive viewer"`

	// Extensions captures all other top-level keys, such as logging.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" mapstructure:",remain" jsonschema:"-"`
}

// Defaults applied by SetDefaults.
const (
	DefaultTheme      = ThemeSystem
	DefaultDebounceMs = 150
)

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Indent == (format.Indent{}) {
		c.Indent = format.DefaultIndent
	}
	if c.DebounceMs == 0 {
		c.DebounceMs = DefaultDebounceMs
	}
}

// InitialLevel is the configured expand_level, or -1 to keep the default
// expansion policy.
func (c *Config) InitialLevel() int {
	if c.ExpandLevel == nil {
		return -1
	}
	return *c.ExpandLevel
}

// UnmarshalExtension decodes a specific extension's configuration into the
// provided target struct. The target must be a pointer. A missing key leaves
// the target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	// Extensions are configured with `yaml` tags for consistency with the
	// rest of the file.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// ConfigSource identifies the origin of a configuration layer.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceGlobal   ConfigSource = "global"
	SourceProject  ConfigSource = "project"
	SourceOverride ConfigSource = "override"
	SourceExplicit ConfigSource = "explicit"
)

// Layer is the raw content of one configuration file.
type Layer struct {
	Source ConfigSource
	Path   string
	Raw    map[string]interface{}
}

// LayeredConfig holds every layer that contributed to the final
// configuration, in order of application, plus the merged result.
type LayeredConfig struct {
	Layers []Layer
	Final  *Config
}

// FilePaths maps each file-backed layer to its path.
func (l *LayeredConfig) FilePaths() map[ConfigSource]string {
	out := make(map[ConfigSource]string)
	for _, layer := range l.Layers {
		if layer.Path != "" {
			out[layer.Source] = layer.Path
		}
	}
	return out
}

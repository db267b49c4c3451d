package config

import (
	"fmt"

	"github.com/grovetools/jsonview/errors"
)

// maxExpandLevel bounds expand_level; deeper documents can still be opened
// with the expand-all command.
const maxExpandLevel = 64

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Theme {
	case "", ThemeLight, ThemeDark, ThemeSystem:
	default:
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("unknown theme '%s'", c.Theme)).
			WithDetail("theme", c.Theme)
	}

	if c.ExpandLevel != nil && (*c.ExpandLevel < 0 || *c.ExpandLevel > maxExpandLevel) {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("expand_level must be between 0 and %d", maxExpandLevel)).
			WithDetail("expand_level", *c.ExpandLevel)
	}

	if c.DebounceMs < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "debounce_ms cannot be negative").
			WithDetail("debounce_ms", c.DebounceMs)
	}

	for action, keys := range c.Keys {
		if len(keys) == 0 {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("no keys bound to action '%s'", action)).
				WithDetail("action", action)
		}
	}

	return nil
}

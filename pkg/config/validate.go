package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks values that cannot be used even after recovery.
var ErrInvalidConfig = errors.New("invalid config")

// Validate clamps soft limits back to defaults and reports values that
// leave the service unusable.
func (c *Config) Validate() error {
	defaults := DefaultConfig()
	s := &c.Server

	if s.MaxLimit < 1 {
		s.MaxLimit = defaults.Server.MaxLimit
	}
	if s.DefaultLimit < 1 || s.DefaultLimit > s.MaxLimit {
		s.DefaultLimit = min(defaults.Server.DefaultLimit, s.MaxLimit)
	}
	if s.MinPrefix < 1 {
		s.MinPrefix = 1
	}
	if s.CacheSize < 0 {
		s.CacheSize = 0
	}
	if c.CLI.DefaultLimit < 1 {
		c.CLI.DefaultLimit = defaults.CLI.DefaultLimit
	}

	if s.MaxPrefix < s.MinPrefix {
		return fmt.Errorf("%w: max_prefix %d is below min_prefix %d", ErrInvalidConfig, s.MaxPrefix, s.MinPrefix)
	}
	if c.Dict.Default == "" {
		return fmt.Errorf("%w: dict.default is empty", ErrInvalidConfig)
	}
	if c.Web.CookieName == "" {
		c.Web.CookieName = defaults.Web.CookieName
	}
	return nil
}

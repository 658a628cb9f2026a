package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if !strings.HasSuffix(c.Socket.BaseURL, "/") {
		return errors.New("socket.base_url must end with '/'")
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must be >= 0")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level)
	}

	for i, market := range c.Markets {
		if market == "" {
			return fmt.Errorf("markets[%d] is empty", i)
		}
	}

	return nil
}

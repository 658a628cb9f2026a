package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAPIBaseURL    = "https://bittrex.com/api"
	DefaultSocketBaseURL = "https://socket.bittrex.com/signalr/"
	DefaultAPITimeout    = 20 * time.Second
	DefaultLogLevel      = "info"
)

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.Socket.BaseURL == "" {
		c.Socket.BaseURL = DefaultSocketBaseURL
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAssembly(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAssembly() error {
	if c.Assembly.BufferKiB < 1 || c.Assembly.BufferKiB > maxBufferKiB {
		return fmt.Errorf("assembly.buffer_kib must be between 1 and %d, got %d", maxBufferKiB, c.Assembly.BufferKiB)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

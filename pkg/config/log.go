package config

import (
	"fmt"
	"slices"
	"strings"
)

type LogConfig struct {
	Level string `koanf:"level"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// String returns a string representation of the log configuration.
func (c *LogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Level))
	return b.String()
}

func (c *LogConfig) Validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	c.Level = strings.ToLower(c.Level)
	if !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("unknown log level %q, expected one of %v", c.Level, logLevels)
	}
	return nil
}

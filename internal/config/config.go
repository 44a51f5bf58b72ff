package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/productapi/pkg/config"
	"github.com/abgdnv/productapi/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig      `koanf:"server"`
	Log        config.LogConfig       `koanf:"log"`
	PProf      config.PProfConfig     `koanf:"pprof"`
	Shutdown   config.ShutdownConfig  `koanf:"shutdown"`
	Auth       config.AuthConfig      `koanf:"auth"`
	Telemetry  config.TelemetryConfig `koanf:"telemetry"`
	Metrics    config.MetricsConfig   `koanf:"metrics"`
	Catalog    CatalogConfig          `koanf:"catalog"`
}

// CatalogConfig controls the state the product catalog starts in.
type CatalogConfig struct {
	Seed bool `koanf:"seed"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Auth.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Metrics.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  seed: %t\n", c.Catalog.Seed))
	return b.String()
}

// Validate checks the configuration and fills in defaults for optional settings.
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Auth,
		&c.Log,
		&c.PProf,
		&c.Telemetry,
		&c.Metrics,
		&c.Shutdown,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

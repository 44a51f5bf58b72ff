package config

import (
	"fmt"
	"strings"
)

// AuthConfig holds the shared secret that guards mutating product requests.
type AuthConfig struct {
	Header string `koanf:"header"`
	APIKey string `koanf:"apikey"`
}

const defaultAuthHeader = "X-Api-Key"

// String returns a string representation of the auth configuration with the secret masked.
func (c *AuthConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Auth ---\n")
	b.WriteString(fmt.Sprintf("  header: %s\n", c.Header))
	b.WriteString(fmt.Sprintf("  apikey: %s\n", maskSecret(c.APIKey)))
	return b.String()
}

func (c *AuthConfig) Validate() error {
	if c.Header == "" {
		c.Header = defaultAuthHeader
	}
	if c.APIKey == "" {
		return fmt.Errorf("auth API key is not configured")
	}
	return nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<not configured>"
	}
	return "****"
}

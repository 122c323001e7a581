package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL     string
	Token         string
	TokenFile     string
	APIKey        string
	AdminPassword string
	Output        string
	Verbose       bool
}

// DefaultConfig returns config with default values
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		ServerURL:     getEnvOrDefault("JURORCTL_SERVER", "http://localhost:8080"),
		Token:         os.Getenv("JURORCTL_TOKEN"),
		TokenFile:     filepath.Join(homeDir, ".jurorctl", "token"),
		APIKey:        os.Getenv("JURORCTL_API_KEY"),
		AdminPassword: os.Getenv("JURORCTL_ADMIN_PASSWORD"),
		Output:        "text",
	}
}

// LoadToken loads the token from the token file if not already set
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read token file: %w", err)
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken saves the token to the token file
func (c *Config) SaveToken(token string) error {
	dir := filepath.Dir(c.TokenFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(c.TokenFile, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	c.Token = token
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

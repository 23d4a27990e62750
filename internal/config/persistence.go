// file: internal/config/persistence.go
// version: 1.3.0
// guid: 0d7f4a92-6b35-4c81-9e2d-b5a08c63f174

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveConfigFile writes the current configuration to path as YAML.
// Secrets stay out of the file when empty thanks to omitempty tags.
func SaveConfigFile(path string) error {
	if path == "" {
		return fmt.Errorf("config file path is empty")
	}

	data, err := yaml.Marshal(&AppConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	log.Printf("[INFO] Saved config to %s", path)
	return nil
}

// LoadConfigFromFile loads settings from a YAML config file as a
// fallback: only values still at their zero value are filled in, so
// flags and environment keep precedence.
func LoadConfigFromFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		log.Printf("Warning: Failed to parse config file %s: %v", path, err)
		return nil
	}

	applied := 0
	if AppConfig.AdminUsername == "" && fileConfig.AdminUsername != "" {
		AppConfig.AdminUsername = fileConfig.AdminUsername
		applied++
	}
	if AppConfig.AdminPassword == "" && fileConfig.AdminPassword != "" {
		AppConfig.AdminPassword = fileConfig.AdminPassword
		applied++
	}
	if AppConfig.AdminPasswordHash == "" && fileConfig.AdminPasswordHash != "" {
		AppConfig.AdminPasswordHash = fileConfig.AdminPasswordHash
		applied++
	}
	if AppConfig.RateLimitPerMinute == 0 && fileConfig.RateLimitPerMinute != 0 {
		AppConfig.RateLimitPerMinute = fileConfig.RateLimitPerMinute
		applied++
	}
	if AppConfig.RateLimitBurst == 0 && fileConfig.RateLimitBurst != 0 {
		AppConfig.RateLimitBurst = fileConfig.RateLimitBurst
		applied++
	}
	if AppConfig.APIToken == "" && fileConfig.APIToken != "" {
		AppConfig.APIToken = fileConfig.APIToken
		applied++
	}

	if applied > 0 {
		log.Printf("[INFO] Loaded %d settings from config file %s", applied, path)
	}
	return nil
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(path)
}

// MustLoadDotEnv loads environment variables from an explicitly named .env
// file. Unlike LoadDotEnv, a missing file is an error.
func MustLoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from a .env file and environment variables.
// An empty envPath reads ./.env when present; an explicit envPath must exist.
// Variables already set in the environment take precedence.
func LoadConfig(envPath string) (AppConfig, error) {
	load := LoadDotEnv
	if envPath != "" {
		load = MustLoadDotEnv
	}
	if err := load(envPath); err != nil {
		return AppConfig{}, err
	}

	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}

	return envCfg.ToAppConfig()
}

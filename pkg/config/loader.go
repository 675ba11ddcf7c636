package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, BOOKDEN_CONFIG env, ./config.yaml, /etc/bookden/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. BOOKDEN_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/bookden/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("BOOKDEN_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/bookden/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps BOOKDEN_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BOOKDEN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BOOKDEN_STORAGE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("BOOKDEN_POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("BOOKDEN_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("BOOKDEN_TOKEN_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = ttl
		}
	}
	if v := os.Getenv("BOOKDEN_S3_ENDPOINT"); v != "" {
		cfg.Images.Endpoint = v
	}
	if v := os.Getenv("BOOKDEN_S3_REGION"); v != "" {
		cfg.Images.Region = v
	}
	if v := os.Getenv("BOOKDEN_S3_BUCKET"); v != "" {
		cfg.Images.Bucket = v
	}
	if v := os.Getenv("BOOKDEN_S3_ACCESS_KEY"); v != "" {
		cfg.Images.AccessKey = v
	}
	if v := os.Getenv("BOOKDEN_S3_SECRET_KEY"); v != "" {
		cfg.Images.SecretKey = v
	}
	if v := os.Getenv("BOOKDEN_S3_PUBLIC_URL"); v != "" {
		cfg.Images.PublicBaseURL = v
	}
	if v := os.Getenv("BOOKDEN_KEEPALIVE_URL"); v != "" {
		cfg.KeepAlive.URL = v
	}
	if v := os.Getenv("BOOKDEN_KEEPALIVE_INTERVAL"); v != "" {
		if interval, err := time.ParseDuration(v); err == nil {
			cfg.KeepAlive.Interval = interval
		}
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is empty
// and the file field is set, the file is read, whitespace is trimmed, and
// the value field is populated.
func resolveFileReferences(cfg *Config) error {
	if cfg.Auth.JWTSecretFile != "" && cfg.Auth.JWTSecret == "" {
		val, err := readSecretFile(cfg.Auth.JWTSecretFile)
		if err != nil {
			return fmt.Errorf("auth.jwt_secret_file: %w", err)
		}
		cfg.Auth.JWTSecret = val
	}

	if cfg.Storage.Postgres.DSNFile != "" && cfg.Storage.Postgres.DSN == "" {
		val, err := readSecretFile(cfg.Storage.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("storage.postgres.dsn_file: %w", err)
		}
		cfg.Storage.Postgres.DSN = val
	}

	if cfg.Images.AccessKeyFile != "" && cfg.Images.AccessKey == "" {
		val, err := readSecretFile(cfg.Images.AccessKeyFile)
		if err != nil {
			return fmt.Errorf("images.access_key_file: %w", err)
		}
		cfg.Images.AccessKey = val
	}

	if cfg.Images.SecretKeyFile != "" && cfg.Images.SecretKey == "" {
		val, err := readSecretFile(cfg.Images.SecretKeyFile)
		if err != nil {
			return fmt.Errorf("images.secret_key_file: %w", err)
		}
		cfg.Images.SecretKey = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Package config provides unified configuration for the bookden service.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (BOOKDEN_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the bookden service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Auth          AuthConfig          `yaml:"auth"`
	Images        ImagesConfig        `yaml:"images"`
	KeepAlive     KeepAliveConfig     `yaml:"keepalive"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 10 MiB
	UploadTimeout   time.Duration `yaml:"upload_timeout"`   // default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
}

// StorageConfig holds state management settings.
type StorageConfig struct {
	Type     string         `yaml:"type"` // "memory" or "postgres", default: "memory"
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	JWTSecretFile string        `yaml:"jwt_secret_file"` // _file variant for jwt_secret
	TokenTTL      time.Duration `yaml:"token_ttl"`       // default: 360h (15 days)
}

// ImagesConfig holds object storage settings for cover images. When the
// section is left unconfigured (no bucket), book creation is rejected
// with a not-implemented error.
type ImagesConfig struct {
	Endpoint      string `yaml:"endpoint"` // optional, for MinIO and compatibles
	Region        string `yaml:"region"`
	Bucket        string `yaml:"bucket"`
	AccessKey     string `yaml:"access_key"`
	AccessKeyFile string `yaml:"access_key_file"` // _file variant for access_key
	SecretKey     string `yaml:"secret_key"`
	SecretKeyFile string `yaml:"secret_key_file"` // _file variant for secret_key
	PublicBaseURL string `yaml:"public_base_url"`
}

// Configured reports whether the images section carries enough to build
// an object store.
func (c ImagesConfig) Configured() bool {
	return c.Bucket != ""
}

// KeepAliveConfig holds the self-ping settings that keep free-tier
// hosting from idling the service out. An empty URL disables the pinger.
type KeepAliveConfig struct {
	URL      string        `yaml:"url"`
	Interval time.Duration `yaml:"interval"` // default: 14m
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			MaxBodySize:     10 << 20,
			UploadTimeout:   30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Type: "memory",
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		Auth: AuthConfig{
			TokenTTL: 15 * 24 * time.Hour,
		},
		KeepAlive: KeepAliveConfig{
			Interval: 14 * time.Minute,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// The signing secret has no safe default; refusing to start beats
	// issuing tokens signed with an empty key.
	if c.Auth.JWTSecret == "" && c.Auth.JWTSecretFile == "" {
		errs = append(errs, fmt.Errorf("auth.jwt_secret or auth.jwt_secret_file is required"))
	}

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	switch c.Storage.Type {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\" or \"postgres\", got %q", c.Storage.Type))
	}

	if c.Storage.Type == "postgres" {
		if c.Storage.Postgres.DSN == "" && c.Storage.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	}

	// A partially configured images section is a misconfiguration, not
	// a disabled feature.
	if c.Images.Configured() {
		if c.Images.PublicBaseURL == "" {
			errs = append(errs, fmt.Errorf("images.public_base_url is required when images.bucket is set"))
		}
		if c.Images.AccessKey == "" && c.Images.AccessKeyFile == "" {
			errs = append(errs, fmt.Errorf("images.access_key or images.access_key_file is required when images.bucket is set"))
		}
		if c.Images.SecretKey == "" && c.Images.SecretKeyFile == "" {
			errs = append(errs, fmt.Errorf("images.secret_key or images.secret_key_file is required when images.bucket is set"))
		}
	}

	if c.KeepAlive.URL != "" && c.KeepAlive.Interval <= 0 {
		errs = append(errs, fmt.Errorf("keepalive.interval must be > 0 when keepalive.url is set"))
	}

	return errors.Join(errs...)
}

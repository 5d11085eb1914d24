package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable for the
// current environment. Production refuses to start on the development
// JWT secret or a missing database password.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}
	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "must not be empty"}
	}

	if IsProduction() {
		if cfg.JWTSecret == "your-secret-key-change-in-production" {
			return ValidationError{Field: "JWT_SECRET", Message: "default secret is not allowed in production"}
		}
		if cfg.DBPassword == "" {
			return ValidationError{Field: "DB_PASSWORD", Message: "must be set in production"}
		}
	}

	return nil
}

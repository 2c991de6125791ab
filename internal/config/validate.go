package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks cross-field constraints that tag-level validation cannot
// express.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.MaxConns < 1 {
		errs = append(errs, "database.max_conns must be at least 1")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, "database.min_conns exceeds database.max_conns")
	}
	if c.Rabbit.Port < 1 || c.Rabbit.Port > 65535 {
		errs = append(errs, fmt.Sprintf("rabbit.port %d out of range", c.Rabbit.Port))
	}
	if c.Rabbit.ExchangeName == "" {
		errs = append(errs, "rabbit.exchange_name must not be empty")
	}
	if !strings.HasPrefix(c.UserService.Endpoint, "http://") && !strings.HasPrefix(c.UserService.Endpoint, "https://") {
		errs = append(errs, "user_service.endpoint must be an http(s) URL")
	}
	if c.Workflow.StoreTimeout <= 0 {
		errs = append(errs, "workflow.store_timeout must be positive")
	}
	if c.Workflow.MaxBatchSize < 1 {
		errs = append(errs, "workflow.max_batch_size must be at least 1")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q unknown", c.Log.Level))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

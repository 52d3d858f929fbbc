package config

import (
	"errors"
	"fmt"
	"regexp"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that all required fields are set and values are valid.
func (c *LoaderConfig) Validate() error {
	if c.Source.Path == "" {
		return errors.New("source.path is required")
	}

	switch c.Normalize.Mode {
	case "deduplicate", "merge_liquidity", "passthrough":
	default:
		return fmt.Errorf("normalize.mode must be deduplicate, merge_liquidity or passthrough, got %q", c.Normalize.Mode)
	}

	switch c.Normalize.NegativeExpiry {
	case "warn", "reject":
	default:
		return fmt.Errorf("normalize.negative_expiry must be warn or reject, got %q", c.Normalize.NegativeExpiry)
	}

	switch c.Output.Compress {
	case "", "zstd":
	default:
		return fmt.Errorf("output.compress must be empty or zstd, got %q", c.Output.Compress)
	}

	if !tableNameRe.MatchString(c.Database.Table) {
		return fmt.Errorf("database.table %q is not a valid identifier", c.Database.Table)
	}
	if c.Database.BatchSize < 1 {
		return errors.New("database.batch_size must be >= 1")
	}

	if c.Database.Timescale.Enabled() {
		if err := c.Database.Timescale.validate("database.timescale"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

package validation

import "github.com/aretw0/conform/pkg/domain"

type checkConfig struct {
	sameType     bool
	allowNone    bool
	allowedTypes domain.TypeSet
}

// CheckOption tunes a single field check.
type CheckOption func(*checkConfig)

// SameType requires every checked field to resolve to one identical type.
// For collection fields it applies separately to sample-level and frame-level groups.
func SameType() CheckOption {
	return func(c *checkConfig) {
		c.sameType = true
	}
}

// DisallowNone makes nil field values fail with domain.ErrValue.
func DisallowNone() CheckOption {
	return func(c *checkConfig) {
		c.allowNone = false
	}
}

// AllowedTypes restricts the runtime types of fetched sample values.
func AllowedTypes(set domain.TypeSet) CheckOption {
	return func(c *checkConfig) {
		c.allowedTypes = set
	}
}

func newCheckConfig(opts []CheckOption) checkConfig {
	cfg := checkConfig{allowNone: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

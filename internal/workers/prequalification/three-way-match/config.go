// internal/workers/prequalification/three-way-match/config.go
package threewaymatch

import (
	"time"

	"procurement-workers/internal/common/config"
)

type Config struct {
	// Tolerance is the largest invoice/PO difference still treated as a
	// match. The default is 0: amounts must be exactly equal.
	Tolerance float64
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Tolerance: 0,
		Timeout:   30 * time.Second,
	}
}

// ConfigFromPolicy builds a worker config from the shared policy section.
func ConfigFromPolicy(policy config.PolicyConfig) *Config {
	cfg := LoadConfig()
	if policy.MatchTolerance > 0 {
		cfg.Tolerance = policy.MatchTolerance
	}
	return cfg
}

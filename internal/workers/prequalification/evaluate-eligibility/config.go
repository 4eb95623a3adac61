// internal/workers/prequalification/evaluate-eligibility/config.go
package evaluateeligibility

import (
	"time"

	"procurement-workers/internal/common/config"
)

type Config struct {
	// MinTurnoverMultiple is the fallback when the project does not carry its
	// own multiple.
	MinTurnoverMultiple float64
	ScoreThreshold      float64
	Timeout             time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MinTurnoverMultiple: 3,
		ScoreThreshold:      70,
		Timeout:             30 * time.Second,
	}
}

// ConfigFromPolicy builds a worker config from the shared policy section.
func ConfigFromPolicy(policy config.PolicyConfig) *Config {
	cfg := LoadConfig()
	if policy.MinTurnoverMultiple > 0 {
		cfg.MinTurnoverMultiple = policy.MinTurnoverMultiple
	}
	if policy.ScoreThreshold > 0 {
		cfg.ScoreThreshold = policy.ScoreThreshold
	}
	return cfg
}

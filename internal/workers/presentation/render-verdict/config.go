// internal/workers/presentation/render-verdict/config.go
package renderverdict

import (
	"time"

	"procurement-workers/internal/common/config"
)

type Config struct {
	// ToastTTL is how long the injected notification stays on the page
	// before its exit transition.
	ToastTTL time.Duration
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ToastTTL: 5 * time.Second,
		Timeout:  15 * time.Second,
	}
}

// ConfigFromPolicy builds a worker config from the shared policy section.
func ConfigFromPolicy(policy config.PolicyConfig) *Config {
	cfg := LoadConfig()
	if policy.ToastTTLMillis > 0 {
		cfg.ToastTTL = config.GetDuration(policy.ToastTTLMillis)
	}
	return cfg
}

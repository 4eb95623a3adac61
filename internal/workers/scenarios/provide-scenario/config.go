// internal/workers/scenarios/provide-scenario/config.go
package providescenario

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}

// internal/workers/data-access/query-procurement/config.go
package queryprocurement

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}

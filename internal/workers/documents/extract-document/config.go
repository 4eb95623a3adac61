// internal/workers/documents/extract-document/config.go
package extractdocument

import "time"

type Config struct {
	// MinTextLength is the smallest payload that still counts as a readable
	// document. Anything shorter is treated as a failed upstream extraction.
	MinTextLength    int
	MaxTurnoverYears int
	// MinTotalTurnover is the aggregate-turnover threshold for the
	// pre-qualification pre-screen, summed over the declared years.
	MinTotalTurnover float64
	Timeout          time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MinTextLength:    20,
		MaxTurnoverYears: 3,
		MinTotalTurnover: 1000000,
		Timeout:          30 * time.Second,
	}
}

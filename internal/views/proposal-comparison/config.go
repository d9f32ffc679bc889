// internal/views/proposal-comparison/config.go
package proposalcomparison

import "time"

type Config struct {
	Timeout time.Duration
	// Submission and comparison both run AI analysis server side.
	AnalysisTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         30 * time.Second,
		AnalysisTimeout: 120 * time.Second,
	}
}

// internal/views/rfp-form/config.go
package rfpform

import "time"

type Config struct {
	// Generation waits on the AI, so it gets more room than a plain save.
	GenerateTimeout time.Duration
	SaveTimeout     time.Duration
	DefaultCurrency string
}

func LoadConfig() *Config {
	return &Config{
		GenerateTimeout: 90 * time.Second,
		SaveTimeout:     30 * time.Second,
		DefaultCurrency: "USD",
	}
}

// internal/workers/assessment/match-clinics/config.go
package matchclinics

import "time"

type Config struct {
	Timeout    time.Duration
	MaxMatches int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		MaxMatches: 5,
	}
}

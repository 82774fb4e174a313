// internal/workers/assessment/submit-assessment/config.go
package submitassessment

import "time"

type Config struct {
	Timeout       time.Duration
	MaxMatches    int
	RecordResults bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       15 * time.Second,
		MaxMatches:    5,
		RecordResults: true,
	}
}

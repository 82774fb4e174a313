// internal/workers/assessment/assessment-navigate/config.go
package assessmentnavigate

import "time"

type Config struct {
	Timeout time.Duration
	// SaveProgress persists the flow after every transition.
	SaveProgress bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		SaveProgress: true,
	}
}

// internal/workers/communication/send-assessment-results/config.go
package sendassessmentresults

import "time"

type Config struct {
	Timeout time.Duration
	// FailOnSendError fails the job with a retryable NOTIFICATION_SEND_FAILED
	// instead of completing it with sent=false.
	FailOnSendError bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

package explain

import "time"

// Config holds explanation request settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one request including retries.
	Timeout time.Duration
}

// DefaultConfig returns the defaults: low temperature so explanations stay
// on the grammar point, and enough room for a short worked answer.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   800,
		Temperature: 0.3,
		Timeout:     60 * time.Second,
	}
}

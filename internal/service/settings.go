package service

import (
	"time"

	"bizharvest/internal/core/domain"
)

// DefaultMaxPages caps how many listing pages are walked per task.
const DefaultMaxPages = 25

// Settings are the pipeline knobs. They are fixed for the lifetime of a run.
type Settings struct {
	MinYears       int
	MaxPages       int
	MaxRetries     int
	RequiredFields []string

	NavTimeout    time.Duration
	WaitTimeout   time.Duration
	SettleDelay   time.Duration
	RetryBackoff  time.Duration
	TaskDelay     time.Duration
	LocationDelay time.Duration

	// NavRatePerSec limits page loads across the whole run. Zero means unlimited.
	NavRatePerSec float64
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		MinYears:       10,
		MaxPages:       DefaultMaxPages,
		MaxRetries:     3,
		RequiredFields: []string{domain.FieldPhone},
		NavTimeout:     30 * time.Second,
		WaitTimeout:    30 * time.Second,
		SettleDelay:    time.Second,
		RetryBackoff:   2 * time.Second,
		TaskDelay:      5 * time.Second,
		LocationDelay:  10 * time.Second,
	}
}

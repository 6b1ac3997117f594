// Package config loads harvest settings from defaults, an optional JSON file
// and the environment, in that order of precedence.
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/service"
)

var (
	// ErrNoTasks means there is nothing to search for.
	ErrNoTasks = eris.New("no locations or search terms configured")
	// ErrInvalid wraps every other validation failure.
	ErrInvalid = eris.New("invalid configuration")
)

// Session modes.
const (
	ModeChrome = "chrome"
	ModeHTTP   = "http"
)

// Config is the full harvest configuration. Durations are in milliseconds to
// match the environment keys.
type Config struct {
	Locations      []string `json:"locations"`
	Terms          []string `json:"terms"`
	MinYears       int      `json:"min_years"`
	MaxPages       int      `json:"max_pages"`
	MaxRetries     int      `json:"max_retries"`
	RequiredFields []string `json:"required_fields"`

	NavTimeoutMs    int     `json:"nav_timeout_ms"`
	WaitTimeoutMs   int     `json:"wait_timeout_ms"`
	SettleDelayMs   int     `json:"settle_delay_ms"`
	RetryBackoffMs  int     `json:"retry_backoff_ms"`
	TaskDelayMs     int     `json:"task_delay_ms"`
	LocationDelayMs int     `json:"location_delay_ms"`
	NavRatePerSec   float64 `json:"nav_rate_per_sec"`

	OutputDir   string `json:"output_dir"`
	Headless    bool   `json:"headless"`
	SessionMode string `json:"session_mode"`
	SiteProfile string `json:"site_profile"`
	SiteBaseURL string `json:"site_base_url"`
	DatabaseURL string `json:"database_url"`
	LogLevel    string `json:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	s := service.DefaultSettings()
	return Config{
		MinYears:        s.MinYears,
		MaxPages:        s.MaxPages,
		MaxRetries:      s.MaxRetries,
		RequiredFields:  s.RequiredFields,
		NavTimeoutMs:    toMs(s.NavTimeout),
		WaitTimeoutMs:   toMs(s.WaitTimeout),
		SettleDelayMs:   toMs(s.SettleDelay),
		RetryBackoffMs:  toMs(s.RetryBackoff),
		TaskDelayMs:     toMs(s.TaskDelay),
		LocationDelayMs: toMs(s.LocationDelay),
		OutputDir:       "./data",
		Headless:        true,
		SessionMode:     ModeChrome,
		SiteProfile:     "bbb",
		LogLevel:        "info",
	}
}

// Load builds a Config from defaults, the JSON file at path (if path is not
// empty) and the environment. It does not validate.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, eris.Wrapf(err, "failed to read config file %s", path)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, eris.Wrapf(err, "failed to parse config file %s", path)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	setList := func(key string, dst *[]string) {
		if v, ok := get(key); ok {
			*dst = SplitList(v)
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := get(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setString := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}

	setList("HARVEST_LOCATIONS", &c.Locations)
	setList("HARVEST_TERMS", &c.Terms)
	setInt("MIN_YEARS", &c.MinYears)
	setInt("MAX_PAGES", &c.MaxPages)
	setInt("MAX_RETRIES", &c.MaxRetries)
	setList("REQUIRED_FIELDS", &c.RequiredFields)
	setInt("NAV_TIMEOUT_MS", &c.NavTimeoutMs)
	setInt("WAIT_TIMEOUT_MS", &c.WaitTimeoutMs)
	setInt("SETTLE_DELAY_MS", &c.SettleDelayMs)
	setInt("RETRY_BACKOFF_MS", &c.RetryBackoffMs)
	setInt("TASK_DELAY_MS", &c.TaskDelayMs)
	setInt("LOCATION_DELAY_MS", &c.LocationDelayMs)
	if v, ok := get("NAV_RATE_PER_SEC"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.NavRatePerSec = f
		}
	}
	setString("OUTPUT_DIR", &c.OutputDir)
	if v, ok := get("HEADLESS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Headless = b
		}
	}
	setString("SESSION_MODE", &c.SessionMode)
	setString("SITE_PROFILE", &c.SiteProfile)
	setString("SITE_BASE_URL", &c.SiteBaseURL)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("LOG_LEVEL", &c.LogLevel)
}

// SplitList splits a ;-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration before any work starts.
func (c Config) Validate() error {
	if len(c.Tasks()) == 0 {
		return ErrNoTasks
	}
	if c.MaxPages < 1 {
		return eris.Wrapf(ErrInvalid, "max pages must be positive, got %d", c.MaxPages)
	}
	if c.MaxRetries < 1 {
		return eris.Wrapf(ErrInvalid, "max retries must be positive, got %d", c.MaxRetries)
	}
	if c.MinYears < 0 {
		return eris.Wrapf(ErrInvalid, "min years must not be negative, got %d", c.MinYears)
	}
	for _, f := range c.RequiredFields {
		if !domain.IsKnownField(f) {
			return eris.Wrapf(ErrInvalid, "unknown required field %q", f)
		}
	}
	for name, v := range map[string]int{
		"nav timeout":    c.NavTimeoutMs,
		"wait timeout":   c.WaitTimeoutMs,
		"settle delay":   c.SettleDelayMs,
		"retry backoff":  c.RetryBackoffMs,
		"task delay":     c.TaskDelayMs,
		"location delay": c.LocationDelayMs,
	} {
		if v < 0 {
			return eris.Wrapf(ErrInvalid, "%s must not be negative, got %d", name, v)
		}
	}
	if c.NavRatePerSec < 0 {
		return eris.Wrapf(ErrInvalid, "nav rate must not be negative, got %v", c.NavRatePerSec)
	}
	switch c.SessionMode {
	case ModeChrome, ModeHTTP:
	default:
		return eris.Wrapf(ErrInvalid, "unknown session mode %q", c.SessionMode)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return eris.Wrap(ErrInvalid, "output dir is empty")
	}
	return nil
}

// Tasks returns the search tasks, location-major.
func (c Config) Tasks() []domain.SearchTask {
	return domain.BuildTasks(c.Locations, c.Terms)
}

// Settings converts the configuration into pipeline settings.
func (c Config) Settings() service.Settings {
	return service.Settings{
		MinYears:       c.MinYears,
		MaxPages:       c.MaxPages,
		MaxRetries:     c.MaxRetries,
		RequiredFields: c.RequiredFields,
		NavTimeout:     ms(c.NavTimeoutMs),
		WaitTimeout:    ms(c.WaitTimeoutMs),
		SettleDelay:    ms(c.SettleDelayMs),
		RetryBackoff:   ms(c.RetryBackoffMs),
		TaskDelay:      ms(c.TaskDelayMs),
		LocationDelay:  ms(c.LocationDelayMs),
		NavRatePerSec:  c.NavRatePerSec,
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func toMs(d time.Duration) int {
	return int(d / time.Millisecond)
}

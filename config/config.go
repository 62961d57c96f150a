// Package config loads the agent's configuration from the environment.
// Secrets and schedule parameters come from a .env file (via godotenv) or
// the process environment; validation happens once at startup and any
// problem refuses to start the process.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Error marks a fatal configuration problem.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Errorf builds a configuration error.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// IsError reports whether err is (or wraps) a configuration error.
func IsError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}

// Defaults.
const (
	DefaultCheckIntervalMinutes = 60
	DefaultActiveHoursStart     = 8
	DefaultActiveHoursEnd       = 20
	DefaultMaxConversations     = 20
	DefaultMaxReplyLength       = 500
	DefaultGenerationTimeout    = 20 * time.Second
	DefaultAutoSendConfidence   = 0.6
	DefaultDailySendLimit       = 25
	DefaultMaxFailures          = 5
	DefaultDBPath               = "responder.db"
	DefaultCookiesPath          = "cookies.json"
)

// Config holds everything the agent needs for a run.
type Config struct {
	// Credentials, forwarded to the browser session.
	LinkedInEmail    string
	LinkedInPassword string

	// Absence disables AI generation and forces template fallback.
	OpenAIKey string

	// Schedule.
	CheckInterval    time.Duration
	ActiveHoursStart int // 0..23
	ActiveHoursEnd   int // 0..23, start < end
	Location         *time.Location

	// Cycle limits.
	MaxConversations  int
	MaxReplyLength    int
	GenerationTimeout time.Duration
	DailySendLimit    int

	// Approval policy.
	Unattended         bool
	AutoSendCategories []string
	AutoSendMinConf    float64
	SkipMarksRead      bool

	// Scheduler retry ceiling for consecutive fatal cycle errors.
	MaxConsecutiveFailures int

	// Paths and browser behavior.
	TemplatesPath string
	DBPath        string
	CookiesPath   string
	Headless      bool
}

// Load reads and validates configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		LinkedInEmail:          os.Getenv("LINKEDIN_EMAIL"),
		LinkedInPassword:       os.Getenv("LINKEDIN_PASSWORD"),
		OpenAIKey:              os.Getenv("OPENAI_API_KEY"),
		TemplatesPath:          os.Getenv("RESPONSE_TEMPLATES"),
		Unattended:             envBool("NON_INTERACTIVE", false),
		SkipMarksRead:          envBool("SKIP_MARKS_READ", false),
		Headless:               envBool("HEADLESS", true),
		AutoSendCategories:     envList("AUTO_SEND_CATEGORIES"),
		Location:               time.Local,
		DBPath:                 envString("DB_PATH", DefaultDBPath),
		CookiesPath:            envString("COOKIES_PATH", DefaultCookiesPath),
		MaxConsecutiveFailures: 0,
	}

	interval, err := envInt("CHECK_INTERVAL_MINUTES", DefaultCheckIntervalMinutes)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, Errorf("CHECK_INTERVAL_MINUTES must be > 0, got %d", interval)
	}
	cfg.CheckInterval = time.Duration(interval) * time.Minute

	cfg.ActiveHoursStart, err = envInt("ACTIVE_HOURS_START", DefaultActiveHoursStart)
	if err != nil {
		return nil, err
	}
	cfg.ActiveHoursEnd, err = envInt("ACTIVE_HOURS_END", DefaultActiveHoursEnd)
	if err != nil {
		return nil, err
	}
	if cfg.ActiveHoursStart < 0 || cfg.ActiveHoursStart > 23 {
		return nil, Errorf("ACTIVE_HOURS_START must be 0-23, got %d", cfg.ActiveHoursStart)
	}
	if cfg.ActiveHoursEnd < 0 || cfg.ActiveHoursEnd > 23 {
		return nil, Errorf("ACTIVE_HOURS_END must be 0-23, got %d", cfg.ActiveHoursEnd)
	}
	if cfg.ActiveHoursStart >= cfg.ActiveHoursEnd {
		return nil, Errorf("active hours start (%d) must be before end (%d)",
			cfg.ActiveHoursStart, cfg.ActiveHoursEnd)
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, Errorf("invalid TIMEZONE %q: %v", tz, err)
		}
		cfg.Location = loc
	}

	cfg.MaxConversations, err = envInt("MAX_CONVERSATIONS", DefaultMaxConversations)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConversations <= 0 {
		return nil, Errorf("MAX_CONVERSATIONS must be > 0, got %d", cfg.MaxConversations)
	}

	cfg.MaxReplyLength, err = envInt("MAX_REPLY_LENGTH", DefaultMaxReplyLength)
	if err != nil {
		return nil, err
	}
	if cfg.MaxReplyLength <= 0 {
		return nil, Errorf("MAX_REPLY_LENGTH must be > 0, got %d", cfg.MaxReplyLength)
	}

	genTimeout, err := envInt("GENERATION_TIMEOUT_SECONDS", int(DefaultGenerationTimeout/time.Second))
	if err != nil {
		return nil, err
	}
	if genTimeout <= 0 {
		return nil, Errorf("GENERATION_TIMEOUT_SECONDS must be > 0, got %d", genTimeout)
	}
	cfg.GenerationTimeout = time.Duration(genTimeout) * time.Second

	cfg.DailySendLimit, err = envInt("DAILY_SEND_LIMIT", DefaultDailySendLimit)
	if err != nil {
		return nil, err
	}

	cfg.MaxConsecutiveFailures, err = envInt("MAX_CONSECUTIVE_FAILURES", DefaultMaxFailures)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConsecutiveFailures <= 0 {
		return nil, Errorf("MAX_CONSECUTIVE_FAILURES must be > 0, got %d", cfg.MaxConsecutiveFailures)
	}

	cfg.AutoSendMinConf, err = envFloat("AUTO_SEND_MIN_CONFIDENCE", DefaultAutoSendConfidence)
	if err != nil {
		return nil, err
	}
	if cfg.AutoSendMinConf < 0 || cfg.AutoSendMinConf > 1 {
		return nil, Errorf("AUTO_SEND_MIN_CONFIDENCE must be 0-1, got %g", cfg.AutoSendMinConf)
	}

	return cfg, nil
}

// RequireCredentials checks that LinkedIn credentials are present. Only the
// commands that open a live session need them.
func (c *Config) RequireCredentials() error {
	if c.LinkedInEmail == "" || c.LinkedInPassword == "" {
		return Errorf("LINKEDIN_EMAIL and LINKEDIN_PASSWORD must be set")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, Errorf("%s must be a number, got %q", key, v)
	}
	return f, nil
}

func envBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v == "1" || v == "true" || v == "yes"
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package httpx

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// RateLimitConfig defines a token bucket: RequestsPerWindow refill over
// Window, with at most Burst requests admitted back to back.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// RateLimitProfiles groups the limits applied to the different endpoint classes.
type RateLimitProfiles struct {
	// Strict guards credential checks (token issuance, login).
	Strict RateLimitConfig
	// Moderate guards authenticated management operations.
	Moderate RateLimitConfig
	// Lenient guards cheap reads such as health checks.
	Lenient RateLimitConfig
	// Public guards unauthenticated read-only endpoints (metrics, docs).
	Public RateLimitConfig
}

// DefaultRateLimitProfiles returns the built-in limits.
func DefaultRateLimitProfiles() RateLimitProfiles {
	return RateLimitProfiles{
		Strict:   RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5},
		Moderate: RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20},
		Lenient:  RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100},
		Public:   RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000},
	}
}

// RateLimitProfilesFromEnv starts from the defaults and applies any
// RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_* overrides.
func RateLimitProfilesFromEnv() RateLimitProfiles {
	p := DefaultRateLimitProfiles()
	p.Strict = ParseRateLimitFromEnv("STRICT", p.Strict)
	p.Moderate = ParseRateLimitFromEnv("MODERATE", p.Moderate)
	p.Lenient = ParseRateLimitFromEnv("LENIENT", p.Lenient)
	p.Public = ParseRateLimitFromEnv("PUBLIC", p.Public)
	return p
}

type rateLimitEnv struct {
	Requests  int `envconfig:"REQUESTS"`
	WindowSec int `envconfig:"WINDOW_SEC"`
	Burst     int `envconfig:"BURST"`
}

// ParseRateLimitFromEnv reads RATELIMIT_{prefix}_REQUESTS, _WINDOW_SEC and
// _BURST. Unset or non-positive fields keep the value from def. A profile
// with an unparsable field is ignored entirely.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	var env rateLimitEnv
	if err := envconfig.Process("RATELIMIT_"+prefix, &env); err != nil {
		return def
	}

	cfg := def
	if env.Requests > 0 {
		cfg.RequestsPerWindow = env.Requests
	}
	if env.WindowSec > 0 {
		cfg.Window = time.Duration(env.WindowSec) * time.Second
	}
	if env.Burst > 0 {
		cfg.Burst = env.Burst
	}
	return cfg
}

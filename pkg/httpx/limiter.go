package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
	"golang.org/x/time/rate"
)

// KeyExtractor buckets requests for rate limiting. An empty key bypasses
// the limiter.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the caller address, honouring the first hop of
// X-Forwarded-For and then X-Real-IP for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ClientIDKeyExtractor returns the authenticated client id, or "" before
// authentication.
func ClientIDKeyExtractor(r *http.Request) string {
	p, _ := PrincipalFromContext(r.Context())
	return p.ClientID
}

// FormFieldKeyExtractor reads a query or form field, e.g. client_id.
func FormFieldKeyExtractor(field string) KeyExtractor {
	return func(r *http.Request) string {
		if r.ParseForm() != nil {
			return ""
		}
		return r.FormValue(field)
	}
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if k := extract(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

// sweepEvery bounds how often idle buckets are scanned for.
const sweepEvery = time.Minute

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiterSet hands out one token bucket per key and forgets keys that have
// been idle long enough to have refilled completely.
type limiterSet struct {
	limit rate.Limit
	burst int
	idle  time.Duration

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{
		limit:     rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:     cfg.Burst,
		idle:      max(cfg.Window, 5*time.Minute),
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= sweepEvery {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) > s.idle {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(s.limit, s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim
}

// RateLimitMiddleware rejects requests beyond cfg with 429 and Retry-After,
// X-RateLimit-Limit and X-RateLimit-Window headers.
func RateLimitMiddleware(cfg RateLimitConfig, keyOf KeyExtractor) Middleware {
	set := newLimiterSet(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyOf(r)
			if key == "" {
				slogx.FromContext(r.Context()).Warn("rate limit key missing, request not limited",
					"path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			lim := set.get(key, now)
			if lim.AllowN(now, 1) {
				next.ServeHTTP(w, r)
				return
			}

			// Peek at when the next token lands without spending it
			res := lim.ReserveN(now, 1)
			wait := res.DelayFrom(now)
			res.CancelAt(now)
			retryAfter := max(int(wait.Seconds()), 1)

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"path", r.URL.Path,
				"retry_after", retryAfter,
			)

			h := w.Header()
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			h.Set("X-RateLimit-Window", cfg.Window.String())
			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":             "rate_limit_exceeded",
				"error_description": "Too many requests. Please try again later.",
			})
		})
	}
}

// RateLimitByIP limits per caller address.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByClient limits per authenticated client and caller address. It
// must run after RequireScopes has set the principal.
func RateLimitByClient(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", ClientIDKeyExtractor, IPKeyExtractor))
}

// RateLimitByIPAndFormField limits per caller address and form field, so
// guessing secrets for one client_id does not lock out other clients.
func RateLimitByIPAndFormField(cfg RateLimitConfig, field string) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":", IPKeyExtractor, FormFieldKeyExtractor(field)))
}

package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

func NewValidLimiter(r rate.Limit, b int) (*rate.Limiter, error) {
	if b <= 0 || r <= 0 {
		return nil, fmt.Errorf("bad rate limit config, insufficient tokens (rate=%f, b=%d)", r, b)
	}
	return rate.NewLimiter(r, b), nil
}

// ParseRateLimitSyntax parses the rate limit syntax into a rate.Limiter
// sample inputs:
//
//	10+5/1s (10 initial tokens, 5 tokens per second)
//	20/1s   (20 tokens per second, burst 1)
//	100ms   (1 token per 100 milliseconds)
func ParseRateLimitSyntax(desc string) (*rate.Limiter, error) {
	spec := strings.TrimSpace(desc)
	burst := 1
	tokens := 1.0

	if i := strings.Index(spec, "+"); i >= 0 {
		b, err := strconv.Atoi(spec[:i])
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit burst %q: %w", desc, err)
		}
		burst = b
		spec = spec[i+1:]
	}

	if i := strings.Index(spec, "/"); i >= 0 {
		n, err := strconv.ParseFloat(spec[:i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit tokens %q: %w", desc, err)
		}
		tokens = n
		spec = spec[i+1:]
	}

	duration, err := time.ParseDuration(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit syntax %q, expect b+n/duration: %w", desc, err)
	}

	if tokens <= 0 || duration <= 0 {
		return nil, fmt.Errorf("invalid rate limit %q, tokens and duration must be positive", desc)
	}

	return NewValidLimiter(rate.Every(time.Duration(float64(duration)/tokens)), burst)
}

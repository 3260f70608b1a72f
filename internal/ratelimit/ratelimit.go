package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/amishk599/pipelines/internal/model"
)

// HostRateLimiter enforces a minimum delay between requests to the same host.
type HostRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter // key: host
	minDelay time.Duration
}

// NewHostRateLimiter creates a rate limiter that enforces minDelay between
// consecutive requests to the same host. A zero delay never blocks.
func NewHostRateLimiter(minDelay time.Duration) *HostRateLimiter {
	return &HostRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		minDelay: minDelay,
	}
}

func (r *HostRateLimiter) limiter(host string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(r.minDelay), 1)
		r.limiters[host] = l
	}
	return l
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is cancelled while waiting.
func (r *HostRateLimiter) Wait(ctx context.Context, host string) error {
	if r.minDelay <= 0 {
		return nil
	}
	if err := r.limiter(host).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", host, err)
	}
	return nil
}

// RateLimitedSearcher is a decorator that enforces host-level rate limiting
// before delegating to the wrapped SchoolSearcher.
type RateLimitedSearcher struct {
	inner   model.SchoolSearcher
	limiter *HostRateLimiter
	host    string
}

// NewRateLimitedSearcher wraps a SchoolSearcher with host-level rate limiting.
// All searchers targeting the same host should share the same limiter instance.
func NewRateLimitedSearcher(inner model.SchoolSearcher, limiter *HostRateLimiter, host string) *RateLimitedSearcher {
	return &RateLimitedSearcher{
		inner:   inner,
		limiter: limiter,
		host:    host,
	}
}

// SearchSchools waits for the rate limiter, then delegates to the wrapped searcher.
func (s *RateLimitedSearcher) SearchSchools(ctx context.Context, name string) ([]model.School, error) {
	if err := s.limiter.Wait(ctx, s.host); err != nil {
		return nil, err
	}
	return s.inner.SearchSchools(ctx, name)
}

// RateLimitedFetcher is the same decorator for a ProfileFetcher.
type RateLimitedFetcher struct {
	inner   model.ProfileFetcher
	limiter *HostRateLimiter
	host    string
}

// NewRateLimitedFetcher wraps a ProfileFetcher with host-level rate limiting.
func NewRateLimitedFetcher(inner model.ProfileFetcher, limiter *HostRateLimiter, host string) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		inner:   inner,
		limiter: limiter,
		host:    host,
	}
}

// RandomProfiles waits for the rate limiter, then delegates to the wrapped fetcher.
func (f *RateLimitedFetcher) RandomProfiles(ctx context.Context, size int) ([]model.Profile, error) {
	if err := f.limiter.Wait(ctx, f.host); err != nil {
		return nil, err
	}
	return f.inner.RandomProfiles(ctx, size)
}

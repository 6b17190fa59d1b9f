package poll

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// SourceLimiter caps the aggregate request rate per source type, so many
// organizations on one ATS never exceed its per-minute ceiling no matter
// how high the concurrency ceiling is.
type SourceLimiter struct {
	mu        sync.Mutex
	m         map[string]*rate.Limiter
	perMinute int
}

func NewSourceLimiter(perMinute int) *SourceLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &SourceLimiter{m: make(map[string]*rate.Limiter), perMinute: perMinute}
}

func (sl *SourceLimiter) limiterFor(sourceType string) *rate.Limiter {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if lim, ok := sl.m[sourceType]; ok {
		return lim
	}
	burst := sl.perMinute / 4
	if burst < 1 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(float64(sl.perMinute)/60.0), burst)
	sl.m[sourceType] = lim
	return lim
}

func (sl *SourceLimiter) Wait(ctx context.Context, sourceType string) error {
	if sourceType == "" {
		sourceType = "_"
	}
	return sl.limiterFor(sourceType).Wait(ctx)
}

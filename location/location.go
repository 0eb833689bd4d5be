package location

import (
	"context"
	"sync"
	"time"

	"github.com/naniedobe1/PoleBrothers/geo"
)

const (
	// AcquireTimeout bounds a single fix acquisition.
	AcquireTimeout = 15 * time.Second
	// MaxFixAge is how stale a cached fix may be and still be served.
	MaxFixAge = 10 * time.Second
)

// Fix is a resolved device position.
type Fix struct {
	Point geo.Point
	Time  time.Time
}

// Provider yields the current device position. Implementations are expected
// to honor ctx cancellation; callers apply AcquireTimeout.
type Provider interface {
	Current(ctx context.Context) (Fix, error)
}

// Cached wraps a Provider and serves a previous fix when it is younger than
// MaxAge, mirroring platform geolocation maximumAge behavior.
type Cached struct {
	Inner  Provider
	MaxAge time.Duration

	mu   sync.Mutex
	last *Fix
	now  func() time.Time
}

func NewCached(inner Provider) *Cached {
	return &Cached{Inner: inner, MaxAge: MaxFixAge, now: time.Now}
}

func (c *Cached) Current(ctx context.Context) (Fix, error) {
	c.mu.Lock()
	if c.last != nil && c.now().Sub(c.last.Time) <= c.MaxAge {
		fix := *c.last
		c.mu.Unlock()
		return fix, nil
	}
	c.mu.Unlock()

	fix, err := c.Inner.Current(ctx)
	if err != nil {
		return Fix{}, err
	}
	if fix.Time.IsZero() {
		fix.Time = c.now()
	}

	c.mu.Lock()
	c.last = &fix
	c.mu.Unlock()
	return fix, nil
}

// Static always reports the same point. Useful for tests and for fixed
// installations.
type Static struct {
	Point geo.Point
}

func (s Static) Current(_ context.Context) (Fix, error) {
	return Fix{Point: s.Point, Time: time.Now()}, nil
}

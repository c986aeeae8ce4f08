package stores

import (
	"context"
	"sync"
	"time"
)

// DomainChecker debounces availability checks while a merchant types a
// candidate domain name. Format rejections resolve synchronously without
// touching the gateway; well-formed names are checked remotely once the
// input settles for the configured delay. A newer Check supersedes any
// pending one.
type DomainChecker struct {
	svc   *Service
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   int
}

const DefaultDebounce = 500 * time.Millisecond

func NewDomainChecker(svc *Service, delay time.Duration) *DomainChecker {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &DomainChecker{svc: svc, delay: delay}
}

// Check schedules an availability check for name and delivers the result
// to fn. fn runs at most once per Check call; superseded calls are
// dropped without being delivered.
func (c *DomainChecker) Check(ctx context.Context, name string, fn func(Availability, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	seq := c.seq
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	// Short or malformed names never reach the gateway.
	if len(name) < 3 {
		go fn(AvailabilityUnknown, nil)
		return
	}
	if !domainRe.MatchString(name) {
		go fn(Unavailable, nil)
		return
	}

	c.timer = time.AfterFunc(c.delay, func() {
		c.mu.Lock()
		stale := seq != c.seq
		c.mu.Unlock()
		if stale || ctx.Err() != nil {
			return
		}
		fn(c.svc.CheckDomain(ctx, name))
	})
}

// Stop cancels any pending check.
func (c *DomainChecker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFreeChanges is the number of mutations allowed before a valid
// license becomes mandatory.
const DefaultFreeChanges = 20

// DefaultVerdictTTL is how long a license verdict stays fresh before
// the gate re-validates remotely.
const DefaultVerdictTTL = time.Hour

// Verdict is the outcome of a license validation, cached per key.
type Verdict struct {
	Valid   bool
	Message string
}

// LicenseValidator performs the remote license check. Implemented by
// license.Client (production) and fakes (tests).
type LicenseValidator interface {
	Validate(ctx context.Context, key string) (Verdict, error)
}

// CounterStore persists the change counter across process restarts.
type CounterStore interface {
	SetChangeCount(ctx context.Context, n int64) error
}

type cachedVerdict struct {
	verdict  Verdict
	cachedAt time.Time
}

// UsageGate decides whether a mutation is permitted. It owns two pieces
// of shared state: the monotonically increasing change counter and the
// per-key license verdict cache. Both are instance state, guarded for
// concurrent callers - the counter with an atomic, the cache with a
// mutex.
type UsageGate struct {
	validator LicenseValidator
	counters  CounterStore
	threshold int64
	ttl       time.Duration
	now       func() time.Time

	count atomic.Int64

	mu    sync.Mutex
	cache map[string]cachedVerdict
}

// GateOption configures a UsageGate.
type GateOption func(*UsageGate)

// WithThreshold overrides the free-change allowance.
func WithThreshold(n int64) GateOption {
	return func(g *UsageGate) { g.threshold = n }
}

// WithVerdictTTL overrides the verdict cache lifetime.
func WithVerdictTTL(ttl time.Duration) GateOption {
	return func(g *UsageGate) { g.ttl = ttl }
}

// WithGateClock injects a time source. Tests pair this with
// testutil.ManualClock to exercise cache expiry deterministically.
func WithGateClock(now func() time.Time) GateOption {
	return func(g *UsageGate) { g.now = now }
}

// WithInitialCount seeds the counter, typically from the persisted
// value loaded at startup.
func WithInitialCount(n int64) GateOption {
	return func(g *UsageGate) { g.count.Store(n) }
}

// WithCounterStore makes the gate write the counter back after each
// recorded change. Persistence is best effort: a failed write is
// logged and the in-memory counter stays authoritative for the
// process.
func WithCounterStore(cs CounterStore) GateOption {
	return func(g *UsageGate) { g.counters = cs }
}

// NewUsageGate creates a gate around the given validator. A nil
// validator treats every key as invalid, which fails closed.
func NewUsageGate(validator LicenseValidator, opts ...GateOption) *UsageGate {
	g := &UsageGate{
		validator: validator,
		threshold: DefaultFreeChanges,
		ttl:       DefaultVerdictTTL,
		now:       time.Now,
		cache:     make(map[string]cachedVerdict),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckAllowed decides whether mutation is currently permitted for the
// given license key. An empty key skips the remote check entirely. A
// valid verdict always allows; otherwise the change counter must still
// be under the threshold.
//
// Returns nil when allowed, *DeniedError otherwise.
func (g *UsageGate) CheckAllowed(ctx context.Context, key string) error {
	if key != "" {
		if g.verdict(ctx, key).Valid {
			return nil
		}
	}
	if g.count.Load() >= g.threshold {
		return &DeniedError{
			Reason: fmt.Sprintf("license required after %d changes", g.threshold),
		}
	}
	return nil
}

// RecordChange increments the change counter by one and returns the
// new value. Called once per successfully applied mutation; each bulk
// item counts individually.
func (g *UsageGate) RecordChange(ctx context.Context) int64 {
	n := g.count.Add(1)
	if g.counters != nil {
		if err := g.counters.SetChangeCount(ctx, n); err != nil {
			slog.Warn("persist change count", "count", n, "error", err)
		}
	}
	return n
}

// ChangeCount returns the current counter value.
func (g *UsageGate) ChangeCount() int64 {
	return g.count.Load()
}

// CheckLicense validates a key through the cache and reports the
// verdict. It never consults the counter.
func (g *UsageGate) CheckLicense(ctx context.Context, key string) Verdict {
	if key == "" {
		return Verdict{Valid: false, Message: "no license key provided"}
	}
	return g.verdict(ctx, key)
}

// LimitReached reports whether the free allowance is exhausted and no
// valid license covers further changes. Used by bulk operations to
// flag a gate crossing after the batch has run.
func (g *UsageGate) LimitReached(ctx context.Context, key string) bool {
	if g.count.Load() < g.threshold {
		return false
	}
	if key == "" {
		return true
	}
	return !g.verdict(ctx, key).Valid
}

// verdict returns the cached verdict for key, re-validating remotely
// when the cached entry is older than the TTL. Transport failures are
// logged, downgraded to an invalid verdict and NOT cached, so the next
// call retries the remote check.
func (g *UsageGate) verdict(ctx context.Context, key string) Verdict {
	g.mu.Lock()
	if c, ok := g.cache[key]; ok && g.now().Sub(c.cachedAt) < g.ttl {
		g.mu.Unlock()
		return c.verdict
	}
	g.mu.Unlock()

	if g.validator == nil {
		return Verdict{Valid: false, Message: "no license validator configured"}
	}

	v, err := g.validator.Validate(ctx, key)
	if err != nil {
		slog.Warn("license validation failed", "error", err)
		return Verdict{Valid: false, Message: "could not connect to license server"}
	}

	g.mu.Lock()
	g.cache[key] = cachedVerdict{verdict: v, cachedAt: g.now()}
	g.mu.Unlock()

	return v
}

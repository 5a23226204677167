package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnsrgl/stock-gestion-codeon/internal/testutil"
)

// fakeValidator counts remote calls and returns a scripted verdict.
type fakeValidator struct {
	calls   int
	verdict Verdict
	err     error
}

func (f *fakeValidator) Validate(ctx context.Context, key string) (Verdict, error) {
	f.calls++
	if f.err != nil {
		return Verdict{}, f.err
	}
	return f.verdict, nil
}

func TestCheckAllowed_UnderThresholdWithoutLicense(t *testing.T) {
	g := NewUsageGate(nil, WithInitialCount(19))

	assert.NoError(t, g.CheckAllowed(context.Background(), ""))
}

func TestCheckAllowed_AtThresholdWithoutLicense(t *testing.T) {
	g := NewUsageGate(nil, WithInitialCount(20))

	err := g.CheckAllowed(context.Background(), "")

	require.Error(t, err)
	assert.True(t, IsDenied(err))
	assert.Contains(t, err.Error(), "after 20 changes")
}

func TestCheckAllowed_ValidLicenseBypassesCounter(t *testing.T) {
	v := &fakeValidator{verdict: Verdict{Valid: true, Message: "ok"}}
	g := NewUsageGate(v, WithInitialCount(1000))

	assert.NoError(t, g.CheckAllowed(context.Background(), "KEY"))
}

func TestCheckAllowed_InvalidLicenseStillGated(t *testing.T) {
	v := &fakeValidator{verdict: Verdict{Valid: false, Message: "expired"}}
	g := NewUsageGate(v, WithInitialCount(20))

	err := g.CheckAllowed(context.Background(), "KEY")

	assert.True(t, IsDenied(err))
}

func TestCheckAllowed_InvalidLicenseUnderThreshold(t *testing.T) {
	v := &fakeValidator{verdict: Verdict{Valid: false}}
	g := NewUsageGate(v, WithInitialCount(5))

	assert.NoError(t, g.CheckAllowed(context.Background(), "KEY"))
}

func TestVerdictCache_HitWithinTTL(t *testing.T) {
	clock := testutil.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	v := &fakeValidator{verdict: Verdict{Valid: true}}
	g := NewUsageGate(v, WithGateClock(clock.Now))

	for i := 0; i < 5; i++ {
		g.CheckLicense(context.Background(), "KEY")
	}

	assert.Equal(t, 1, v.calls, "verdict should be served from cache")
}

func TestVerdictCache_ExpiresAfterTTL(t *testing.T) {
	clock := testutil.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	v := &fakeValidator{verdict: Verdict{Valid: true}}
	g := NewUsageGate(v, WithGateClock(clock.Now))

	g.CheckLicense(context.Background(), "KEY")
	clock.Advance(59 * time.Minute)
	g.CheckLicense(context.Background(), "KEY")
	require.Equal(t, 1, v.calls)

	clock.Advance(2 * time.Minute)
	g.CheckLicense(context.Background(), "KEY")
	assert.Equal(t, 2, v.calls, "expired verdict must revalidate")
}

func TestVerdictCache_PerKey(t *testing.T) {
	v := &fakeValidator{verdict: Verdict{Valid: true}}
	g := NewUsageGate(v)

	g.CheckLicense(context.Background(), "KEY-A")
	g.CheckLicense(context.Background(), "KEY-B")
	g.CheckLicense(context.Background(), "KEY-A")

	assert.Equal(t, 2, v.calls)
}

func TestVerdict_TransportFailureNotCached(t *testing.T) {
	v := &fakeValidator{err: errors.New("connection refused")}
	g := NewUsageGate(v)

	got := g.CheckLicense(context.Background(), "KEY")
	assert.False(t, got.Valid)
	assert.Equal(t, "could not connect to license server", got.Message)

	// Server comes back; the next call must reach it.
	v.err = nil
	v.verdict = Verdict{Valid: true}
	got = g.CheckLicense(context.Background(), "KEY")
	assert.True(t, got.Valid)
	assert.Equal(t, 2, v.calls)
}

func TestCheckLicense_EmptyKey(t *testing.T) {
	v := &fakeValidator{verdict: Verdict{Valid: true}}
	g := NewUsageGate(v)

	got := g.CheckLicense(context.Background(), "")

	assert.False(t, got.Valid)
	assert.Equal(t, "no license key provided", got.Message)
	assert.Equal(t, 0, v.calls)
}

func TestRecordChange_IncrementsAndPersists(t *testing.T) {
	cs := &fakeCounterStore{}
	g := NewUsageGate(nil, WithInitialCount(4), WithCounterStore(cs))

	n := g.RecordChange(context.Background())

	assert.Equal(t, int64(5), n)
	assert.Equal(t, int64(5), g.ChangeCount())
	assert.Equal(t, int64(5), cs.last)
}

func TestRecordChange_PersistFailureKeepsCounting(t *testing.T) {
	cs := &fakeCounterStore{err: errors.New("disk full")}
	g := NewUsageGate(nil, WithCounterStore(cs))

	g.RecordChange(context.Background())
	n := g.RecordChange(context.Background())

	assert.Equal(t, int64(2), n)
}

func TestLimitReached(t *testing.T) {
	v := &fakeValidator{verdict: Verdict{Valid: false}}

	g := NewUsageGate(v, WithInitialCount(19))
	assert.False(t, g.LimitReached(context.Background(), ""))

	g = NewUsageGate(v, WithInitialCount(20))
	assert.True(t, g.LimitReached(context.Background(), ""))
	assert.True(t, g.LimitReached(context.Background(), "BAD-KEY"))

	v.verdict = Verdict{Valid: true}
	g = NewUsageGate(v, WithInitialCount(20))
	assert.False(t, g.LimitReached(context.Background(), "GOOD-KEY"))
}

func TestNilValidator_FailsClosed(t *testing.T) {
	g := NewUsageGate(nil)

	got := g.CheckLicense(context.Background(), "KEY")

	assert.False(t, got.Valid)
}

type fakeCounterStore struct {
	last int64
	err  error
}

func (f *fakeCounterStore) SetChangeCount(ctx context.Context, n int64) error {
	f.last = n
	return f.err
}

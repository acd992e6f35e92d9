package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore builds a store with a controllable clock.
func newTestStore(t *testing.T, configs map[Type]Config) (*Store, *time.Time) {
	t.Helper()

	now := time.Unix(1700000000, 0)
	s := New(configs)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestCheckAcceptRejectSequence(t *testing.T) {
	cfgs := map[Type]Config{
		TypeMatch:   {MaxRequests: 3, Window: time.Second},
		TypeDefault: {MaxRequests: 30, Window: time.Minute},
	}
	s, now := newTestStore(t, cfgs)

	for i := 0; i < 3; i++ {
		res := s.Check("1.2.3.4", TypeMatch)
		assert.True(t, res.Success, "request %d should be allowed", i+1)
		assert.Equal(t, 3, res.Limit)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res := s.Check("1.2.3.4", TypeMatch)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Remaining)
	assert.Positive(t, res.RetryAfter)

	// Once the window has slid past the oldest timestamp, requests pass again.
	*now = now.Add(1100 * time.Millisecond)
	res = s.Check("1.2.3.4", TypeMatch)
	assert.True(t, res.Success)
}

func TestCheckSlidingWindowDoesNotReset(t *testing.T) {
	cfgs := map[Type]Config{
		TypeMatch:   {MaxRequests: 2, Window: time.Second},
		TypeDefault: {MaxRequests: 30, Window: time.Minute},
	}
	s, now := newTestStore(t, cfgs)

	require.True(t, s.Check("c", TypeMatch).Success)
	*now = now.Add(600 * time.Millisecond)
	require.True(t, s.Check("c", TypeMatch).Success)

	// 600ms later the first timestamp has expired but the second has not:
	// exactly one slot is free.
	*now = now.Add(600 * time.Millisecond)
	assert.True(t, s.Check("c", TypeMatch).Success)
	assert.False(t, s.Check("c", TypeMatch).Success)
}

func TestCheckKeyIsolation(t *testing.T) {
	cfgs := map[Type]Config{
		TypeMatch:   {MaxRequests: 1, Window: time.Minute},
		TypeInvite:  {MaxRequests: 1, Window: time.Minute},
		TypeDefault: {MaxRequests: 30, Window: time.Minute},
	}
	s, _ := newTestStore(t, cfgs)

	require.True(t, s.Check("A", TypeMatch).Success)
	require.False(t, s.Check("A", TypeMatch).Success)

	// Same type, different identifier.
	assert.True(t, s.Check("B", TypeMatch).Success)
	// Same identifier, different type.
	assert.True(t, s.Check("A", TypeInvite).Success)
}

func TestCheckUnknownTypeFallsBackToDefault(t *testing.T) {
	cfgs := map[Type]Config{
		TypeDefault: {MaxRequests: 2, Window: time.Minute},
	}
	s, _ := newTestStore(t, cfgs)

	require.True(t, s.Check("A", Type("unknown")).Success)
	require.True(t, s.Check("A", Type("unknown")).Success)
	assert.False(t, s.Check("A", Type("unknown")).Success)
}

func TestAssertReturnsTypedError(t *testing.T) {
	cfgs := map[Type]Config{
		TypeInvite:  {MaxRequests: 1, Window: time.Minute},
		TypeDefault: {MaxRequests: 30, Window: time.Minute},
	}
	s, _ := newTestStore(t, cfgs)

	require.NoError(t, s.Assert("A", TypeInvite))

	err := s.Assert("A", TypeInvite)
	require.Error(t, err)

	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, TypeInvite, limitErr.Type)
	assert.Equal(t, 1, limitErr.Limit)
	assert.Equal(t, 0, limitErr.Remaining)
	assert.Positive(t, limitErr.RetryAfter)
	assert.Positive(t, limitErr.Reset)
}

func TestSweepEvictsIdleKeys(t *testing.T) {
	cfgs := map[Type]Config{
		TypeMatch:   {MaxRequests: 5, Window: time.Second},
		TypeDefault: {MaxRequests: 30, Window: time.Minute},
	}
	s, now := newTestStore(t, cfgs)

	s.Check("old-client", TypeMatch)
	s.Check("fresh-client", TypeDefault)

	// Advance past the match window but within the default (largest) window,
	// then past everything.
	*now = now.Add(30 * time.Second)
	s.sweep()
	s.mu.Lock()
	assert.Len(t, s.entries, 2, "entries within the largest window survive the sweep")
	s.mu.Unlock()

	*now = now.Add(2 * time.Minute)
	s.sweep()
	s.mu.Lock()
	assert.Empty(t, s.entries)
	s.mu.Unlock()
}

func TestStartStop(t *testing.T) {
	s := New(nil)
	s.Start()
	s.Stop()
	s.Stop() // idempotent
}

func TestClientIdentifier(t *testing.T) {
	newReq := func(headers map[string]string) *http.Request {
		req, _ := http.NewRequest("POST", "/results", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req
	}

	t.Run("x-forwarded-for takes first entry", func(t *testing.T) {
		req := newReq(map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"})
		assert.Equal(t, "10.0.0.1", ClientIdentifier(req))
	})

	t.Run("x-forwarded-for single value", func(t *testing.T) {
		req := newReq(map[string]string{"X-Forwarded-For": "10.0.0.9"})
		assert.Equal(t, "10.0.0.9", ClientIdentifier(req))
	})

	t.Run("x-real-ip", func(t *testing.T) {
		req := newReq(map[string]string{"X-Real-Ip": "10.1.1.1"})
		assert.Equal(t, "10.1.1.1", ClientIdentifier(req))
	})

	t.Run("cf-connecting-ip", func(t *testing.T) {
		req := newReq(map[string]string{"Cf-Connecting-Ip": "10.2.2.2"})
		assert.Equal(t, "10.2.2.2", ClientIdentifier(req))
	})

	t.Run("falls back to anonymous", func(t *testing.T) {
		req := newReq(nil)
		assert.Equal(t, AnonymousIdentifier, ClientIdentifier(req))
	})
}

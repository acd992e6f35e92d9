// Package ratelimit bounds the frequency of mutating requests with an
// in-memory sliding window per (endpoint type, client identifier) key.
//
// The state is process-local and resets on restart, which is an accepted
// limitation for a single-instance deployment; a shared store would be
// needed before running multiple replicas.
package ratelimit

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const sweepInterval = 5 * time.Minute

type key struct {
	t  Type
	id string
}

// Store owns the timestamp map and the sweep timer lifecycle. Construct one
// at process start and inject it wherever mutations are handled; tests build
// isolated stores per case.
type Store struct {
	mu      sync.Mutex
	entries map[key][]int64 // ms epoch timestamps, oldest first
	configs map[Type]Config

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// New creates a Store with the given limit table. A nil table means
// DefaultConfigs. The background sweep does not run until Start is called.
func New(configs map[Type]Config) *Store {
	if configs == nil {
		configs = DefaultConfigs()
	}
	return &Store{
		entries: make(map[key][]int64),
		configs: configs,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// config resolves the limit for a type, falling back to the default entry.
func (s *Store) config(t Type) Config {
	if cfg, ok := s.configs[t]; ok {
		return cfg
	}
	return s.configs[TypeDefault]
}

// Check applies the sliding window for the key and records the request if it
// is allowed. Identifier is opaque; see ClientIdentifier for the HTTP
// adapter.
func (s *Store) Check(identifier string, t Type) Result {
	cfg := s.config(t)
	nowMs := s.now().UnixMilli()
	windowMs := cfg.Window.Milliseconds()

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{t: t, id: identifier}
	kept := pruneBefore(s.entries[k], nowMs-windowMs)

	if len(kept) >= cfg.MaxRequests {
		s.entries[k] = kept
		reset := kept[0] + windowMs
		retryAfter := int((reset - nowMs + 999) / 1000)
		if retryAfter < 1 {
			retryAfter = 1
		}
		return Result{
			Success:    false,
			Limit:      cfg.MaxRequests,
			Remaining:  0,
			Reset:      reset,
			RetryAfter: retryAfter,
		}
	}

	kept = append(kept, nowMs)
	s.entries[k] = kept
	return Result{
		Success:   true,
		Limit:     cfg.MaxRequests,
		Remaining: cfg.MaxRequests - len(kept),
		Reset:     kept[0] + windowMs,
	}
}

// Assert is Check with error semantics: it returns a *LimitError when the
// limit is exceeded and nil otherwise. It never fails for any other reason.
func (s *Store) Assert(identifier string, t Type) error {
	res := s.Check(identifier, t)
	if res.Success {
		return nil
	}
	return &LimitError{
		Type:       t,
		Limit:      res.Limit,
		Remaining:  res.Remaining,
		Reset:      res.Reset,
		RetryAfter: res.RetryAfter,
	}
}

// Start launches the periodic sweep that evicts keys with no recent
// activity, bounding memory growth from one-off identifiers.
func (s *Store) Start() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the background sweep. Safe to call more than once.
func (s *Store) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// sweep drops timestamps older than the largest configured window and
// deletes entries left empty. Keys are collected first so the map is not
// mutated while iterating.
func (s *Store) sweep() {
	maxWindowMs := int64(0)
	for _, cfg := range s.configs {
		if w := cfg.Window.Milliseconds(); w > maxWindowMs {
			maxWindowMs = w
		}
	}
	cutoff := s.now().UnixMilli() - maxWindowMs

	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []key
	for k, timestamps := range s.entries {
		kept := pruneBefore(timestamps, cutoff)
		if len(kept) == 0 {
			stale = append(stale, k)
			continue
		}
		s.entries[k] = kept
	}
	for _, k := range stale {
		delete(s.entries, k)
	}
	if len(stale) > 0 {
		log.Debug("Swept idle rate limit entries", "evicted", len(stale), "remaining", len(s.entries))
	}
}

// pruneBefore returns the suffix of timestamps at or after the cutoff.
// Timestamps are appended in order, so a linear scan from the front works.
func pruneBefore(timestamps []int64, cutoff int64) []int64 {
	i := 0
	for i < len(timestamps) && timestamps[i] <= cutoff {
		i++
	}
	return timestamps[i:]
}

package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// defaultCategory names the rate applied to categories without their own.
const defaultCategory = "default"

// maxLimiters bounds the store between cleanup passes.
const maxLimiters = 10000

// Store manages in-memory rate limiters for multiple clients.
type Store struct {
	// limiters maps category and client identifier to a token bucket
	limiters map[string]*Limiter

	// rates defines different rate limits for different categories
	rates map[string]Rate

	// mu protects concurrent access to the limiters map
	mu sync.RWMutex

	// cleanupInterval is both the sweep period and the idle time after
	// which a limiter is dropped
	cleanupInterval time.Duration

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// NewStore creates a new store for managing rate limiters and starts its
// cleanup goroutine. Call Close to stop it.
//
// Parameters:
//   - defaultRate: The default rate limit for clients
//   - cleanupInterval: How often to evict idle limiters
func NewStore(defaultRate Rate, cleanupInterval time.Duration) *Store {
	store := &Store{
		limiters:        make(map[string]*Limiter),
		rates:           map[string]Rate{defaultCategory: defaultRate},
		cleanupInterval: cleanupInterval,
		now:             time.Now,
		stop:            make(chan struct{}),
	}

	go store.cleanupRoutine()

	return store
}

// Allow implements Checker.
func (s *Store) Allow(_ context.Context, clientID, category string) (Decision, error) {
	return s.GetLimiter(clientID, category).Take(), nil
}

// GetLimiter returns the limiter for a client in a category, creating it on
// first use.
func (s *Store) GetLimiter(clientID string, category string) *Limiter {
	key := category + ":" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have created it while we waited for the lock
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	rate, exists := s.rates[category]
	if !exists {
		rate = s.rates[defaultCategory]
	}

	limiter = newLimiterWithClock(rate.RequestsPerSecond, rate.Burst, s.now)
	s.limiters[key] = limiter
	return limiter
}

// SetRate sets a rate limit for a specific category. Existing limiters keep
// the rate they were created with.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	s.once.Do(func() { close(s.stop) })
}

// cleanupRoutine periodically removes idle limiters.
func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup drops limiters idle for longer than the cleanup interval, and
// resets the map outright if it is still oversized.
func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.cleanupInterval)
	for key, limiter := range s.limiters {
		if limiter.lastSeen().Before(cutoff) {
			delete(s.limiters, key)
		}
	}

	if len(s.limiters) > maxLimiters {
		log.Warn().Int("limiters", len(s.limiters)).Msg("Rate limiter store growing too large, resetting")
		s.limiters = make(map[string]*Limiter)
	}
}

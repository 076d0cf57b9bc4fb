package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("storage circuit breaker is open")

type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type BreakerConfig struct {
	MaxFailures     int
	ResetTimeout    time.Duration
	HalfOpenMaxSucc int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures:     5,
		ResetTimeout:    30 * time.Second,
		HalfOpenMaxSucc: 2,
	}
}

// BreakerStore fails fast once the wrapped store keeps erroring, and probes
// it again after ResetTimeout.
type BreakerStore struct {
	next Store
	now  func() time.Time

	mu                sync.Mutex
	config            BreakerConfig
	state             BreakerState
	failures          int
	halfOpenSuccesses int
	lastFailureTime   time.Time
}

func NewBreakerStore(next Store, config BreakerConfig) *BreakerStore {
	return &BreakerStore{
		next:   next,
		now:    time.Now,
		config: config,
		state:  StateClosed,
	}
}

func (b *BreakerStore) Get(key string) (string, bool, error) {
	if b.isOpen() {
		return "", false, fmt.Errorf("get %q: %w", key, ErrCircuitOpen)
	}

	value, found, err := b.next.Get(key)
	b.record(err)
	return value, found, err
}

func (b *BreakerStore) Set(key, value string) error {
	if b.isOpen() {
		return fmt.Errorf("set %q: %w", key, ErrCircuitOpen)
	}

	err := b.next.Set(key, value)
	b.record(err)
	return err
}

// Ping reports the open circuit before asking the wrapped store
func (b *BreakerStore) Ping(ctx context.Context) error {
	if b.State() == StateOpen {
		return ErrCircuitOpen
	}
	if hc, ok := b.next.(HealthChecker); ok {
		return hc.Ping(ctx)
	}
	return nil
}

func (b *BreakerStore) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *BreakerStore) isOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.lastFailureTime) > b.config.ResetTimeout {
		b.state = StateHalfOpen
		b.halfOpenSuccesses = 0
		return false
	}

	return b.state == StateOpen
}

func (b *BreakerStore) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		switch b.state {
		case StateHalfOpen:
			b.halfOpenSuccesses++
			if b.halfOpenSuccesses >= b.config.HalfOpenMaxSucc {
				b.transition(StateClosed)
			}
		case StateClosed:
			b.failures = 0
		}
		return
	}

	b.lastFailureTime = b.now()

	switch b.state {
	case StateHalfOpen:
		b.transition(StateOpen)
	case StateClosed:
		b.failures++
		if b.failures >= b.config.MaxFailures {
			b.transition(StateOpen)
		}
	}
}

func (b *BreakerStore) transition(to BreakerState) {
	slog.Warn("storage circuit breaker state change", "from", b.state.String(), "to", to.String(), "failures", b.failures)
	b.state = to
	b.failures = 0
	b.halfOpenSuccesses = 0
}

package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-tracker/internal/kvstore/kvstore_mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type BreakerStoreSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	next    *kvstore_mocks.MockStore
	breaker *BreakerStore
	now     time.Time
}

func TestBreakerStoreSuite(t *testing.T) {
	suite.Run(t, new(BreakerStoreSuite))
}

func (s *BreakerStoreSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.next = kvstore_mocks.NewMockStore(s.ctrl)
	s.breaker = NewBreakerStore(s.next, BreakerConfig{MaxFailures: 2, ResetTimeout: time.Minute, HalfOpenMaxSucc: 1})
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.breaker.now = func() time.Time { return s.now }
}

func (s *BreakerStoreSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BreakerStoreSuite) TestPassesThroughWhileClosed() {
	s.next.EXPECT().Set("budgets", "[]").Return(nil)
	s.next.EXPECT().Get("budgets").Return("[]", true, nil)

	s.NoError(s.breaker.Set("budgets", "[]"))
	value, found, err := s.breaker.Get("budgets")

	s.NoError(err)
	s.True(found)
	s.Equal("[]", value)
	s.Equal(StateClosed, s.breaker.State())
}

func (s *BreakerStoreSuite) TestOpensAfterConsecutiveFailures() {
	dbErr := errors.New("connection reset")
	s.next.EXPECT().Set("transactions", "[]").Return(dbErr).Times(2)

	s.ErrorIs(s.breaker.Set("transactions", "[]"), dbErr)
	s.ErrorIs(s.breaker.Set("transactions", "[]"), dbErr)
	s.Equal(StateOpen, s.breaker.State())

	// fails fast without reaching the wrapped store
	s.ErrorIs(s.breaker.Set("transactions", "[]"), ErrCircuitOpen)
	_, _, err := s.breaker.Get("transactions")
	s.ErrorIs(err, ErrCircuitOpen)
	s.ErrorIs(s.breaker.Ping(context.Background()), ErrCircuitOpen)
}

func (s *BreakerStoreSuite) TestSuccessResetsFailureCount() {
	dbErr := errors.New("timeout")
	gomock.InOrder(
		s.next.EXPECT().Set("budgets", "a").Return(dbErr),
		s.next.EXPECT().Set("budgets", "b").Return(nil),
		s.next.EXPECT().Set("budgets", "c").Return(dbErr),
	)

	s.Error(s.breaker.Set("budgets", "a"))
	s.NoError(s.breaker.Set("budgets", "b"))
	s.Error(s.breaker.Set("budgets", "c"))

	s.Equal(StateClosed, s.breaker.State())
}

func (s *BreakerStoreSuite) TestHalfOpenProbeClosesOnSuccess() {
	s.openBreaker()

	s.now = s.now.Add(2 * time.Minute)
	s.next.EXPECT().Set("budgets", "[]").Return(nil)

	s.NoError(s.breaker.Set("budgets", "[]"))
	s.Equal(StateClosed, s.breaker.State())
}

func (s *BreakerStoreSuite) TestHalfOpenProbeReopensOnFailure() {
	s.openBreaker()

	s.now = s.now.Add(2 * time.Minute)
	s.next.EXPECT().Get("budgets").Return("", false, errors.New("still down"))

	_, _, err := s.breaker.Get("budgets")
	s.Error(err)
	s.Equal(StateOpen, s.breaker.State())
}

func (s *BreakerStoreSuite) TestPingDelegatesToHealthChecker() {
	mem := NewMemoryStore()
	breaker := NewBreakerStore(mem, DefaultBreakerConfig())

	s.NoError(breaker.Ping(context.Background()))
}

func (s *BreakerStoreSuite) TestStateString() {
	s.Equal("closed", StateClosed.String())
	s.Equal("open", StateOpen.String())
	s.Equal("half-open", StateHalfOpen.String())
	s.Equal("unknown", BreakerState(42).String())
}

func (s *BreakerStoreSuite) openBreaker() {
	s.next.EXPECT().Set("transactions", "[]").Return(errors.New("down")).Times(2)
	_ = s.breaker.Set("transactions", "[]")
	_ = s.breaker.Set("transactions", "[]")
	s.Require().Equal(StateOpen, s.breaker.State())
}

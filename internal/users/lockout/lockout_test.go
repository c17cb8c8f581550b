package lockout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "cdp/pkg/domain-errors"
	"cdp/pkg/requestcontext"
)

type LockoutSuite struct {
	suite.Suite
	newStore func(t *testing.T) Store
	store    Store
	service  *Service
	start    time.Time
}

func TestLockoutMemory(t *testing.T) {
	suite.Run(t, &LockoutSuite{newStore: func(*testing.T) Store { return NewInMemoryStore() }})
}

func (s *LockoutSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.service = New(s.store, WithConfig(Config{MaxAttempts: 3, Window: 10 * time.Minute, LockDuration: 5 * time.Minute}))
	s.start = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
}

func (s *LockoutSuite) at(offset time.Duration) context.Context {
	return requestcontext.WithTime(context.Background(), s.start.Add(offset))
}

func (s *LockoutSuite) fail(offset time.Duration) bool {
	locked, err := s.service.RecordFailure(s.at(offset), "awa@cdp.sn", "10.0.0.1")
	s.Require().NoError(err)
	return locked
}

func (s *LockoutSuite) TestLocksAtLimit() {
	s.False(s.fail(0))
	s.False(s.fail(time.Minute))
	s.NoError(s.service.Check(s.at(time.Minute), "awa@cdp.sn", "10.0.0.1"))

	s.True(s.fail(2 * time.Minute))
	err := s.service.Check(s.at(3*time.Minute), "awa@cdp.sn", "10.0.0.1")
	s.ErrorIs(err, ErrLocked)
	s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))

	s.Run("other ip is unaffected", func() {
		s.NoError(s.service.Check(s.at(3*time.Minute), "awa@cdp.sn", "10.0.0.2"))
	})
}

func (s *LockoutSuite) TestLockExpires() {
	for i := range 3 {
		s.fail(time.Duration(i) * time.Second)
	}
	s.Error(s.service.Check(s.at(4*time.Minute), "awa@cdp.sn", "10.0.0.1"))
	s.NoError(s.service.Check(s.at(6*time.Minute), "awa@cdp.sn", "10.0.0.1"))

	s.False(s.fail(6*time.Minute), "a new window starts after the lock")
}

func (s *LockoutSuite) TestWindowResets() {
	s.fail(0)
	s.fail(time.Minute)
	s.False(s.fail(11*time.Minute), "failures outside the window do not add up")
	s.False(s.fail(12 * time.Minute))
}

func (s *LockoutSuite) TestClear() {
	s.fail(0)
	s.fail(time.Second)
	s.Require().NoError(s.service.Clear(s.at(2*time.Second), "awa@cdp.sn", "10.0.0.1"))
	s.False(s.fail(3*time.Second))
	s.False(s.fail(4*time.Second))
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (*Record, error) { return nil, errors.New("redis down") }
func (brokenStore) Save(context.Context, *Record, time.Duration) error { return errors.New("redis down") }
func (brokenStore) Delete(context.Context, string) error { return errors.New("redis down") }

func TestStoreFailure(t *testing.T) {
	svc := New(brokenStore{})
	ctx := context.Background()

	if err := svc.Check(ctx, "awa@cdp.sn", "10.0.0.1"); err != nil {
		t.Fatalf("check should let the attempt through, got %v", err)
	}
	if _, err := svc.RecordFailure(ctx, "awa@cdp.sn", "10.0.0.1"); !dErrors.HasCode(err, dErrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPurger is a mock implementation of TokenPurger.
type mockPurger struct {
	PurgeFunc func(ctx context.Context, retention time.Duration) (int64, error)
	calls     chan time.Duration
}

func (m *mockPurger) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if m.calls != nil {
		select {
		case m.calls <- retention:
		default:
		}
	}
	if m.PurgeFunc != nil {
		return m.PurgeFunc(ctx, retention)
	}
	return 0, nil
}

func TestScheduler_RunOnce(t *testing.T) {
	t.Run("success: count is returned", func(t *testing.T) {
		var got time.Duration
		p := &mockPurger{PurgeFunc: func(ctx context.Context, retention time.Duration) (int64, error) {
			got = retention
			return 4, nil
		}}

		n, err := New(p, 24*time.Hour).RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.Equal(t, 24*time.Hour, got)
	})

	t.Run("failure: error is returned", func(t *testing.T) {
		dbErr := errors.New("database error")
		p := &mockPurger{PurgeFunc: func(ctx context.Context, retention time.Duration) (int64, error) {
			return 0, dbErr
		}}

		_, err := New(p, time.Hour).RunOnce(context.Background())

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestScheduler_Start_InvalidSchedule(t *testing.T) {
	s := New(&mockPurger{}, time.Hour)

	err := s.Start("every now and then")

	assert.Error(t, err)
}

// TestScheduler_Start_RunsJob waits for one run of a one-second schedule.
func TestScheduler_Start_RunsJob(t *testing.T) {
	p := &mockPurger{calls: make(chan time.Duration, 1)}
	s := New(p, 48*time.Hour)

	require.NoError(t, s.Start("@every 1s"))
	defer s.Stop(context.Background())

	select {
	case retention := <-p.calls:
		assert.Equal(t, 48*time.Hour, retention)
	case <-time.After(3 * time.Second):
		t.Fatal("purge job did not run")
	}
}

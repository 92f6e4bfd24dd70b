package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"caretrack/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_Add(t *testing.T) {
	tests := []struct {
		name          string
		spec          string
		expectedError bool
	}{
		{name: "daily at nine", spec: "0 9 * * *"},
		{name: "descriptor", spec: "@every 10m"},
		{name: "invalid spec", spec: "every morning", expectedError: true},
		{name: "seconds field not accepted", spec: "0 0 9 * * *", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(time.UTC, testutil.NewTestLogger())

			err := s.Add("job", tt.spec, func(ctx context.Context) error { return nil })

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, 0, s.Entries())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, s.Entries())
			}
		})
	}
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := New(nil, testutil.NewTestLogger())

	ran := make(chan struct{}, 1)
	err := s.Add("tick", "@every 1s", func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return fmt.Errorf("failures are logged, not fatal")
	})
	assert.NoError(t, err)

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := New(time.UTC, testutil.NewTestLogger())

	started := make(chan struct{})
	cancelled := make(chan struct{})
	err := s.Add("long", "@every 1s", func(ctx context.Context) error {
		select {
		case <-started:
			return nil
		default:
			close(started)
		}
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})
	assert.NoError(t, err)

	s.Start()

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	s.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("job context was not cancelled before Stop returned")
	}
}

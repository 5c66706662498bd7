package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndList(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:        "content_backup",
		Description: "Export all content to S3",
		Interval:    time.Hour,
		Fn:          func(ctx context.Context) error { return nil },
	})

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, "content_backup", items[0].Name)
	assert.Equal(t, StatusIdle, items[0].Status)
	assert.NotNil(t, items[0].NextDate)
	assert.Nil(t, items[0].LastRunAt)
}

func TestManualRun(t *testing.T) {
	var calls atomic.Int32
	s := New()
	s.Register(Job{
		Name:     "probe",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	require.NoError(t, s.Run(context.Background(), "probe"))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, StatusFulfill, items[0].Status)
	assert.NotNil(t, items[0].LastRunAt)
}

func TestRunUnknownJob(t *testing.T) {
	s := New()
	err := s.Run(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFailedJobRecordsMessage(t *testing.T) {
	done := make(chan struct{})
	s := New()
	s.Register(Job{
		Name:     "flaky",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			defer close(done)
			return errors.New("upstream unreachable")
		},
	})

	require.NoError(t, s.Run(context.Background(), "flaky"))
	<-done

	require.Eventually(t, func() bool {
		items := s.List()
		return len(items) == 1 && items[0].Status == StatusReject
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "upstream unreachable", s.List()[0].Message)
}

func TestScheduledExecution(t *testing.T) {
	var calls atomic.Int32
	s := New()
	s.Register(Job{
		Name:     "tick",
		Interval: 20 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

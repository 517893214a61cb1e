package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lancei-admin/internal/application/jobs"
)

func TestScheduler_RejectsInvalidSpec(t *testing.T) {
	s := jobs.NewScheduler(context.Background())

	err := s.Add("bad", "every minute", func(context.Context, time.Time) error { return nil })

	assert.Error(t, err)
}

func TestScheduler_RunsAndStops(t *testing.T) {
	s := jobs.NewScheduler(context.Background())
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("tick", "@every 1s", func(context.Context, time.Time) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("el job no se ejecutó")
	}
}

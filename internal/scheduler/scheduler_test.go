package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	runs atomic.Int32
}

func (j *countingJob) Refresh(ctx context.Context) error {
	j.runs.Add(1)
	return nil
}

func TestRunsOnBootAndTicks(t *testing.T) {
	job := &countingJob{}
	r := NewRateRefresher(job, 20*time.Millisecond, true, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return job.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestNoBootRun(t *testing.T) {
	job := &countingJob{}
	r := NewRateRefresher(job, time.Hour, false, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, int32(0), job.runs.Load())
}

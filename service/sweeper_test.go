package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSyncer struct {
	calls atomic.Int32
	err   error
}

func (c *countingSyncer) SyncExpiredOrders(context.Context, time.Time) ([]string, error) {
	c.calls.Add(1)
	return nil, c.err
}

func TestSweeperTicksAtTwiceTheBuffer(t *testing.T) {
	syncer := &countingSyncer{}
	sweeper := NewExpirySweeper(syncer, 10*time.Millisecond)

	sweeper.Start(context.Background())
	time.Sleep(110 * time.Millisecond)
	sweeper.Stop()

	// 20ms interval over ~110ms gives around 5 ticks.
	calls := syncer.calls.Load()
	assert.GreaterOrEqual(t, calls, int32(3))
	assert.LessOrEqual(t, calls, int32(7))
}

func TestSweeperSurvivesSyncFailure(t *testing.T) {
	syncer := &countingSyncer{err: errors.New("storage is down")}
	sweeper := NewExpirySweeper(syncer, 5*time.Millisecond)

	sweeper.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	sweeper.Stop()

	assert.GreaterOrEqual(t, syncer.calls.Load(), int32(2), "failed sweeps must not stop the loop")
}

func TestSweeperStopsOnContextCancel(t *testing.T) {
	syncer := &countingSyncer{}
	sweeper := NewExpirySweeper(syncer, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		<-sweeper.done
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancel")
	}
}

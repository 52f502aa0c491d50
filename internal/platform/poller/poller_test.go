package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_RunsOnEachTickAndStopsDeterministically(t *testing.T) {
	mt := NewManualTicker()
	var calls atomic.Int32

	task := Start(context.Background(), 30*time.Second, func(ctx context.Context) {
		calls.Add(1)
	}, WithTicker(mt.Factory()), WithKind("test"))

	require.True(t, mt.Tick(time.Second))
	require.True(t, mt.Tick(time.Second))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)

	task.Stop()
	assert.True(t, mt.Stopped())

	// después de Stop nadie consume ticks y fn no corre más
	assert.False(t, mt.Tick(20*time.Millisecond))
	assert.Equal(t, int32(2), calls.Load())
}

func TestTask_CancelFromInsideCallback(t *testing.T) {
	mt := NewManualTicker()
	var task *Task
	started := make(chan struct{})

	task = Start(context.Background(), time.Second, func(ctx context.Context) {
		<-started
		task.Cancel()
	}, WithTicker(mt.Factory()))
	close(started)

	require.True(t, mt.Tick(time.Second))

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not stop after Cancel from callback")
	}
	task.Stop() // idempotente
}

func TestTask_ParentCancellationStopsLoop(t *testing.T) {
	mt := NewManualTicker()
	ctx, cancel := context.WithCancel(context.Background())

	task := Start(ctx, time.Second, func(context.Context) {}, WithTicker(mt.Factory()))
	cancel()

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not stop on parent cancellation")
	}
}

func TestNilTaskIsSafe(t *testing.T) {
	var task *Task
	task.Cancel()
	task.Stop()
}

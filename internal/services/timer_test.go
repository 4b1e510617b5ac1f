package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerFiresWithArmedIndex(t *testing.T) {
	timers := NewTimerService()
	defer timers.Shutdown()

	fired := make(chan int, 1)
	timers.Arm("ABC123", 3, 20*time.Millisecond, func(q int) {
		fired <- q
	})

	select {
	case q := <-fired:
		assert.Equal(t, 3, q)
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestTimerDisarmCancelsCountdown(t *testing.T) {
	timers := NewTimerService()
	defer timers.Shutdown()

	var fires int32
	timers.Arm("ABC123", 0, 20*time.Millisecond, func(int) {
		atomic.AddInt32(&fires, 1)
	})
	timers.Disarm("ABC123")

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fires))

	_, armed := timers.Elapsed("ABC123")
	assert.False(t, armed)
}

func TestTimerRearmReplacesCountdown(t *testing.T) {
	timers := NewTimerService()
	defer timers.Shutdown()

	fired := make(chan int, 2)
	timers.Arm("ABC123", 0, 30*time.Millisecond, func(q int) { fired <- q })
	timers.Arm("ABC123", 1, 30*time.Millisecond, func(q int) { fired <- q })

	select {
	case q := <-fired:
		assert.Equal(t, 1, q)
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}

	select {
	case q := <-fired:
		t.Fatalf("replaced countdown fired with index %d", q)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTimerElapsedAndRemaining(t *testing.T) {
	timers := NewTimerService()
	defer timers.Shutdown()

	timers.Arm("ABC123", 0, time.Minute, func(int) {})

	elapsed, armed := timers.Elapsed("ABC123")
	require.True(t, armed)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	assert.Less(t, elapsed, time.Minute)

	remaining, armed := timers.Remaining("ABC123")
	require.True(t, armed)
	assert.Greater(t, remaining, 50*time.Second)

	_, armed = timers.Elapsed("XYZ999")
	assert.False(t, armed)
}

func TestTimerShutdownStopsEverything(t *testing.T) {
	timers := NewTimerService()

	var fires int32
	timers.Arm("AAAAAA", 0, 20*time.Millisecond, func(int) { atomic.AddInt32(&fires, 1) })
	timers.Arm("BBBBBB", 0, 20*time.Millisecond, func(int) { atomic.AddInt32(&fires, 1) })
	timers.Shutdown()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fires))
}

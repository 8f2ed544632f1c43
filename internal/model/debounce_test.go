package model

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalesces(t *testing.T) {
	var calls, last atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	for i := range 5 {
		d.Trigger(func() {
			calls.Add(1)
			last.Store(int32(i))
		})
	}
	assert.True(t, d.Pending())

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(4), last.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerCancel(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(10 * time.Millisecond)

	d.Trigger(func() { calls.Add(1) })
	d.Cancel()
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(10 * time.Millisecond)

	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncerNoDelay(t *testing.T) {
	var calls int
	d := NewDebouncer(0)

	d.Trigger(func() { calls++ })
	d.Trigger(func() { calls++ })

	assert.Equal(t, 2, calls)
	assert.Equal(t, time.Duration(0), d.Delay())
}

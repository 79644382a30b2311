package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler_FiresInOrder(t *testing.T) {
	s := NewManualScheduler()
	var fired []string
	s.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	s.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	s.AfterFunc(2*time.Second, func() { fired = append(fired, "c") })

	s.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, 2, s.Pending())

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 2500*time.Millisecond, s.Elapsed())
}

func TestManualScheduler_Stop(t *testing.T) {
	s := NewManualScheduler()
	called := false
	tm := s.AfterFunc(time.Second, func() { called = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	s.Advance(time.Minute)
	assert.False(t, called)
}

func TestManualScheduler_RescheduleDuringAdvance(t *testing.T) {
	s := NewManualScheduler()
	count := 0
	var tick func()
	tick = func() {
		count++
		s.AfterFunc(time.Second, tick)
	}
	s.AfterFunc(time.Second, tick)

	s.Advance(5 * time.Second)
	assert.Equal(t, 5, count)
	assert.Equal(t, 1, s.Pending())
}

func TestRealScheduler(t *testing.T) {
	done := make(chan struct{})
	RealScheduler{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

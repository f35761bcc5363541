package quiz

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdownFiresOnceAtZero(t *testing.T) {
	var fired int32
	c := NewCountdown(5, func() { atomic.AddInt32(&fired, 1) })

	for i := 0; i < 4; i++ {
		c.Tick()
	}
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatalf("fired before reaching zero")
	}
	if got := c.Tick(); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Fatalf("expected exactly one expiry, got %d", got)
	}
	if !c.Expired() || c.Remaining() != 0 {
		t.Fatalf("unexpected state expired=%v remaining=%d", c.Expired(), c.Remaining())
	}
}

func TestCountdownLowTime(t *testing.T) {
	c := NewCountdown(62, nil)
	if c.LowTime() {
		t.Fatalf("62s should not be low time")
	}
	c.Tick()
	if c.LowTime() {
		t.Fatalf("61s should not be low time")
	}
	c.Tick()
	if !c.LowTime() {
		t.Fatalf("60s should be low time")
	}
	if c.Display() != "01:00" {
		t.Fatalf("unexpected display %s", c.Display())
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{1800: "30:00", 61: "01:01", 9: "00:09", 0: "00:00", -3: "00:00"}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %s, want %s", in, got, want)
		}
	}
}

func TestCountdownRunExpires(t *testing.T) {
	var fired int32
	c := NewCountdown(3, func() { atomic.AddInt32(&fired, 1) }, WithInterval(time.Millisecond))

	var ticks []int
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(context.Background(), func(remaining int) { ticks = append(ticks, remaining) })
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("countdown did not finish")
	}
	if atomic.LoadInt32(&fired) != 1 {
		t.Fatalf("expected one expiry, got %d", fired)
	}
	if len(ticks) != 3 || ticks[2] != 0 {
		t.Fatalf("unexpected ticks %v", ticks)
	}
}

func TestCountdownRunStopsOnCancel(t *testing.T) {
	var fired int32
	c := NewCountdown(1000, func() { atomic.AddInt32(&fired, 1) }, WithInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx, nil)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("countdown kept running after cancel")
	}

	remaining := c.Remaining()
	time.Sleep(10 * time.Millisecond)
	if c.Remaining() != remaining {
		t.Fatalf("countdown ticked after cancel")
	}
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatalf("expiry fired after cancel")
	}
}

func TestCountdownRunAtZeroFiresImmediately(t *testing.T) {
	var fired int32
	c := NewCountdown(0, func() { atomic.AddInt32(&fired, 1) })
	c.Run(context.Background(), nil)
	c.Run(context.Background(), nil)
	if atomic.LoadInt32(&fired) != 1 {
		t.Fatalf("expected one expiry, got %d", fired)
	}
}

package glitch

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTimer(seed int64) *Timer {
	return NewTimer(DefaultPolicy(), rand.New(rand.NewSource(seed)))
}

func TestInitialState(t *testing.T) {
	tm := newTestTimer(1)
	assert.Equal(t, Idle, tm.StateAt(0))
	assert.Equal(t, Idle, tm.StateAt(100))
	assert.Equal(t, 0.0, tm.LastGlitchTime())
	assert.Equal(t, 0.0, tm.HoldTime())
}

func TestHoldWindowSemantics(t *testing.T) {
	tm := newTestTimer(1)
	tm.Trigger(10, 0.5)

	assert.Equal(t, Glitching, tm.StateAt(10))
	assert.Equal(t, Glitching, tm.StateAt(10.25))
	assert.Equal(t, Glitching, tm.StateAt(10.4999))
	assert.Equal(t, Idle, tm.StateAt(10.5))
	assert.Equal(t, Idle, tm.StateAt(50))
}

func TestZeroHoldIsAlwaysIdle(t *testing.T) {
	tm := newTestTimer(1)
	tm.Trigger(5, 0)
	assert.Equal(t, Idle, tm.StateAt(5))
	assert.Equal(t, Idle, tm.StateAt(5.001))
}

func TestNoTriggerWhenGlitchAmountZero(t *testing.T) {
	tm := newTestTimer(7)
	now := 0.0
	for i := 0; i < 100000; i++ {
		now += 1.0 / 60.0
		tm.Update(now, 1.0/60.0, 0, 1.0) // max peak, zero glitch amount
		if tm.StateAt(now) != Idle {
			t.Fatalf("glitch fired at t=%f with zero glitch amount", now)
		}
	}
	assert.Equal(t, 0.0, tm.LastGlitchTime())
}

func TestTriggersEventuallyAtFullGlitchAmount(t *testing.T) {
	tm := newTestTimer(7)
	now := 0.0
	fired := false
	for i := 0; i < 100000 && !fired; i++ {
		now += 1.0 / 60.0
		tm.Update(now, 1.0/60.0, 1.0, 1.0)
		fired = tm.LastGlitchTime() > 0
	}
	assert.True(t, fired, "full glitch amount and peak should fire within budget")
	assert.Greater(t, tm.HoldTime(), 0.0)
}

func TestNoRetriggerWhileGlitching(t *testing.T) {
	tm := newTestTimer(3)
	tm.Trigger(1, 1.0)

	last := tm.LastGlitchTime()
	// Update inside the hold window must not move the event timestamp.
	tm.Update(1.5, 1.0/60.0, 1.0, 1.0)
	assert.Equal(t, last, tm.LastGlitchTime())
}

func TestPolicyMonotonicity(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, 0.0, p.TriggerRate(0, 1))
	assert.LessOrEqual(t, p.TriggerRate(0.2, 0.5), p.TriggerRate(0.8, 0.5))
	assert.LessOrEqual(t, p.TriggerRate(0.5, 0.1), p.TriggerRate(0.5, 0.9))

	assert.LessOrEqual(t, p.Hold(0.1), p.Hold(0.9))
	assert.GreaterOrEqual(t, p.Hold(0), p.MinHold)
	assert.LessOrEqual(t, p.Hold(1), p.MaxHold)
}

func TestReset(t *testing.T) {
	tm := newTestTimer(1)
	tm.Trigger(100, 10)
	assert.Equal(t, Glitching, tm.StateAt(105))

	tm.Reset()
	assert.Equal(t, Idle, tm.StateAt(105))
	assert.Equal(t, 0.0, tm.LastGlitchTime())
	assert.Equal(t, 0.0, tm.HoldTime())
}

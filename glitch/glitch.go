// Package glitch implements the stutter-effect timer: a two-state machine
// that decides when a glitch event fires and how long the renderer should
// hold a frozen frame. The timer only tracks timing; the visual freeze itself
// is the consumer's job, driven by the two timestamps it exports.
package glitch

import "math/rand"

// State of the timer at a given instant.
type State int

const (
	Idle State = iota
	Glitching
)

func (s State) String() string {
	if s == Glitching {
		return "glitching"
	}
	return "idle"
}

// Policy decides trigger likelihood and hold duration. Implementations must
// be monotonic non-decreasing in both glitch amount and audio peak, and must
// return a zero rate when glitch amount is zero.
type Policy interface {
	// TriggerRate returns the expected number of glitch events per second
	// for the given control and audio inputs.
	TriggerRate(glitchAmount, audioPeak float32) float64
	// Hold returns the freeze duration in seconds for a fired event.
	Hold(glitchAmount float32) float64
}

// ThresholdPolicy is the default policy: the rate scales linearly with the
// glitch amount and is boosted by audio transients; the hold duration grows
// with the glitch amount between fixed bounds.
type ThresholdPolicy struct {
	BaseRate float64 // events/sec at full glitch amount and silence
	PeakGain float64 // extra events/sec at full glitch amount per unit of peak
	MinHold  float64 // seconds
	MaxHold  float64 // seconds
}

// DefaultPolicy returns the tuning used by the stock renderer.
func DefaultPolicy() ThresholdPolicy {
	return ThresholdPolicy{
		BaseRate: 0.4,
		PeakGain: 4.0,
		MinHold:  0.05,
		MaxHold:  0.35,
	}
}

func (p ThresholdPolicy) TriggerRate(glitchAmount, audioPeak float32) float64 {
	if glitchAmount <= 0 {
		return 0
	}
	return float64(glitchAmount) * (p.BaseRate + p.PeakGain*float64(audioPeak))
}

func (p ThresholdPolicy) Hold(glitchAmount float32) float64 {
	return p.MinHold + float64(glitchAmount)*(p.MaxHold-p.MinHold)
}

// Timer tracks the last glitch event and its hold window. It is driven from
// the frame builder only; it is not safe for concurrent use.
type Timer struct {
	policy Policy
	rng    *rand.Rand

	lastGlitchTime float64
	holdTime       float64
}

// NewTimer returns an Idle timer using the given policy and random source.
func NewTimer(policy Policy, rng *rand.Rand) *Timer {
	return &Timer{policy: policy, rng: rng}
}

// Update runs one probability check for the elapsed interval and fires a
// transition to Glitching if the draw succeeds. While a hold window is open
// no new event can fire.
func (t *Timer) Update(now, dt float64, glitchAmount, audioPeak float32) {
	if t.StateAt(now) == Glitching {
		return
	}
	rate := t.policy.TriggerRate(glitchAmount, audioPeak)
	if rate <= 0 || dt <= 0 {
		return
	}
	if t.rng.Float64() < rate*dt {
		t.Trigger(now, t.policy.Hold(glitchAmount))
	}
}

// Trigger opens a hold window of the given duration starting at now.
func (t *Timer) Trigger(now, hold float64) {
	t.lastGlitchTime = now
	t.holdTime = hold
}

// StateAt reports the machine state at the given instant: Glitching for
// t in [lastGlitchTime, lastGlitchTime+holdTime), Idle after.
func (t *Timer) StateAt(now float64) State {
	if now >= t.lastGlitchTime && now < t.lastGlitchTime+t.holdTime {
		return Glitching
	}
	return Idle
}

// LastGlitchTime returns the timestamp of the last fired event.
func (t *Timer) LastGlitchTime() float64 { return t.lastGlitchTime }

// HoldTime returns the hold duration of the last fired event.
func (t *Timer) HoldTime() float64 { return t.holdTime }

// Reset forces the timer back to Idle with cleared timing, as part of a
// visual reset.
func (t *Timer) Reset() {
	t.lastGlitchTime = 0
	t.holdTime = 0
}

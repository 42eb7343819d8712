// Package controls holds the user-tunable parameters feeding the frame
// builder. Writers are UI/key callbacks; the reader is the per-frame builder,
// which takes a value snapshot so one frame never mixes two control states.
package controls

import (
	"sync"

	"github.com/jp206100/motion-hub/uniforms"
)

// Snapshot is a value copy of the control state at one instant.
type Snapshot struct {
	Intensity     float32
	GlitchAmount  float32
	Speed         float32
	ColorShift    float32
	PulseStrength float32
	Monochrome    bool

	// ActivePattern and TextureCount are carried as supplied; the frame
	// builder clamps them into the shader contract's ranges.
	ActivePattern int32
	TextureCount  int32

	// FreqBand selects which analyzer band feeds audioFreqBand (0..7).
	FreqBand int
}

// State is the mutex-guarded control set.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewState returns controls at their startup defaults.
func NewState() *State {
	return &State{snap: Snapshot{
		Intensity:     0.8,
		GlitchAmount:  0.2,
		Speed:         1,
		ColorShift:    0,
		PulseStrength: 0.5,
	}}
}

// Snapshot returns the current control values by value.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// The scalar setters sanitize into the documented ranges so a slider or OSC
// message can never push an out-of-range value into the pipeline.

func (s *State) SetIntensity(v float32) {
	s.mu.Lock()
	s.snap.Intensity = uniforms.ClampUnit(v)
	s.mu.Unlock()
}

func (s *State) SetGlitchAmount(v float32) {
	s.mu.Lock()
	s.snap.GlitchAmount = uniforms.ClampUnit(v)
	s.mu.Unlock()
}

func (s *State) SetSpeed(v float32) {
	s.mu.Lock()
	s.snap.Speed = uniforms.ClampSpeed(v)
	s.mu.Unlock()
}

func (s *State) SetColorShift(v float32) {
	s.mu.Lock()
	s.snap.ColorShift = uniforms.ClampUnit(v)
	s.mu.Unlock()
}

func (s *State) SetPulseStrength(v float32) {
	s.mu.Lock()
	s.snap.PulseStrength = uniforms.ClampUnit(v)
	s.mu.Unlock()
}

func (s *State) SetMonochrome(on bool) {
	s.mu.Lock()
	s.snap.Monochrome = on
	s.mu.Unlock()
}

func (s *State) ToggleMonochrome() {
	s.mu.Lock()
	s.snap.Monochrome = !s.snap.Monochrome
	s.mu.Unlock()
}

// SetActivePattern stores the pattern index as given. Range enforcement is
// the builder's responsibility so malformed UI state surfaces there as a
// logged anomaly instead of silently disappearing.
func (s *State) SetActivePattern(idx int32) {
	s.mu.Lock()
	s.snap.ActivePattern = idx
	s.mu.Unlock()
}

// CyclePattern advances to the next procedural pattern, wrapping around.
func (s *State) CyclePattern() {
	s.mu.Lock()
	s.snap.ActivePattern = (s.snap.ActivePattern + 1) % uniforms.PatternCount
	s.mu.Unlock()
}

// SetTextureCount stores the texture count as given; see SetActivePattern.
func (s *State) SetTextureCount(n int32) {
	s.mu.Lock()
	s.snap.TextureCount = n
	s.mu.Unlock()
}

// SetFreqBand selects the analyzer band feeding audioFreqBand.
func (s *State) SetFreqBand(band int) {
	s.mu.Lock()
	s.snap.FreqBand = band
	s.mu.Unlock()
}

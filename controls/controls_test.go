package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jp206100/motion-hub/uniforms"
)

func TestScalarSettersClamp(t *testing.T) {
	s := NewState()

	s.SetIntensity(1.7)
	s.SetGlitchAmount(-0.3)
	s.SetSpeed(9)
	s.SetColorShift(0.25)
	s.SetPulseStrength(2)

	snap := s.Snapshot()
	assert.Equal(t, float32(1), snap.Intensity)
	assert.Equal(t, float32(0), snap.GlitchAmount)
	assert.Equal(t, float32(uniforms.MaxSpeed), snap.Speed)
	assert.Equal(t, float32(0.25), snap.ColorShift)
	assert.Equal(t, float32(1), snap.PulseStrength)
}

func TestPatternAndTexturesPassThrough(t *testing.T) {
	s := NewState()

	// Out-of-range values are kept here; the builder clamps them.
	s.SetActivePattern(42)
	s.SetTextureCount(-5)

	snap := s.Snapshot()
	assert.Equal(t, int32(42), snap.ActivePattern)
	assert.Equal(t, int32(-5), snap.TextureCount)
}

func TestCyclePatternWraps(t *testing.T) {
	s := NewState()
	s.SetActivePattern(uniforms.PatternCount - 1)
	s.CyclePattern()
	assert.Equal(t, int32(0), s.Snapshot().ActivePattern)
}

func TestToggleMonochrome(t *testing.T) {
	s := NewState()
	assert.False(t, s.Snapshot().Monochrome)
	s.ToggleMonochrome()
	assert.True(t, s.Snapshot().Monochrome)
	s.ToggleMonochrome()
	assert.False(t, s.Snapshot().Monochrome)
}

func TestSnapshotIsValueCopy(t *testing.T) {
	s := NewState()
	snap := s.Snapshot()
	snap.Intensity = 0

	assert.Equal(t, float32(0.8), s.Snapshot().Intensity)
}

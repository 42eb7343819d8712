// Package frame assembles the per-tick uniform snapshot. The builder is the
// single point where controls, audio features, timing and glitch state meet;
// it produces one complete, internally consistent block per render tick and
// never blocks on anything slower than a mutex.
package frame

import (
	"log"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/jp206100/motion-hub/audio"
	"github.com/jp206100/motion-hub/controls"
	"github.com/jp206100/motion-hub/glitch"
	"github.com/jp206100/motion-hub/uniforms"
)

// FeatureSource yields one audio analysis tick. Satisfied by
// *audio.FeatureExtractor.
type FeatureSource interface {
	Sample(band int) audio.Features
}

// Builder produces one FrameUniforms value per render tick. Build is called
// from the producer loop only; SetResolution and RequestReset may be called
// from UI callbacks and are folded in at the next tick.
type Builder struct {
	controls *controls.State
	features FeatureSource
	timer    *glitch.Timer
	seeds    *rand.Rand

	mu           sync.Mutex
	resolution   mgl32.Vec2
	resetPending bool

	seed      uint32
	prevTime  float64
	hasTicked bool
}

// NewBuilder draws the initial random seed from seeds and returns a builder
// wired to the given collaborators.
func NewBuilder(ctrl *controls.State, features FeatureSource, timer *glitch.Timer, seeds *rand.Rand) *Builder {
	return &Builder{
		controls:   ctrl,
		features:   features,
		timer:      timer,
		seeds:      seeds,
		seed:       seeds.Uint32(),
		resolution: mgl32.Vec2{1, 1},
	}
}

// SetResolution records the render target size, applied on the next tick.
func (b *Builder) SetResolution(width, height int) {
	b.mu.Lock()
	b.resolution = mgl32.Vec2{float32(width), float32(height)}
	b.mu.Unlock()
}

// RequestReset schedules a visual reset: a fresh random seed and a glitch
// timer back at idle, applied atomically at the start of the next tick.
func (b *Builder) RequestReset() {
	b.mu.Lock()
	b.resetPending = true
	b.mu.Unlock()
}

// Seed returns the seed the next built frame will carry (absent a reset).
func (b *Builder) Seed() uint32 {
	return b.seed
}

// Build assembles the snapshot for the tick at the given time (seconds).
// Every field reflects this single tick; nothing is carried over half-updated.
func (b *Builder) Build(now float64) uniforms.FrameUniforms {
	b.mu.Lock()
	res := b.resolution
	reset := b.resetPending
	b.resetPending = false
	b.mu.Unlock()

	if reset {
		b.seed = b.seeds.Uint32()
		b.timer.Reset()
	}

	// Clock regression and the first tick both read as a zero delta; a
	// negative delta must never reach the shaders.
	dt := now - b.prevTime
	if !b.hasTicked || dt < 0 {
		dt = 0
	}
	b.prevTime = now
	b.hasTicked = true

	ctrl := b.controls.Snapshot()
	feats := b.features.Sample(ctrl.FreqBand)

	b.timer.Update(now, dt, ctrl.GlitchAmount, feats.Peak)

	pattern := ctrl.ActivePattern
	if pattern < 0 || pattern >= uniforms.PatternCount {
		log.Printf("control anomaly: active pattern %d out of range, clamping", pattern)
		pattern = uniforms.ClampIndex(pattern, uniforms.PatternCount)
	}
	textures := ctrl.TextureCount
	if textures < 0 || textures > uniforms.MaxTextures {
		log.Printf("control anomaly: texture count %d out of range, clamping", textures)
		textures = uniforms.ClampCount(textures, uniforms.MaxTextures)
	}

	mono := int32(0)
	if ctrl.Monochrome {
		mono = 1
	}

	return uniforms.FrameUniforms{
		Time:      float32(now),
		DeltaTime: float32(dt),

		AudioLevel:    feats.Level,
		AudioBass:     feats.Bass,
		AudioMid:      feats.Mid,
		AudioHigh:     feats.High,
		AudioFreqBand: feats.Band,
		AudioPeak:     feats.Peak,
		AudioSmooth:   feats.Smooth,

		Intensity:     ctrl.Intensity,
		GlitchAmount:  ctrl.GlitchAmount,
		Speed:         ctrl.Speed,
		ColorShift:    ctrl.ColorShift,
		PulseStrength: ctrl.PulseStrength,
		IsMonochrome:  mono,

		Resolution: res,

		RandomSeed:    b.seed,
		TextureCount:  textures,
		ActivePattern: pattern,

		LastGlitchTime: float32(b.timer.LastGlitchTime()),
		GlitchHoldTime: float32(b.timer.HoldTime()),
	}
}

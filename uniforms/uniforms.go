// Package uniforms defines the CPU-side mirror of the parameter blocks the
// shaders read. Field order, size and alignment here are the wire format
// between the frame builder and the GPU: the std140 block declarations in the
// renderer must match these structs byte for byte, which is why every padding
// slot is explicit and every offset is documented.
package uniforms

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxTextures is the maximum number of active inspiration textures.
	MaxTextures = 8
	// PatternCount is the number of procedural patterns; ActivePattern is
	// an index in [0, PatternCount).
	PatternCount = 8

	MinSpeed = 1.0
	MaxSpeed = 4.0
)

// Version selects one of the two block layouts. Producer and consumer are
// configured with the same version at startup; there is no runtime
// negotiation and the two layouts must never be mixed.
type Version int

const (
	// V1 is the legacy compact layout (CompactUniforms).
	V1 Version = iota + 1
	// V2 is the expanded layout (FrameUniforms) with the extra audio
	// fields and glitch timing.
	V2
)

// Block is one marshalable uniform block.
type Block interface {
	Size() int
	Marshal() []byte
}

// FrameUniforms is the expanded per-frame parameter block (layout V2).
// Matches the std140 "FrameState" block in the fragment shaders.
// Size: 96 bytes.
type FrameUniforms struct {
	Time      float32 // offset  0: seconds since start
	DeltaTime float32 // offset  4: seconds since previous frame, >= 0

	AudioLevel    float32 // offset  8: overall level
	AudioBass     float32 // offset 12: 20-250 Hz
	AudioMid      float32 // offset 16: 250-2000 Hz
	AudioHigh     float32 // offset 20: 2000-20000 Hz
	AudioFreqBand float32 // offset 24: user-selected band level
	AudioPeak     float32 // offset 28: transient detection
	AudioSmooth   float32 // offset 32: smoothed overall level

	Intensity     float32 // offset 36: 0-1
	GlitchAmount  float32 // offset 40: 0-1
	Speed         float32 // offset 44: 1-4 multiplier
	ColorShift    float32 // offset 48: 0-1
	PulseStrength float32 // offset 52: 0-1
	IsMonochrome  int32   // offset 56: 0 or 1

	_ float32 // offset 60: pad so Resolution lands on a vec2 boundary

	Resolution mgl32.Vec2 // offset 64: render target size in pixels

	RandomSeed    uint32 // offset 72: redrawn only on a visual reset
	TextureCount  int32  // offset 76: 0..MaxTextures
	ActivePattern int32  // offset 80: 0..PatternCount-1

	LastGlitchTime float32 // offset 84: when the last glitch fired
	GlitchHoldTime float32 // offset 88: how long to hold the frozen frame

	_ float32 // offset 92: pad to 96 bytes (16-byte multiple)
}

// Size returns the block size in bytes (96).
func (u *FrameUniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the block into little-endian bytes at the documented
// offsets, suitable for glBufferSubData into a std140 UBO.
func (u *FrameUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	scalars := []float32{
		u.Time, u.DeltaTime,
		u.AudioLevel, u.AudioBass, u.AudioMid, u.AudioHigh,
		u.AudioFreqBand, u.AudioPeak, u.AudioSmooth,
		u.Intensity, u.GlitchAmount, u.Speed, u.ColorShift, u.PulseStrength,
	}
	for i, v := range scalars {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[56:], uint32(u.IsMonochrome))
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(u.Resolution[0]))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(u.Resolution[1]))
	binary.LittleEndian.PutUint32(buf[72:], u.RandomSeed)
	binary.LittleEndian.PutUint32(buf[76:], uint32(u.TextureCount))
	binary.LittleEndian.PutUint32(buf[80:], uint32(u.ActivePattern))
	binary.LittleEndian.PutUint32(buf[84:], math.Float32bits(u.LastGlitchTime))
	binary.LittleEndian.PutUint32(buf[88:], math.Float32bits(u.GlitchHoldTime))
	return buf
}

// VertexOut mirrors the vertex-to-fragment interface struct. The core never
// writes it; it is declared here because it shares the layout discipline.
// Size: 32 bytes.
type VertexOut struct {
	Position mgl32.Vec4 // offset  0: clip-space position
	TexCoord mgl32.Vec2 // offset 16: quad texture coordinate
	_        [2]float32 // offset 24: pad to 32 bytes
}

// ClampUnit clamps v to [0, 1].
func ClampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampSpeed clamps v to the [MinSpeed, MaxSpeed] multiplier range.
func ClampSpeed(v float32) float32 {
	if v < MinSpeed {
		return MinSpeed
	}
	if v > MaxSpeed {
		return MaxSpeed
	}
	return v
}

// ClampIndex clamps v to [0, limit).
func ClampIndex(v, limit int32) int32 {
	if v < 0 {
		return 0
	}
	if v >= limit {
		return limit - 1
	}
	return v
}

// ClampCount clamps v to [0, limit].
func ClampCount(v, limit int32) int32 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

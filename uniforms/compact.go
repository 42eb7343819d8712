package uniforms

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// CompactUniforms is the legacy per-frame parameter block (layout V1). It
// predates the peak/smooth/band audio fields and the glitch timing pair.
// Kept for consumers built against the old shader set; producer and consumer
// pick exactly one layout at startup.
// Size: 72 bytes.
type CompactUniforms struct {
	Time      float32 // offset  0
	DeltaTime float32 // offset  4

	AudioLevel float32 // offset  8
	AudioBass  float32 // offset 12
	AudioMid   float32 // offset 16
	AudioHigh  float32 // offset 20

	Intensity     float32 // offset 24
	GlitchAmount  float32 // offset 28
	Speed         float32 // offset 32
	ColorShift    float32 // offset 36
	PulseStrength float32 // offset 40
	IsMonochrome  int32   // offset 44

	Resolution mgl32.Vec2 // offset 48

	RandomSeed    uint32 // offset 56
	TextureCount  int32  // offset 60
	ActivePattern int32  // offset 64

	_ float32 // offset 68: pad to 72 bytes
}

// Size returns the block size in bytes (72).
func (u *CompactUniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the block into little-endian bytes at the documented
// offsets.
func (u *CompactUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	scalars := []float32{
		u.Time, u.DeltaTime,
		u.AudioLevel, u.AudioBass, u.AudioMid, u.AudioHigh,
		u.Intensity, u.GlitchAmount, u.Speed, u.ColorShift, u.PulseStrength,
	}
	for i, v := range scalars {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[44:], uint32(u.IsMonochrome))
	binary.LittleEndian.PutUint32(buf[48:], math.Float32bits(u.Resolution[0]))
	binary.LittleEndian.PutUint32(buf[52:], math.Float32bits(u.Resolution[1]))
	binary.LittleEndian.PutUint32(buf[56:], u.RandomSeed)
	binary.LittleEndian.PutUint32(buf[60:], uint32(u.TextureCount))
	binary.LittleEndian.PutUint32(buf[64:], uint32(u.ActivePattern))
	return buf
}

// Compact narrows an expanded snapshot to the legacy layout. The fields the
// old layout lacks are simply dropped; everything else is copied verbatim so
// both layouts describe the same frame tick.
func Compact(u FrameUniforms) CompactUniforms {
	return CompactUniforms{
		Time:          u.Time,
		DeltaTime:     u.DeltaTime,
		AudioLevel:    u.AudioLevel,
		AudioBass:     u.AudioBass,
		AudioMid:      u.AudioMid,
		AudioHigh:     u.AudioHigh,
		Intensity:     u.Intensity,
		GlitchAmount:  u.GlitchAmount,
		Speed:         u.Speed,
		ColorShift:    u.ColorShift,
		PulseStrength: u.PulseStrength,
		IsMonochrome:  u.IsMonochrome,
		Resolution:    u.Resolution,
		RandomSeed:    u.RandomSeed,
		TextureCount:  u.TextureCount,
		ActivePattern: u.ActivePattern,
	}
}

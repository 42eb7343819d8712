package uniforms

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The std140 block declarations in the renderer are written against these
// exact offsets. If one of these assertions fires, the shader source must
// change in lockstep.
func TestFrameUniformsLayout(t *testing.T) {
	var u FrameUniforms

	assert.Equal(t, uintptr(0), unsafe.Offsetof(u.Time))
	assert.Equal(t, uintptr(4), unsafe.Offsetof(u.DeltaTime))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(u.AudioLevel))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(u.AudioBass))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(u.AudioMid))
	assert.Equal(t, uintptr(20), unsafe.Offsetof(u.AudioHigh))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(u.AudioFreqBand))
	assert.Equal(t, uintptr(28), unsafe.Offsetof(u.AudioPeak))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(u.AudioSmooth))
	assert.Equal(t, uintptr(36), unsafe.Offsetof(u.Intensity))
	assert.Equal(t, uintptr(40), unsafe.Offsetof(u.GlitchAmount))
	assert.Equal(t, uintptr(44), unsafe.Offsetof(u.Speed))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(u.ColorShift))
	assert.Equal(t, uintptr(52), unsafe.Offsetof(u.PulseStrength))
	assert.Equal(t, uintptr(56), unsafe.Offsetof(u.IsMonochrome))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(u.Resolution))
	assert.Equal(t, uintptr(72), unsafe.Offsetof(u.RandomSeed))
	assert.Equal(t, uintptr(76), unsafe.Offsetof(u.TextureCount))
	assert.Equal(t, uintptr(80), unsafe.Offsetof(u.ActivePattern))
	assert.Equal(t, uintptr(84), unsafe.Offsetof(u.LastGlitchTime))
	assert.Equal(t, uintptr(88), unsafe.Offsetof(u.GlitchHoldTime))

	assert.Equal(t, 96, u.Size())
}

func TestCompactUniformsLayout(t *testing.T) {
	var u CompactUniforms

	assert.Equal(t, uintptr(0), unsafe.Offsetof(u.Time))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(u.Intensity))
	assert.Equal(t, uintptr(44), unsafe.Offsetof(u.IsMonochrome))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(u.Resolution))
	assert.Equal(t, uintptr(56), unsafe.Offsetof(u.RandomSeed))
	assert.Equal(t, uintptr(64), unsafe.Offsetof(u.ActivePattern))

	assert.Equal(t, 72, u.Size())
}

func TestColorPaletteLayout(t *testing.T) {
	var p ColorPalette

	assert.Equal(t, uintptr(0), unsafe.Offsetof(p.Colors))
	assert.Equal(t, uintptr(96), unsafe.Offsetof(p.ColorCount))
	assert.Equal(t, 112, p.Size())
}

func TestVertexOutLayout(t *testing.T) {
	var v VertexOut

	assert.Equal(t, uintptr(0), unsafe.Offsetof(v.Position))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(v.TexCoord))
	assert.Equal(t, 32, int(unsafe.Sizeof(v)))
}

func f32At(t *testing.T, buf []byte, off int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestFrameUniformsMarshal(t *testing.T) {
	u := FrameUniforms{
		Time:           12.5,
		DeltaTime:      0.016,
		AudioLevel:     0.4,
		AudioBass:      0.6,
		AudioHigh:      0.1,
		AudioPeak:      0.9,
		Intensity:      0.8,
		Speed:          2,
		IsMonochrome:   1,
		Resolution:     mgl32.Vec2{1280, 720},
		RandomSeed:     0xDEADBEEF,
		TextureCount:   3,
		ActivePattern:  5,
		LastGlitchTime: 11.25,
		GlitchHoldTime: 0.2,
	}

	buf := u.Marshal()
	require.Len(t, buf, 96)

	assert.Equal(t, float32(12.5), f32At(t, buf, 0))
	assert.Equal(t, float32(0.6), f32At(t, buf, 12))
	assert.Equal(t, float32(0.9), f32At(t, buf, 28))
	assert.Equal(t, float32(0.8), f32At(t, buf, 36))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[56:]))
	assert.Equal(t, float32(1280), f32At(t, buf, 64))
	assert.Equal(t, float32(720), f32At(t, buf, 68))
	assert.Equal(t, uint32(0xDEADBEEF), binary.LittleEndian.Uint32(buf[72:]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(buf[76:]))
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(buf[80:]))
	assert.Equal(t, float32(11.25), f32At(t, buf, 84))
	assert.Equal(t, float32(0.2), f32At(t, buf, 88))
	// Padding slots stay zero.
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[60:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[92:]))
}

func TestCompactMarshal(t *testing.T) {
	u := CompactUniforms{
		Time:          3,
		AudioLevel:    0.5,
		Intensity:     0.7,
		IsMonochrome:  1,
		Resolution:    mgl32.Vec2{640, 480},
		RandomSeed:    42,
		ActivePattern: 7,
	}

	buf := u.Marshal()
	require.Len(t, buf, 72)

	assert.Equal(t, float32(3), f32At(t, buf, 0))
	assert.Equal(t, float32(0.5), f32At(t, buf, 8))
	assert.Equal(t, float32(0.7), f32At(t, buf, 24))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[44:]))
	assert.Equal(t, float32(640), f32At(t, buf, 48))
	assert.Equal(t, uint32(42), binary.LittleEndian.Uint32(buf[56:]))
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(buf[64:]))
}

func TestCompactPreservesSharedFields(t *testing.T) {
	u := FrameUniforms{
		Time:          9,
		DeltaTime:     0.01,
		AudioLevel:    0.3,
		AudioBass:     0.2,
		AudioMid:      0.4,
		AudioHigh:     0.5,
		AudioPeak:     0.99, // dropped by the compact layout
		Intensity:     0.6,
		Speed:         3,
		Resolution:    mgl32.Vec2{800, 600},
		RandomSeed:    7,
		TextureCount:  2,
		ActivePattern: 4,
	}

	c := Compact(u)
	assert.Equal(t, u.Time, c.Time)
	assert.Equal(t, u.DeltaTime, c.DeltaTime)
	assert.Equal(t, u.AudioLevel, c.AudioLevel)
	assert.Equal(t, u.AudioHigh, c.AudioHigh)
	assert.Equal(t, u.Speed, c.Speed)
	assert.Equal(t, u.Resolution, c.Resolution)
	assert.Equal(t, u.RandomSeed, c.RandomSeed)
	assert.Equal(t, u.TextureCount, c.TextureCount)
	assert.Equal(t, u.ActivePattern, c.ActivePattern)
}

func TestColorPaletteMarshal(t *testing.T) {
	p := ColorPalette{ColorCount: 2}
	p.Colors[0] = mgl32.Vec4{1, 0, 0, 1}
	p.Colors[1] = mgl32.Vec4{0, 0.5, 1, 1}

	buf := p.Marshal()
	require.Len(t, buf, 112)

	assert.Equal(t, float32(1), f32At(t, buf, 0))
	assert.Equal(t, float32(0.5), f32At(t, buf, 20))
	assert.Equal(t, float32(1), f32At(t, buf, 24))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[96:]))
}

func TestClampHelpers(t *testing.T) {
	assert.Equal(t, float32(0), ClampUnit(-0.5))
	assert.Equal(t, float32(1), ClampUnit(1.5))
	assert.Equal(t, float32(0.25), ClampUnit(0.25))

	assert.Equal(t, float32(MinSpeed), ClampSpeed(0))
	assert.Equal(t, float32(MaxSpeed), ClampSpeed(10))
	assert.Equal(t, float32(2.5), ClampSpeed(2.5))

	assert.Equal(t, int32(0), ClampIndex(-3, PatternCount))
	assert.Equal(t, int32(PatternCount-1), ClampIndex(99, PatternCount))
	assert.Equal(t, int32(5), ClampIndex(5, PatternCount))

	assert.Equal(t, int32(0), ClampCount(-1, MaxTextures))
	assert.Equal(t, int32(MaxTextures), ClampCount(20, MaxTextures))
	assert.Equal(t, int32(4), ClampCount(4, MaxTextures))
}

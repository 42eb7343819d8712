package uniforms

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPaletteColors is the fixed capacity of a ColorPalette.
const MaxPaletteColors = 6

// ColorPalette is the fixed-capacity palette block shared with the shaders.
// Entries at index >= ColorCount are unspecified and must not be read.
// Size: 112 bytes (std140: vec4 array + int, padded to a vec4 multiple).
type ColorPalette struct {
	Colors     [MaxPaletteColors]mgl32.Vec4 // offset  0: RGBA entries
	ColorCount int32                        // offset 96: number of active entries
	_          [3]int32                     // offset 100: pad to 112 bytes
}

// Size returns the block size in bytes (112).
func (p *ColorPalette) Size() int {
	return int(unsafe.Sizeof(*p))
}

// Marshal serializes the palette into little-endian bytes at the documented
// offsets.
func (p *ColorPalette) Marshal() []byte {
	buf := make([]byte, p.Size())
	for i, c := range p.Colors {
		for j, v := range c {
			binary.LittleEndian.PutUint32(buf[(i*4+j)*4:], math.Float32bits(v))
		}
	}
	binary.LittleEndian.PutUint32(buf[96:], uint32(p.ColorCount))
	return buf
}

// Package palette holds the active color palette between pack changes. The
// render path reads a snapshot every frame; the pack-selection path replaces
// the whole palette at once, so the reader never observes a half-replaced set.
package palette

import (
	"errors"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/jp206100/motion-hub/uniforms"
)

// ErrInvalidPalette is returned when more colors are supplied than the
// palette block can carry. The prior palette is retained.
var ErrInvalidPalette = errors.New("palette: color count exceeds capacity")

// Buffer is the single-writer/single-reader palette holder. Mutation swaps
// an immutable snapshot, so no locking is needed on the read side.
type Buffer struct {
	current atomic.Pointer[uniforms.ColorPalette]
}

// NewBuffer returns an empty palette buffer (ColorCount 0).
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.current.Store(&uniforms.ColorPalette{})
	return b
}

// Set replaces the active palette with the given colors. Fails with
// ErrInvalidPalette if more than uniforms.MaxPaletteColors are supplied;
// the previous palette stays active in that case.
func (b *Buffer) Set(colors []mgl32.Vec4) error {
	if len(colors) > uniforms.MaxPaletteColors {
		return ErrInvalidPalette
	}
	next := &uniforms.ColorPalette{ColorCount: int32(len(colors))}
	copy(next.Colors[:], colors)
	b.current.Store(next)
	return nil
}

// Clear deactivates all entries.
func (b *Buffer) Clear() {
	b.current.Store(&uniforms.ColorPalette{})
}

// Snapshot returns the palette active at the time of the call, by value.
func (b *Buffer) Snapshot() uniforms.ColorPalette {
	return *b.current.Load()
}

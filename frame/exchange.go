package frame

import (
	"sync/atomic"

	"github.com/jp206100/motion-hub/palette"
	"github.com/jp206100/motion-hub/uniforms"
)

// Frame is everything the consumer needs for one tick: the uniform block and
// the palette active when it was built.
type Frame struct {
	Uniforms uniforms.FrameUniforms
	Palette  uniforms.ColorPalette
}

// Exchange hands finished frames from the producer loop to the render
// submission step. Publish swaps a whole immutable snapshot, so the reader
// sees either all of frame N or all of frame N+1, never a mix.
type Exchange struct {
	cur atomic.Pointer[Frame]
}

func NewExchange() *Exchange {
	e := &Exchange{}
	e.cur.Store(&Frame{})
	return e
}

// Publish makes f the frame returned by subsequent Latest calls.
func (e *Exchange) Publish(f Frame) {
	e.cur.Store(&f)
}

// Latest returns the most recently published frame by value.
func (e *Exchange) Latest() Frame {
	return *e.cur.Load()
}

// Pipeline ties the builder, the palette buffer and the exchange together.
type Pipeline struct {
	builder  *Builder
	palette  *palette.Buffer
	exchange *Exchange
}

func NewPipeline(b *Builder, p *palette.Buffer) *Pipeline {
	return &Pipeline{
		builder:  b,
		palette:  p,
		exchange: NewExchange(),
	}
}

// Tick builds and publishes the snapshot for the given time, returning it
// for callers that submit immediately.
func (p *Pipeline) Tick(now float64) Frame {
	f := Frame{
		Uniforms: p.builder.Build(now),
		Palette:  p.palette.Snapshot(),
	}
	p.exchange.Publish(f)
	return f
}

// Latest returns the most recently published frame.
func (p *Pipeline) Latest() Frame {
	return p.exchange.Latest()
}

// Builder exposes the underlying builder for resize and reset plumbing.
func (p *Pipeline) Builder() *Builder {
	return p.builder
}

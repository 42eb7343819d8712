package audio

import "sync"

// history is a fixed-size ring of the most recent samples. The capture
// goroutine writes, the analyzer reads; both touch it briefly under one lock.
type history struct {
	mu  sync.Mutex
	buf []float32
	pos int
}

func newHistory(size int) *history {
	return &history{buf: make([]float32, size)}
}

func (h *history) write(samples []float32) {
	h.mu.Lock()
	for _, s := range samples {
		h.buf[h.pos] = s
		h.pos = (h.pos + 1) % len(h.buf)
	}
	h.mu.Unlock()
}

// recent copies out the latest n samples, oldest first. n must not exceed
// the ring size.
func (h *history) recent(n int) []float32 {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]float32, n)
	size := len(h.buf)
	for i := 0; i < n; i++ {
		out[i] = h.buf[(h.pos-n+i+size)%size]
	}
	return out
}

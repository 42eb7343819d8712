package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = 44100

func newSilentExtractor(t *testing.T) *FeatureExtractor {
	t.Helper()
	e, err := NewFeatureExtractor(NewNullDevice(testRate))
	require.NoError(t, err)
	return e
}

func sineWave(freq float64, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / testRate))
	}
	return out
}

// warm runs several analysis ticks so the temporal smoothing settles.
func warm(e *FeatureExtractor, ticks int) Features {
	var f Features
	for i := 0; i < ticks; i++ {
		f = e.Sample(0)
	}
	return f
}

func TestSilenceYieldsZeroFeatures(t *testing.T) {
	e := newSilentExtractor(t)
	e.Push(make([]float32, historyBufferSize))

	f := warm(e, 5)
	assert.Equal(t, float32(0), f.Level)
	assert.Equal(t, float32(0), f.Bass)
	assert.Equal(t, float32(0), f.Mid)
	assert.Equal(t, float32(0), f.High)
	assert.Equal(t, float32(0), f.Band)
	assert.Equal(t, float32(0), f.Peak)
}

func TestBassSineLandsInBassBand(t *testing.T) {
	e := newSilentExtractor(t)
	e.Push(sineWave(110, historyBufferSize))

	f := warm(e, 10)
	assert.Greater(t, f.Bass, float32(0.5), "110 Hz should read as bass")
	assert.Less(t, f.High, float32(0.1), "110 Hz should not leak into highs")
	assert.Greater(t, f.Level, f.High)
}

func TestHighSineLandsInHighBand(t *testing.T) {
	e := newSilentExtractor(t)
	e.Push(sineWave(8000, historyBufferSize))

	f := warm(e, 10)
	assert.Greater(t, f.High, float32(0.5))
	assert.Less(t, f.Bass, float32(0.1))
}

func TestSelectedBandTracksContent(t *testing.T) {
	e := newSilentExtractor(t)
	// 110 Hz sits inside log band 1 (roughly 47-112 Hz).
	e.Push(sineWave(110, historyBufferSize))
	warm(e, 10)

	inBand := e.Sample(1).Band
	offBand := e.Sample(6).Band
	assert.Greater(t, inBand, float32(0.5))
	assert.Less(t, offBand, inBand)
}

func TestOutOfRangeBandFallsBack(t *testing.T) {
	e := newSilentExtractor(t)
	e.Push(sineWave(440, historyBufferSize))
	warm(e, 5)

	// Invalid selections must not panic and fall back to band zero.
	f := e.Sample(-1)
	g := e.Sample(BandCount + 3)
	assert.InDelta(t, float64(f.Band), float64(g.Band), 0.05)
}

func TestPeakFiresOnOnsetThenDecays(t *testing.T) {
	e := newSilentExtractor(t)
	e.Push(make([]float32, historyBufferSize))
	warm(e, 5)

	e.Push(sineWave(220, historyBufferSize))
	onset := e.Sample(0).Peak
	assert.Greater(t, onset, float32(0.1), "loud onset after silence should spike the peak")

	var settled Features
	for i := 0; i < 60; i++ {
		settled = e.Sample(0)
	}
	assert.Less(t, settled.Peak, onset, "peak should decay once the level is no longer a surprise")
	assert.Greater(t, settled.Smooth, float32(0.5), "smoothed level should catch up to sustained audio")
}

func TestFeaturesStayInUnitRange(t *testing.T) {
	e := newSilentExtractor(t)
	e.Push(sineWave(1000, historyBufferSize))

	for i := 0; i < 20; i++ {
		f := e.Sample(i % BandCount)
		for name, v := range map[string]float32{
			"level": f.Level, "bass": f.Bass, "mid": f.Mid,
			"high": f.High, "band": f.Band, "peak": f.Peak, "smooth": f.Smooth,
		} {
			assert.GreaterOrEqual(t, v, float32(0), name)
			assert.LessOrEqual(t, v, float32(1), name)
		}
	}
}

func TestHistoryRecentOrdering(t *testing.T) {
	h := newHistory(8)
	h.write([]float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	got := h.recent(4)
	assert.Equal(t, []float32{7, 8, 9, 10}, got)
}

package audio

import (
	"fmt"
	"log"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

const (
	// 2048-point FFT gives 1024 frequency bins, plenty of resolution for
	// the coarse band energies the visuals consume.
	fftInputSize      = 2048
	historyBufferSize = fftInputSize * 4

	// BandCount is the number of selectable frequency bands for the
	// user-directed band level.
	BandCount = 8

	// dB window mapped onto [0,1], matching the usual analyzer scaling.
	minDecibels = -100.0
	maxDecibels = -30.0
)

// Band edges in Hz for the three fixed energy bands.
const (
	bassLowHz  = 20
	bassHighHz = 250
	midHighHz  = 2000
	highHighHz = 20000
)

// Features is one analysis tick: everything the frame builder copies into
// the audio fields of the uniform block. All values are nominally in [0,1].
type Features struct {
	Level  float32 // overall energy
	Bass   float32 // 20-250 Hz
	Mid    float32 // 250-2000 Hz
	High   float32 // 2000-20000 Hz
	Band   float32 // user-selected band energy
	Peak   float32 // transient detection, decays between onsets
	Smooth float32 // temporally smoothed overall energy
}

// FeatureExtractor consumes a Device stream and computes Features on demand,
// once per render tick. Sample must be called from a single goroutine (the
// producer loop); the capture side is decoupled through the history ring.
type FeatureExtractor struct {
	device     Device
	sampleRate int
	history    *history
	window     []float64

	// Temporal state, touched only by Sample.
	lastFFT  []float64
	smoothed float64
	peak     float64
}

// Smoothing and peak tuning. The FFT smoothing factor matches the analyzer
// behavior the shaders were authored against.
const (
	fftSmoothing = 0.8
	levelSmooth  = 0.92
	peakDecay    = 0.85
	peakGain     = 4.0
)

// NewFeatureExtractor starts the device and begins filling the history ring.
func NewFeatureExtractor(device Device) (*FeatureExtractor, error) {
	e := &FeatureExtractor{
		device:     device,
		sampleRate: device.SampleRate(),
		history:    newHistory(historyBufferSize),
		window:     blackmanWindow(fftInputSize),
		lastFFT:    make([]float64, fftInputSize/2),
	}

	audioChan, err := device.Start()
	if err != nil {
		return nil, fmt.Errorf("could not start audio device: %w", err)
	}

	go e.listen(audioChan)
	return e, nil
}

// listen runs in a dedicated goroutine, draining the device channel into
// the history ring.
func (e *FeatureExtractor) listen(audioChan <-chan []float32) {
	for samples := range audioChan {
		e.history.write(samples)
	}
	log.Printf("Audio channel closed. Extractor listener exiting.")
}

// Push injects samples directly into the history ring. The listener uses the
// same path; it also lets tests drive the analyzer without a live device.
func (e *FeatureExtractor) Push(samples []float32) {
	e.history.write(samples)
}

// Sample analyzes the most recent window and returns one feature tick.
// band selects which of the BandCount log-spaced bands feeds Band.
func (e *FeatureExtractor) Sample(band int) Features {
	samples := e.history.recent(fftInputSize)
	samples64 := make([]float64, fftInputSize)
	for i, s := range samples {
		samples64[i] = float64(s) * e.window[i]
	}

	fftResult := fft.FFTReal(samples64)

	// Magnitude spectrum with temporal smoothing, normalized by 2/N.
	bins := fftInputSize / 2
	for i := 0; i < bins; i++ {
		re := real(fftResult[i])
		im := imag(fftResult[i])
		magnitude := math.Sqrt(re*re+im*im) * (2.0 / float64(fftInputSize))
		e.lastFFT[i] = (fftSmoothing * e.lastFFT[i]) + ((1.0 - fftSmoothing) * magnitude)
	}

	level := e.bandEnergy(bassLowHz, highHighHz)

	// Transient detection against the pre-update smoothed level: a jump
	// above the running average registers as a peak, which then decays.
	transient := math.Max(0, level-e.smoothed) * peakGain
	e.peak = math.Max(transient, e.peak*peakDecay)
	if e.peak > 1 {
		e.peak = 1
	}
	e.smoothed = (levelSmooth * e.smoothed) + ((1.0 - levelSmooth) * level)

	if band < 0 || band >= BandCount {
		band = 0
	}
	lo, hi := bandRange(band)

	return Features{
		Level:  float32(level),
		Bass:   float32(e.bandEnergy(bassLowHz, bassHighHz)),
		Mid:    float32(e.bandEnergy(bassHighHz, midHighHz)),
		High:   float32(e.bandEnergy(midHighHz, highHighHz)),
		Band:   float32(e.bandEnergy(lo, hi)),
		Peak:   float32(e.peak),
		Smooth: float32(e.smoothed),
	}
}

// Stop shuts down the underlying device.
func (e *FeatureExtractor) Stop() error {
	if e.device != nil {
		return e.device.Stop()
	}
	return nil
}

func (e *FeatureExtractor) SampleRate() int {
	return e.sampleRate
}

// bandEnergy averages the smoothed magnitudes between two frequencies and
// maps the result through the dB window onto [0,1].
func (e *FeatureExtractor) bandEnergy(loHz, hiHz float64) float64 {
	binHz := float64(e.sampleRate) / float64(fftInputSize)
	loBin := int(loHz / binHz)
	hiBin := int(hiHz / binHz)
	if loBin < 1 {
		loBin = 1 // skip DC
	}
	if hiBin > len(e.lastFFT)-1 {
		hiBin = len(e.lastFFT) - 1
	}
	if hiBin < loBin {
		return 0
	}

	sum := 0.0
	for i := loBin; i <= hiBin; i++ {
		sum += e.lastFFT[i]
	}
	avg := sum / float64(hiBin-loBin+1)

	db := 20 * math.Log10(avg+1e-9)
	if db < minDecibels {
		return 0
	}
	if db > maxDecibels {
		return 1
	}
	return (db - minDecibels) / (maxDecibels - minDecibels)
}

// bandRange returns the Hz bounds of one of the BandCount log-spaced bands
// covering 20 Hz to 20 kHz.
func bandRange(band int) (lo, hi float64) {
	// 20 * 10^(3i/8): three decades split into eight equal log steps.
	lo = bassLowHz * math.Pow(10, 3*float64(band)/BandCount)
	hi = bassLowHz * math.Pow(10, 3*float64(band+1)/BandCount)
	return lo, hi
}

// blackmanWindow generates a Blackman window for the FFT input.
func blackmanWindow(size int) []float64 {
	window := make([]float64, size)
	a0 := 0.42
	a1 := 0.5
	a2 := 0.08
	invSize := 1.0 / float64(size-1)
	for i := range window {
		t := float64(i) * invSize
		window[i] = a0 - (a1 * math.Cos(2*math.Pi*t)) + (a2 * math.Cos(4*math.Pi*t))
	}
	return window
}

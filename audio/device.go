// Package audio turns a raw sample stream into the per-frame feature set the
// visuals react to: band levels, transient peaks and smoothed energy.
package audio

// We'll be using portaudio for microphone input handling.
// macos:	brew install portaudio
// debian:	sudo apt-get install portaudio19-dev
// windows:	pacman -S mingw-w64-x86_64-portaudio

// Device is a producer of mono float32 sample chunks.
type Device interface {
	// Start begins capture and returns a receive-only channel of chunks.
	Start() (<-chan []float32, error)
	// Stop terminates the stream and closes the channel.
	Stop() error
	// SampleRate returns the sample rate of the device.
	SampleRate() int
}

// NullDevice produces silence. Used as the fallback when no capture device
// can be opened, so the renderer keeps running without audio reactivity.
type NullDevice struct {
	rate int
}

func NewNullDevice(sampleRate int) *NullDevice {
	return &NullDevice{rate: sampleRate}
}

// Start returns a nil channel, which blocks forever on receive and so
// behaves as silence.
func (d *NullDevice) Start() (<-chan []float32, error) {
	return nil, nil
}

func (d *NullDevice) Stop() error { return nil }

func (d *NullDevice) SampleRate() int { return d.rate }

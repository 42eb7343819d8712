package options

// Options collects the command-line configuration for the renderer.
type Options struct {
	Width  *int
	Height *int

	LayoutVersion *string // "v1" (legacy compact) or "v2" (expanded)

	AudioInputFile *string // decode this file instead of capturing the mic
	UseMic         *bool
	SampleRate     *int
	FFMPEGPath     *string

	Intensity     *float64
	GlitchAmount  *float64
	Speed         *float64
	ColorShift    *float64
	PulseStrength *float64
	Monochrome    *bool
	Pattern       *int
	TextureCount  *int
	FreqBand      *int
}

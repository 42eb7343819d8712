package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jp206100/motion-hub/audio"
	"github.com/jp206100/motion-hub/controls"
	"github.com/jp206100/motion-hub/frame"
	"github.com/jp206100/motion-hub/glcontext"
	"github.com/jp206100/motion-hub/glitch"
	"github.com/jp206100/motion-hub/options"
	"github.com/jp206100/motion-hub/palette"
	"github.com/jp206100/motion-hub/renderer"
	"github.com/jp206100/motion-hub/uniforms"
)

// Built-in inspiration palettes, cycled with the P key until a pack loader
// lands.
var packPalettes = [][]mgl32.Vec4{
	{{0.98, 0.29, 0.42, 1}, {1.0, 0.76, 0.33, 1}, {0.22, 0.77, 0.73, 1}, {0.16, 0.24, 0.44, 1}},
	{{0.10, 0.09, 0.20, 1}, {0.45, 0.17, 0.60, 1}, {0.91, 0.31, 0.69, 1}, {0.99, 0.76, 0.86, 1}, {0.56, 0.88, 0.97, 1}},
	{{0.05, 0.35, 0.30, 1}, {0.17, 0.64, 0.47, 1}, {0.67, 0.88, 0.61, 1}},
}

func init() {
	runtime.LockOSThread()
}

func pickDevice(opts *options.Options) audio.Device {
	if *opts.AudioInputFile != "" {
		dev, err := audio.NewFileDevice(*opts.AudioInputFile, *opts.FFMPEGPath, *opts.SampleRate)
		if err == nil {
			log.Printf("Audio input: file %s", *opts.AudioInputFile)
			return dev
		}
		log.Printf("Could not open audio file: %v. Falling back.", err)
	}
	if *opts.UseMic {
		mic, err := audio.NewMicrophone(*opts.SampleRate)
		if err == nil {
			log.Println("Audio input: default microphone")
			return mic
		}
		log.Printf("Could not initialize microphone: %v. Using silent fallback.", err)
	}
	return audio.NewNullDevice(*opts.SampleRate)
}

func parseVersion(s string) (uniforms.Version, error) {
	switch s {
	case "v1":
		return uniforms.V1, nil
	case "v2":
		return uniforms.V2, nil
	}
	return 0, fmt.Errorf("unknown layout version %q (want v1 or v2)", s)
}

func main() {
	opts := &options.Options{
		Width:          flag.Int("width", 1280, "Window width"),
		Height:         flag.Int("height", 720, "Window height"),
		LayoutVersion:  flag.String("layout", "v2", "Uniform layout version (v1 or v2)"),
		AudioInputFile: flag.String("input", "", "Audio file to decode instead of the microphone"),
		UseMic:         flag.Bool("mic", true, "Capture the default microphone"),
		SampleRate:     flag.Int("rate", 44100, "Audio sample rate"),
		FFMPEGPath:     flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Intensity:      flag.Float64("intensity", 0.8, "Visual intensity (0-1)"),
		GlitchAmount:   flag.Float64("glitch", 0.2, "Glitch amount (0-1)"),
		Speed:          flag.Float64("speed", 1, "Speed multiplier (1-4)"),
		ColorShift:     flag.Float64("colorshift", 0, "Color shift (0-1)"),
		PulseStrength:  flag.Float64("pulse", 0.5, "Audio pulse strength (0-1)"),
		Monochrome:     flag.Bool("mono", false, "Start in monochrome"),
		Pattern:        flag.Int("pattern", 0, "Initial procedural pattern (0-7)"),
		TextureCount:   flag.Int("textures", 0, "Active inspiration texture count (0-8)"),
		FreqBand:       flag.Int("band", 2, "Analyzer band feeding audioFreqBand (0-7)"),
	}
	flag.Parse()

	version, err := parseVersion(*opts.LayoutVersion)
	if err != nil {
		log.Fatalf("Bad flags: %v", err)
	}

	ctrl := controls.NewState()
	ctrl.SetIntensity(float32(*opts.Intensity))
	ctrl.SetGlitchAmount(float32(*opts.GlitchAmount))
	ctrl.SetSpeed(float32(*opts.Speed))
	ctrl.SetColorShift(float32(*opts.ColorShift))
	ctrl.SetPulseStrength(float32(*opts.PulseStrength))
	ctrl.SetMonochrome(*opts.Monochrome)
	ctrl.SetActivePattern(int32(*opts.Pattern))
	ctrl.SetTextureCount(int32(*opts.TextureCount))
	ctrl.SetFreqBand(*opts.FreqBand)

	extractor, err := audio.NewFeatureExtractor(pickDevice(opts))
	if err != nil {
		log.Fatalf("Failed to start audio analysis: %v", err)
	}
	defer extractor.Stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	timer := glitch.NewTimer(glitch.DefaultPolicy(), rng)
	builder := frame.NewBuilder(ctrl, extractor, timer, rng)

	pal := palette.NewBuffer()
	if err := pal.Set(packPalettes[0]); err != nil {
		log.Fatalf("Failed to set initial palette: %v", err)
	}

	pipeline := frame.NewPipeline(builder, pal)

	if err := glcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glcontext.TerminateGraphics()

	ctx, err := glcontext.New(*opts.Width, *opts.Height, "motion-hub")
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()
	ctx.MakeCurrent()

	r, err := renderer.NewRenderer(version)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	ctx.RegisterKeyCallback(glfw.KeyR, func() {
		log.Println("Visual reset")
		builder.RequestReset()
	})
	ctx.RegisterKeyCallback(glfw.KeySpace, ctrl.CyclePattern)
	ctx.RegisterKeyCallback(glfw.KeyM, ctrl.ToggleMonochrome)
	palIndex := 0
	ctx.RegisterKeyCallback(glfw.KeyP, func() {
		palIndex = (palIndex + 1) % len(packPalettes)
		if err := pal.Set(packPalettes[palIndex]); err != nil {
			log.Printf("Palette rejected: %v", err)
		}
	})
	for i := 0; i < uniforms.PatternCount; i++ {
		pattern := int32(i)
		ctx.RegisterKeyCallback(glfw.Key0+glfw.Key(i), func() {
			ctrl.SetActivePattern(pattern)
		})
	}

	log.Printf("Starting render loop (layout %s)...", *opts.LayoutVersion)
	for !ctx.ShouldClose() {
		width, height := ctx.GetFramebufferSize()
		builder.SetResolution(width, height)

		f := pipeline.Tick(ctx.Time())
		r.Draw(f, width, height)

		ctx.EndFrame()
	}
}

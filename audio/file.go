package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"os/exec"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const fileChunkSamples = 1024

// FileDevice decodes an audio file with FFmpeg and streams it as mono
// float32 chunks at the native playback rate, so the visuals track the
// music in real time.
type FileDevice struct {
	path       string
	ffmpegPath string
	sampleRate int

	cmd        *exec.Cmd
	pipeReader io.ReadCloser
	audioChan  chan []float32
}

// NewFileDevice creates a device reading from the given file. ffmpegPath may
// be empty to use the ffmpeg binary on PATH.
func NewFileDevice(path, ffmpegPath string, sampleRate int) (*FileDevice, error) {
	if path == "" {
		return nil, fmt.Errorf("no audio input file specified")
	}
	return &FileDevice{
		path:       path,
		ffmpegPath: ffmpegPath,
		sampleRate: sampleRate,
	}, nil
}

// Start launches the FFmpeg decoder and begins streaming chunks.
func (d *FileDevice) Start() (<-chan []float32, error) {
	pipeReader, pipeWriter := io.Pipe()
	d.pipeReader = pipeReader
	d.audioChan = make(chan []float32, 16)

	// "-re" paces the decode at playback speed; without it the whole file
	// would arrive at once and the reactivity would be meaningless.
	ffmpegCmd := ffmpeg.Input(d.path, ffmpeg.KwArgs{"re": ""}).
		Output("pipe:", ffmpeg.KwArgs{
			"f":  "f32le",
			"ar": fmt.Sprintf("%d", d.sampleRate),
			"ac": "1",
		}).WithOutput(pipeWriter).ErrorToStdOut()

	if d.ffmpegPath != "" {
		ffmpegCmd.SetFfmpegPath(d.ffmpegPath)
	}

	d.cmd = ffmpegCmd.Compile()

	go func() {
		err := d.cmd.Run()
		if err != nil {
			log.Printf("FFmpeg file input finished with error: %v", err)
		}
		pipeWriter.Close()
	}()

	go d.readLoop()

	return d.audioChan, nil
}

// readLoop converts the raw f32le byte stream into sample chunks.
func (d *FileDevice) readLoop() {
	defer close(d.audioChan)

	raw := make([]byte, fileChunkSamples*4)
	for {
		n, err := io.ReadFull(d.pipeReader, raw)
		if n >= 4 {
			samples := make([]float32, n/4)
			for i := range samples {
				bits := binary.LittleEndian.Uint32(raw[i*4:])
				samples[i] = math.Float32frombits(bits)
			}
			select {
			case d.audioChan <- samples:
			default:
				// Drop rather than stall the decoder.
			}
		}
		if err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				log.Printf("Error reading from ffmpeg pipe: %v", err)
			}
			return
		}
	}
}

// Stop terminates the decode.
func (d *FileDevice) Stop() error {
	if d.pipeReader != nil {
		d.pipeReader.Close()
	}
	if d.cmd != nil && d.cmd.Process != nil {
		return d.cmd.Process.Kill()
	}
	return nil
}

func (d *FileDevice) SampleRate() int {
	return d.sampleRate
}

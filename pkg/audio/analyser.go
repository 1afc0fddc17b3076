package audio

import (
	"encoding/binary"
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	DefaultFFTSize     = 64
	DefaultSmoothing   = 0.5
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
)

// Analyser turns the latest FFTSize samples of a stream into a magnitude
// spectrum scaled onto 0..255 per frequency bin. Each call of
// ByteFrequencyData blends the current spectrum into the previous one with
// the smoothing time constant.
type Analyser struct {
	fftSize     int
	smoothing   float64
	minDecibels float64
	maxDecibels float64

	window   []float64
	samples  []float64
	offset   int
	smoothed []float64

	mutex sync.Mutex
}

func NewAnalyser() *Analyser {
	return NewAnalyserWith(DefaultFFTSize, DefaultSmoothing)
}

func NewAnalyserWith(fftSize int, smoothing float64) *Analyser {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		panic("fft size must be a power of two >= 2")
	}
	return &Analyser{
		fftSize:     fftSize,
		smoothing:   math.Max(0, math.Min(1, smoothing)),
		minDecibels: DefaultMinDecibels,
		maxDecibels: DefaultMaxDecibels,
		window:      window.Blackman(fftSize),
		samples:     make([]float64, fftSize),
		smoothed:    make([]float64, fftSize/2),
	}
}

func (this *Analyser) FrequencyBinCount() int {
	return this.fftSize / 2
}

// Write appends samples in the range -1..1.
func (this *Analyser) Write(samples []float64) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	for _, v := range samples {
		this.samples[this.offset] = v
		this.offset = (this.offset + 1) % this.fftSize
	}
}

// WritePCM16 appends interleaved signed 16 bit little endian frames; only
// the first of the given channels is used.
func (this *Analyser) WritePCM16(p []byte, channels int) {
	if channels < 1 {
		channels = 1
	}
	stride := 2 * channels
	buf := make([]float64, 0, len(p)/stride)
	for i := 0; i+1 < len(p); i += stride {
		buf = append(buf, float64(int16(binary.LittleEndian.Uint16(p[i:])))/32768.0)
	}
	this.Write(buf)
}

func (this *Analyser) ByteFrequencyData() []uint8 {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	frame := make([]float64, this.fftSize)
	for i := range frame {
		frame[i] = this.samples[(this.offset+i)%this.fftSize] * this.window[i]
	}
	spectrum := fft.FFTReal(frame)

	result := make([]uint8, len(this.smoothed))
	scale := 255 / (this.maxDecibels - this.minDecibels)
	for k := range this.smoothed {
		magnitude := cmplx.Abs(spectrum[k]) / float64(this.fftSize)
		this.smoothed[k] = this.smoothing*this.smoothed[k] + (1-this.smoothing)*magnitude

		v := scale * (20*math.Log10(this.smoothed[k]) - this.minDecibels)
		switch {
		case math.IsNaN(v) || v <= 0:
			result[k] = 0
		case v >= 255:
			result[k] = 255
		default:
			result[k] = uint8(v)
		}
	}
	return result
}

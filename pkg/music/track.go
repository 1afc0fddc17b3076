package music

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-audio/wav"
)

// Track is a fully decoded piece of music as interleaved signed 16 bit
// samples.
type Track struct {
	SampleRate uint32
	Channels   uint32
	Samples    []int16

	position int
	mutex    sync.Mutex
}

func LoadTrack(r io.ReadSeeker) (*Track, error) {
	decoder := wav.NewDecoder(r)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, errors.New("input is not a valid WAV audio file")
	}
	if decoder.NumChans != 1 && decoder.NumChans != 2 {
		return nil, fmt.Errorf("unsupported number of channels: %d", decoder.NumChans)
	}
	shift, err := shiftFor(int(decoder.BitDepth))
	if err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("cannot decode WAV audio: %w", err)
	}
	if len(buf.Data) == 0 {
		return nil, errors.New("WAV audio does not contain any sample")
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		if decoder.BitDepth == 8 {
			// 8 bit WAV samples are unsigned.
			v -= 128
		}
		if shift >= 0 {
			samples[i] = int16(v >> shift)
		} else {
			samples[i] = int16(v << -shift)
		}
	}

	return &Track{
		SampleRate: decoder.SampleRate,
		Channels:   uint32(decoder.NumChans),
		Samples:    samples,
	}, nil
}

func LoadTrackFile(fn string) (*Track, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("cannot open music file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	result, err := LoadTrack(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load music file %q: %w", fn, err)
	}
	return result, nil
}

func shiftFor(bitDepth int) (int, error) {
	switch bitDepth {
	case 8:
		return -8, nil
	case 16:
		return 0, nil
	case 24:
		return 8, nil
	case 32:
		return 16, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// Fill writes the next samples as little endian bytes into out and starts
// over at the beginning once the end was reached.
func (this *Track) Fill(out []byte) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	for i := 0; i+1 < len(out); i += 2 {
		binary.LittleEndian.PutUint16(out[i:], uint16(this.Samples[this.position]))
		this.position++
		if this.position >= len(this.Samples) {
			this.position = 0
		}
	}
}

func (this *Track) Rewind() {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.position = 0
}

package audio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
)

// PlaybackFormat describes signed 16 bit interleaved frames.
type PlaybackFormat struct {
	SampleRate uint32
	Channels   uint32
}

// FillFunc has to fill out completely with interleaved signed 16 bit
// little endian frames.
type FillFunc func(out []byte)

type Playback struct {
	handle *malgo.Device
	mutex  sync.Mutex
}

// OpenPlayback creates a stopped playback device on the default output.
func (this *Stack) OpenPlayback(format PlaybackFormat, fill FillFunc) (*Playback, error) {
	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = format.Channels
	config.SampleRate = format.SampleRate
	config.Alsa.NoMMap = 1

	device, err := this.initDevice(config, malgo.DeviceCallbacks{
		Data: func(output, _ []byte, _ uint32) {
			fill(output)
		},
	})
	if err != nil {
		return nil, acquisitionFailed("playback", err)
	}
	return &Playback{handle: device}, nil
}

func (this *Playback) Start() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.handle == nil {
		return fmt.Errorf("playback closed")
	}
	return this.handle.Start()
}

func (this *Playback) Stop() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.handle == nil {
		return nil
	}
	return this.handle.Stop()
}

func (this *Playback) Close() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.handle == nil {
		return nil
	}
	err := this.handle.Stop()
	this.handle.Uninit()
	this.handle = nil
	return err
}

package audio

import (
	"context"
	"fmt"
	"sync"

	log "github.com/echocat/slf4g"
	"github.com/gen2brain/malgo"
)

const (
	DefaultCaptureSampleRate = 48000
	defaultCaptureChannels   = 1
)

// Microphone acquires a capture device of a Stack and analyses what it
// records.
type Microphone struct {
	Stack *Stack
	// Device selects the capture device by (part of) its name. Empty
	// selects the default device.
	Device     string
	SampleRate uint32
}

func (this *Microphone) Open(ctx context.Context) (*Capture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if this.Stack == nil || !this.Stack.IsInitialized() {
		return nil, &AcquisitionError{Kind: ErrDeviceUnavailable, Device: this.Device, Cause: fmt.Errorf("audio context not initialized")}
	}

	config := malgo.DefaultDeviceConfig(malgo.Capture)
	config.Capture.Format = malgo.FormatS16
	config.Capture.Channels = defaultCaptureChannels
	config.SampleRate = this.SampleRate
	if config.SampleRate == 0 {
		config.SampleRate = DefaultCaptureSampleRate
	}
	config.Alsa.NoMMap = 1

	if this.Device != "" {
		devices, err := this.Stack.FindDevices()
		if err != nil {
			return nil, acquisitionFailed(this.Device, err)
		}
		device, ok := devices.Find(this.Device)
		if !ok {
			return nil, &AcquisitionError{Kind: ErrDeviceUnavailable, Device: this.Device, Cause: fmt.Errorf("no capture device matches; available: %v", devices)}
		}
		config.Capture.DeviceID = device.info.ID.Pointer()
	}

	result := &Capture{
		analyser: NewAnalyser(),
		device:   this.Device,
	}
	device, err := this.Stack.initDevice(config, malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			result.analyser.WritePCM16(input, defaultCaptureChannels)
		},
	})
	if err != nil {
		return nil, acquisitionFailed(this.Device, err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return nil, acquisitionFailed(this.Device, err)
	}
	result.handle = device

	log.With("device", result.Name()).
		With("sampleRate", device.SampleRate()).
		Info("Microphone acquired.")
	return result, nil
}

// Capture is a running capture device. It has to be closed to release the
// device.
type Capture struct {
	analyser *Analyser
	device   string
	handle   *malgo.Device
	mutex    sync.Mutex
}

func (this *Capture) Name() string {
	if this.device == "" {
		return "default"
	}
	return this.device
}

// Snapshot returns the current byte frequency data.
func (this *Capture) Snapshot() []uint8 {
	return this.analyser.ByteFrequencyData()
}

func (this *Capture) Close() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.handle == nil {
		return nil
	}
	defer func() {
		this.handle.Uninit()
		this.handle = nil
	}()
	if err := this.handle.Stop(); err != nil {
		return fmt.Errorf("cannot stop capture device %q: %w", this.Name(), err)
	}
	log.With("device", this.Name()).
		Info("Microphone released.")
	return nil
}

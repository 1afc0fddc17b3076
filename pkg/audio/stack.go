package audio

import (
	"fmt"
	"strings"
	"sync"

	log "github.com/echocat/slf4g"
	"github.com/gen2brain/malgo"

	"github.com/blaubaer/party-deck/pkg/common"
)

// Stack owns the audio context every capture and playback device is opened
// with.
type Stack struct {
	Backend Backend

	context *malgo.AllocatedContext
	mutex   sync.RWMutex
}

func (this *Stack) SetupConfiguration(using common.FlagHolder) {
	using.Flag("audio.backend", "Audio backend to use. Possible values: "+AllBackends.String()).
		Default(BackendAuto.String()).
		Envar("PD_AUDIO_BACKEND").
		SetValue(&this.Backend)
}

func (this *Stack) Initialize() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.context != nil {
		return nil
	}

	ctx, err := malgo.InitContext(this.Backend.malgo(), malgo.ContextConfig{}, func(message string) {
		log.Debug(strings.TrimSpace(message))
	})
	if err != nil {
		return fmt.Errorf("cannot initialize audio context: %w", err)
	}

	this.context = ctx
	log.With("backend", this.Backend).
		Debug("Audio context initialized.")
	return nil
}

func (this *Stack) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.context == nil {
		return nil
	}
	defer func() {
		this.context.Free()
		this.context = nil
	}()

	if err := this.context.Uninit(); err != nil {
		return fmt.Errorf("cannot dispose audio context: %w", err)
	}
	return nil
}

func (this *Stack) IsInitialized() bool {
	this.mutex.RLock()
	defer this.mutex.RUnlock()
	return this.context != nil
}

func (this *Stack) FindDevices() (Devices, error) {
	return this.findDevices(malgo.Capture)
}

func (this *Stack) findDevices(t malgo.DeviceType) (Devices, error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if this.context == nil {
		return nil, fmt.Errorf("not initialized")
	}

	infos, err := this.context.Devices(t)
	if err != nil {
		return nil, fmt.Errorf("cannot enumerate audio devices: %w", err)
	}
	return devicesOf(infos), nil
}

// initDevice creates (but does not start) a device within the context of
// this stack.
func (this *Stack) initDevice(config malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) (*malgo.Device, error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if this.context == nil {
		return nil, &AcquisitionError{Kind: ErrDeviceUnavailable, Cause: fmt.Errorf("audio context not initialized")}
	}
	return malgo.InitDevice(this.context.Context, config, callbacks)
}

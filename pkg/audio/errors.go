package audio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrDeviceUnavailable = errors.New("device unavailable")
)

// AcquisitionError is returned if a device cannot be opened. It matches
// ErrPermissionDenied or ErrDeviceUnavailable with errors.Is.
type AcquisitionError struct {
	Kind   error
	Device string
	Cause  error
}

func (this *AcquisitionError) Error() string {
	device := this.Device
	if device == "" {
		device = "default device"
	}
	if this.Cause == nil {
		return fmt.Sprintf("cannot acquire %s: %v", device, this.Kind)
	}
	return fmt.Sprintf("cannot acquire %s: %v: %v", device, this.Kind, this.Cause)
}

func (this *AcquisitionError) Unwrap() []error {
	if this.Cause == nil {
		return []error{this.Kind}
	}
	return []error{this.Kind, this.Cause}
}

func acquisitionFailed(device string, cause error) *AcquisitionError {
	return &AcquisitionError{classify(cause), device, cause}
}

// classify maps errors reported by the audio backend onto our two kinds.
// miniaudio only reports result codes, so their message is all we have.
func classify(cause error) error {
	if cause == nil {
		return ErrDeviceUnavailable
	}
	if errors.Is(cause, ErrPermissionDenied) {
		return ErrPermissionDenied
	}
	msg := strings.ToLower(cause.Error())
	if strings.Contains(msg, "denied") || strings.Contains(msg, "permission") {
		return ErrPermissionDenied
	}
	return ErrDeviceUnavailable
}

package audio

import (
	"fmt"
	"strings"

	"github.com/gen2brain/malgo"
)

type Device struct {
	Name    string `json:"name" yaml:"name"`
	ID      string `json:"id" yaml:"id"`
	Default bool   `json:"default,omitempty" yaml:"default,omitempty"`

	info malgo.DeviceInfo
}

func (this Device) String() string {
	if this.Default {
		return fmt.Sprintf("%s (default)", this.Name)
	}
	return this.Name
}

type Devices []Device

func (this Devices) IsZero() bool {
	return len(this) <= 0
}

func (this Devices) HasContent() bool {
	return !this.IsZero()
}

// Find returns the device whose name contains the given (case-insensitive)
// pattern. An empty pattern selects the default device.
func (this Devices) Find(pattern string) (Device, bool) {
	if pattern == "" {
		for _, v := range this {
			if v.Default {
				return v, true
			}
		}
		return Device{}, false
	}
	pattern = strings.ToLower(pattern)
	for _, v := range this {
		if strings.Contains(strings.ToLower(v.Name), pattern) {
			return v, true
		}
	}
	return Device{}, false
}

func (this Devices) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Devices) String() string {
	return strings.Join(this.Strings(), ", ")
}

func devicesOf(infos []malgo.DeviceInfo) Devices {
	result := make(Devices, len(infos))
	for i, info := range infos {
		result[i] = Device{
			Name:    info.Name(),
			ID:      info.ID.String(),
			Default: info.IsDefault != 0,
			info:    info,
		}
	}
	return result
}

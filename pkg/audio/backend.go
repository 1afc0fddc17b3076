package audio

import (
	"fmt"
	"strings"

	"github.com/gen2brain/malgo"
)

type Backend uint8

const (
	BackendAuto = Backend(iota)
	BackendAlsa
	BackendPulseaudio
	BackendWasapi
	BackendCoreaudio
	BackendNull
)

var (
	AllBackends = Backends{
		BackendAuto,
		BackendAlsa,
		BackendPulseaudio,
		BackendWasapi,
		BackendCoreaudio,
		BackendNull,
	}
)

func (this *Backend) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "auto", "":
		*this = BackendAuto
	case "alsa":
		*this = BackendAlsa
	case "pulseaudio", "pulse":
		*this = BackendPulseaudio
	case "wasapi":
		*this = BackendWasapi
	case "coreaudio":
		*this = BackendCoreaudio
	case "null":
		*this = BackendNull
	default:
		return fmt.Errorf("illegal-audio-backend: %s", plain)
	}
	return nil
}

func (this Backend) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-audio-backend-%d", this)
	}
	return string(v)
}

func (this Backend) MarshalText() (text []byte, err error) {
	switch this {
	case BackendAuto:
		return []byte("auto"), nil
	case BackendAlsa:
		return []byte("alsa"), nil
	case BackendPulseaudio:
		return []byte("pulseaudio"), nil
	case BackendWasapi:
		return []byte("wasapi"), nil
	case BackendCoreaudio:
		return []byte("coreaudio"), nil
	case BackendNull:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("illegal audio backend: %d", this)
	}
}

func (this *Backend) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

// malgo returns nil for auto, which lets miniaudio pick the best backend of
// the current platform.
func (this Backend) malgo() []malgo.Backend {
	switch this {
	case BackendAlsa:
		return []malgo.Backend{malgo.BackendAlsa}
	case BackendPulseaudio:
		return []malgo.Backend{malgo.BackendPulseaudio}
	case BackendWasapi:
		return []malgo.Backend{malgo.BackendWasapi}
	case BackendCoreaudio:
		return []malgo.Backend{malgo.BackendCoreaudio}
	case BackendNull:
		return []malgo.Backend{malgo.BackendNull}
	default:
		return nil
	}
}

type Backends []Backend

func (this Backends) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Backends) String() string {
	return strings.Join(this.Strings(), ",")
}

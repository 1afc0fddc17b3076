package blow

import (
	"fmt"
	"strings"
)

type State uint8

const (
	StateIdle      = State(0)
	StateListening = State(1)
)

var (
	AllStates = States{
		StateIdle,
		StateListening,
	}
)

func (this *State) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "idle":
		*this = StateIdle
		return nil
	case "listening":
		*this = StateListening
		return nil
	default:
		return fmt.Errorf("illegal-detector-state: %s", plain)
	}
}

func (this State) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-detector-state-%d", this)
	}
	return string(v)
}

func (this State) MarshalText() (text []byte, err error) {
	switch this {
	case StateIdle:
		return []byte("idle"), nil
	case StateListening:
		return []byte("listening"), nil
	default:
		return nil, fmt.Errorf("illegal detector state: %d", this)
	}
}

func (this *State) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type States []State

func (this States) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this States) String() string {
	return strings.Join(this.Strings(), ",")
}

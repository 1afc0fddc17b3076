package app

import (
	"fmt"
	"strings"
)

type DecorationMode uint8

const (
	// DecorationModeDefault means nothing was configured, which acts like
	// DecorationModeAll.
	DecorationModeDefault = DecorationMode(0)
	DecorationModeAll     = DecorationMode(1)
	DecorationModeCalm    = DecorationMode(2)
	DecorationModeNone    = DecorationMode(3)
)

var (
	AllDecorationModes = DecorationModes{
		DecorationModeAll,
		DecorationModeCalm,
		DecorationModeNone,
	}
)

func (this *DecorationMode) Set(plain string) error {
	switch strings.ToLower(plain) {
	case "", "default":
		*this = DecorationModeDefault
	case "all", "on":
		*this = DecorationModeAll
	case "calm", "balloons":
		*this = DecorationModeCalm
	case "none", "off":
		*this = DecorationModeNone
	default:
		return fmt.Errorf("illegal-decoration-mode: %s", plain)
	}
	return nil
}

func (this DecorationMode) String() string {
	switch this {
	case DecorationModeDefault:
		return "default"
	case DecorationModeAll:
		return "all"
	case DecorationModeCalm:
		return "calm"
	case DecorationModeNone:
		return "none"
	default:
		return fmt.Sprintf("illegal-decoration-mode-%d", this)
	}
}

func (this DecorationMode) MarshalText() ([]byte, error) {
	switch this {
	case DecorationModeDefault, DecorationModeAll, DecorationModeCalm, DecorationModeNone:
		return []byte(this.String()), nil
	default:
		return nil, fmt.Errorf("illegal-decoration-mode: %d", this)
	}
}

func (this *DecorationMode) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type DecorationModes []DecorationMode

func (this DecorationModes) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this DecorationModes) String() string {
	return strings.Join(this.Strings(), ", ")
}

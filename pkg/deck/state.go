package deck

import (
	"fmt"
	"strings"
)

type SlideState uint8

const (
	SlideStateDefault = SlideState(0)
	SlideStateActive  = SlideState(1)
	// SlideStatePrior marks slides before the active one; the renderer uses it
	// for the direction of the transition.
	SlideStatePrior = SlideState(2)
)

var (
	AllSlideStates = SlideStates{
		SlideStateDefault,
		SlideStateActive,
		SlideStatePrior,
	}
)

func (this *SlideState) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "default", "":
		*this = SlideStateDefault
		return nil
	case "active":
		*this = SlideStateActive
		return nil
	case "prior", "prev":
		*this = SlideStatePrior
		return nil
	default:
		return fmt.Errorf("illegal-slide-state: %s", plain)
	}
}

func (this SlideState) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-slide-state-%d", this)
	}
	return string(v)
}

func (this SlideState) MarshalText() (text []byte, err error) {
	switch this {
	case SlideStateDefault:
		return []byte("default"), nil
	case SlideStateActive:
		return []byte("active"), nil
	case SlideStatePrior:
		return []byte("prior"), nil
	default:
		return nil, fmt.Errorf("illegal slide state: %d", this)
	}
}

func (this *SlideState) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type SlideStates []SlideState

func (this SlideStates) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this SlideStates) String() string {
	return strings.Join(this.Strings(), ",")
}

// CountOf returns how many slides are in the given state.
func (this SlideStates) CountOf(state SlideState) (result int) {
	for _, v := range this {
		if v == state {
			result++
		}
	}
	return result
}

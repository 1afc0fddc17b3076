package effect

import (
	"fmt"
	"math"
	"time"
)

type Kind uint8

const (
	KindHeart    = Kind(0)
	KindSparkle  = Kind(1)
	KindBalloon  = Kind(2)
	KindConfetti = Kind(3)
)

func (this Kind) String() string {
	switch this {
	case KindHeart:
		return "heart"
	case KindSparkle:
		return "sparkle"
	case KindBalloon:
		return "balloon"
	case KindConfetti:
		return "confetti"
	default:
		return fmt.Sprintf("illegal-kind-%d", this)
	}
}

// Element is one transient decoration. X and Y are relative to the area the
// element is drawn into, 0..1 from the top left.
type Element struct {
	ID    uint64
	Kind  Kind
	Glyph string
	Color string
	X     float64
	Y     float64
	Size  float64

	Born time.Time
	// Lifetime after which the element removes itself; 0 means it stays.
	Lifetime time.Duration
	// Travel is the duration of one pass of its animation.
	Travel time.Duration
	Phase  time.Duration
}

// Progress returns how far the animation is, 0..1.
func (this Element) Progress(now time.Time) float64 {
	if this.Travel <= 0 {
		return 0
	}
	age := now.Sub(this.Born) + this.Phase
	if age <= 0 {
		return 0
	}
	p := float64(age) / float64(this.Travel)
	if this.Kind == KindBalloon {
		return p - math.Floor(p)
	}
	return math.Min(p, 1)
}

func (this Element) Position(now time.Time) (x, y float64) {
	p := this.Progress(now)
	switch this.Kind {
	case KindHeart:
		// Floats from the bottom to the top.
		return this.X, 1 - p
	case KindConfetti:
		return this.X, p
	case KindBalloon:
		return this.X, clamp(this.Y+0.05*math.Sin(2*math.Pi*p), 0, 1)
	default:
		return this.X, this.Y
	}
}

// Visible reports whether a sparkle is in the bright half of its twinkle;
// every other kind is always visible.
func (this Element) Visible(now time.Time) bool {
	if this.Kind != KindSparkle {
		return true
	}
	p := this.Progress(now)
	return p > 0.15 && p < 0.85
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

package effect

import (
	"time"

	log "github.com/echocat/slf4g"
)

const (
	ConfettiPieces      = 100
	ConfettiStagger     = 30 * time.Millisecond
	ConfettiMinLifetime = 2 * time.Second
	ConfettiMaxLifetime = 4 * time.Second
)

var (
	ConfettiColors = []string{"#ff6b6b", "#4ecdc4", "#ffe66d", "#95e1d3", "#f38181", "#aa96da", "#ffd93d", "#ff9ff3"}
	confettiShapes = []string{"■", "●"}
)

// Confetti is the celebratory effect. Every call of Celebrate is
// independent of all others.
type Confetti struct {
	Field *Field
}

func (this *Confetti) Celebrate() {
	log.With("pieces", ConfettiPieces).
		Debug("Confetti!")
	for i := 0; i < ConfettiPieces; i++ {
		this.Field.scheduler.After(time.Duration(i)*ConfettiStagger, this.spawn)
	}
}

func (this *Confetti) spawn() {
	f := this.Field
	lifetime := f.duration(ConfettiMinLifetime, ConfettiMaxLifetime)
	f.Spawn(Element{
		Kind:     KindConfetti,
		Glyph:    f.pick(confettiShapes),
		Color:    f.pick(ConfettiColors),
		X:        f.float(0, 1),
		Size:     f.float(5, 15),
		Lifetime: lifetime,
		Travel:   lifetime,
	})
}

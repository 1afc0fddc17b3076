package effect

import (
	"sync"
	"time"

	"github.com/blaubaer/party-deck/pkg/schedule"
)

const (
	HeartInterval   = 800 * time.Millisecond
	HeartLifetime   = 6 * time.Second
	SparkleInterval = 400 * time.Millisecond
	SparkleLifetime = 2500 * time.Millisecond
	BalloonCount    = 8
)

var (
	heartGlyphs   = []string{"♥", "♡", "❥", "❣"}
	heartColors   = []string{"#e91e63", "#ff6b81", "#ff4d6d", "#ff8fab", "#c9184a"}
	sparkleGlyphs = []string{"✦", "✧", "⋆"}
	sparkleColors = []string{"#ffe66d", "#ffd93d", "#fff3b0"}
	balloonColors = []string{"red", "blue", "yellow", "green", "pink", "purple"}
	balloonHex    = map[string]string{
		"red":    "#ff4d4d",
		"blue":   "#4d79ff",
		"yellow": "#ffe14d",
		"green":  "#4dd26b",
		"pink":   "#ff8fc7",
		"purple": "#a64dff",
	}
)

// Spawner adds one element to its field per interval until stopped.
type Spawner struct {
	Field    *Field
	Interval time.Duration
	Make     func(*Field) Element

	handle schedule.Handle
	mutex  sync.Mutex
}

func (this *Spawner) Start() {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.handle != nil {
		return
	}
	this.handle = this.Field.scheduler.Every(this.Interval, func() {
		this.Field.Spawn(this.Make(this.Field))
	})
}

func (this *Spawner) Stop() {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.handle != nil {
		this.handle.Cancel()
		this.handle = nil
	}
}

func Hearts(field *Field) *Spawner {
	return &Spawner{
		Field:    field,
		Interval: HeartInterval,
		Make: func(f *Field) Element {
			return Element{
				Kind:     KindHeart,
				Glyph:    f.pick(heartGlyphs),
				Color:    f.pick(heartColors),
				X:        f.float(0, 1),
				Size:     f.float(20, 35),
				Lifetime: HeartLifetime,
				Travel:   f.duration(4*time.Second, 7*time.Second),
			}
		},
	}
}

func Sparkles(field *Field) *Spawner {
	return &Spawner{
		Field:    field,
		Interval: SparkleInterval,
		Make: func(f *Field) Element {
			return Element{
				Kind:     KindSparkle,
				Glyph:    f.pick(sparkleGlyphs),
				Color:    f.pick(sparkleColors),
				X:        f.float(0, 1),
				Y:        f.float(0, 1),
				Lifetime: SparkleLifetime,
				Travel:   f.duration(1500*time.Millisecond, 2500*time.Millisecond),
			}
		},
	}
}

// PlaceBalloons adds the permanent balloons near the top of the field.
func PlaceBalloons(field *Field) {
	for i := 0; i < BalloonCount; i++ {
		color := field.pick(balloonColors)
		field.Spawn(Element{
			Kind:   KindBalloon,
			Glyph:  "○",
			Color:  balloonHex[color],
			X:      field.float(0.1, 0.9),
			Y:      field.float(0, 0.3),
			Travel: 3 * time.Second,
			Phase:  field.duration(0, 3*time.Second),
		})
	}
}

// Decorations bundles the ambient spawners which run for the whole session.
type Decorations struct {
	Field *Field
	// BalloonsOnly places the balloons but spawns neither hearts nor
	// sparkles.
	BalloonsOnly bool

	spawners []*Spawner
	once     sync.Once
}

func (this *Decorations) Start() {
	this.once.Do(func() {
		if !this.BalloonsOnly {
			this.spawners = []*Spawner{Hearts(this.Field), Sparkles(this.Field)}
		}
		PlaceBalloons(this.Field)
	})
	for _, s := range this.spawners {
		s.Start()
	}
}

func (this *Decorations) Stop() {
	for _, s := range this.spawners {
		s.Stop()
	}
}

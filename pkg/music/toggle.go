package music

import (
	"fmt"
	"sync"
)

const (
	LabelPlaying = "🔊"
	LabelPaused  = "🎵"
)

type Player interface {
	Play() error
	Pause() error
}

// Toggle flips a single Player between playing and paused.
type Toggle struct {
	player  Player
	playing bool
	mutex   sync.Mutex
}

func NewToggle(player Player) *Toggle {
	return &Toggle{player: player}
}

// Flip starts playing if paused and pauses if playing. If the player
// refuses, the toggle keeps its previous state.
func (this *Toggle) Flip() (string, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.player == nil {
		return LabelPaused, fmt.Errorf("no music configured")
	}

	if this.playing {
		if err := this.player.Pause(); err != nil {
			return this.label(), fmt.Errorf("cannot pause music: %w", err)
		}
		this.playing = false
	} else {
		if err := this.player.Play(); err != nil {
			return this.label(), fmt.Errorf("cannot play music: %w", err)
		}
		this.playing = true
	}
	return this.label(), nil
}

func (this *Toggle) Playing() bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.playing
}

func (this *Toggle) Label() string {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.label()
}

func (this *Toggle) label() string {
	if this.playing {
		return LabelPlaying
	}
	return LabelPaused
}

package deck

import (
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/party-deck/pkg/schedule"
)

// CelebrationDelay lets the transition to the final slide finish before the
// celebration starts.
const CelebrationDelay = 500 * time.Millisecond

type Celebrator interface {
	Celebrate()
}

type CelebratorFunc func()

func (this CelebratorFunc) Celebrate() {
	this()
}

type IndexOutOfRangeError struct {
	Index      int
	SlideCount int
}

func (this *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("slide index %d out of range [0, %d)", this.Index, this.SlideCount)
}

type Controls struct {
	PrevDisabled bool
	NextDisabled bool
	// Indicators holds one entry per slide; only the current one is true.
	Indicators []bool
}

type Snapshot struct {
	Index    int
	Slides   SlideStates
	Controls Controls
}

func (this Snapshot) IsLast() bool {
	return this.Index == len(this.Slides)-1
}

type Navigator struct {
	scheduler  schedule.Scheduler
	celebrator Celebrator

	slideCount int
	current    int
	slides     SlideStates
	controls   Controls

	mutex sync.RWMutex
}

func NewNavigator(slideCount int, scheduler schedule.Scheduler, celebrator Celebrator) *Navigator {
	if slideCount < 1 {
		panic(fmt.Errorf("illegal-slide-count: %d", slideCount))
	}
	result := &Navigator{
		scheduler:  scheduler,
		celebrator: celebrator,
		slideCount: slideCount,
		slides:     make(SlideStates, slideCount),
		controls: Controls{
			Indicators: make([]bool, slideCount),
		},
	}
	result.slides[0] = SlideStateActive
	result.refreshControls()
	return result
}

func (this *Navigator) SlideCount() int {
	return this.slideCount
}

func (this *Navigator) Current() int {
	this.mutex.RLock()
	defer this.mutex.RUnlock()
	return this.current
}

// Advance moves to the next slide. It returns false and changes nothing if
// the last slide is already active.
func (this *Navigator) Advance() bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.current >= this.slideCount-1 {
		return false
	}
	this.slides[this.current] = SlideStatePrior
	this.current++
	this.slides[this.current] = SlideStateActive
	this.refreshControls()

	log.With("slide", this.current).
		Debug("Advanced to slide.")
	this.onArrival()
	return true
}

// Retreat moves to the previous slide. It returns false and changes nothing
// if the first slide is already active.
func (this *Navigator) Retreat() bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.current <= 0 {
		return false
	}
	this.slides[this.current] = SlideStateDefault
	this.current--
	this.slides[this.current] = SlideStateActive
	this.refreshControls()

	log.With("slide", this.current).
		Debug("Retreated to slide.")
	return true
}

// JumpTo makes the slide at index the active one. Passing an index outside
// of [0, SlideCount()) is a programming error and panics with an
// *IndexOutOfRangeError.
func (this *Navigator) JumpTo(index int) {
	if index < 0 || index >= this.slideCount {
		panic(&IndexOutOfRangeError{index, this.slideCount})
	}

	this.mutex.Lock()
	defer this.mutex.Unlock()

	previous := this.current
	for i := range this.slides {
		switch {
		case i < index:
			this.slides[i] = SlideStatePrior
		case i == index:
			this.slides[i] = SlideStateActive
		default:
			this.slides[i] = SlideStateDefault
		}
	}
	this.current = index
	this.refreshControls()

	log.With("slide", index).
		With("previous", previous).
		Debug("Jumped to slide.")

	if previous != index {
		this.onArrival()
	}
}

func (this *Navigator) RefreshControls() {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.refreshControls()
}

func (this *Navigator) refreshControls() {
	this.controls.PrevDisabled = this.current == 0
	this.controls.NextDisabled = this.current == this.slideCount-1
	for i := range this.controls.Indicators {
		this.controls.Indicators[i] = i == this.current
	}
}

func (this *Navigator) onArrival() {
	if this.current != this.slideCount-1 || this.celebrator == nil {
		return
	}
	log.Debug("Final slide reached; celebration scheduled.")
	this.scheduler.After(CelebrationDelay, this.celebrator.Celebrate)
}

func (this *Navigator) Snapshot() Snapshot {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	return Snapshot{
		Index:  this.current,
		Slides: slices.Clone(this.slides),
		Controls: Controls{
			PrevDisabled: this.controls.PrevDisabled,
			NextDisabled: this.controls.NextDisabled,
			Indicators:   slices.Clone(this.controls.Indicators),
		},
	}
}

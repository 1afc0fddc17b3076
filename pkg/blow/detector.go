package blow

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/party-deck/pkg/audio"
	"github.com/blaubaer/party-deck/pkg/common"
	"github.com/blaubaer/party-deck/pkg/deck"
	"github.com/blaubaer/party-deck/pkg/schedule"
)

const (
	SampleInterval = 100 * time.Millisecond
	// Threshold is the mean magnitude (0..255) a single sample has to exceed
	// to count as a blow.
	Threshold    = 30.0
	FlameCount   = 5
	SuccessDelay = 300 * time.Millisecond
)

var (
	ErrPermissionDenied  = audio.ErrPermissionDenied
	ErrDeviceUnavailable = audio.ErrDeviceUnavailable
)

type Input interface {
	// Snapshot returns the current magnitude per frequency bin.
	Snapshot() []uint8
	Close() error
}

type Source interface {
	Open(ctx context.Context) (Input, error)
}

type SourceFunc func(ctx context.Context) (Input, error)

func (this SourceFunc) Open(ctx context.Context) (Input, error) {
	return this(ctx)
}

func MicrophoneSource(m *audio.Microphone) Source {
	return SourceFunc(func(ctx context.Context) (Input, error) {
		c, err := m.Open(ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// Feedback receives the visible consequences of the detector.
type Feedback interface {
	Armed(bool)
	Extinguish()
	Succeed()
}

type Detector struct {
	source     Source
	scheduler  schedule.Scheduler
	feedback   Feedback
	celebrator deck.Celebrator

	state   State
	session *session
	// acquiring is set while source.Open runs without the mutex held;
	// generation changes with every stop.
	acquiring  bool
	generation uint64
	mutex      sync.Mutex
}

// session exists exactly while the detector is listening.
type session struct {
	input Input
	timer schedule.Handle
}

func New(source Source, scheduler schedule.Scheduler, feedback Feedback, celebrator deck.Celebrator) *Detector {
	return &Detector{
		source:     source,
		scheduler:  scheduler,
		feedback:   feedback,
		celebrator: celebrator,
	}
}

func (this *Detector) State() State {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.state
}

// Start acquires the input and starts sampling. If the detector is already
// listening it is stopped instead, so a single control can toggle it. While
// an acquisition is in progress further calls return immediately; a Stop
// meanwhile discards the acquired input.
//
// A failed acquisition leaves the detector idle and returns an error that
// matches ErrPermissionDenied or ErrDeviceUnavailable.
func (this *Detector) Start(ctx context.Context) error {
	this.mutex.Lock()
	if this.state == StateListening {
		log.Debug("Start requested while listening; stopping instead.")
		this.stop()
		this.mutex.Unlock()
		return nil
	}
	if this.acquiring {
		this.mutex.Unlock()
		log.Debug("Start requested while acquiring; ignored.")
		return nil
	}
	this.acquiring = true
	generation := this.generation
	this.mutex.Unlock()

	input, err := this.source.Open(ctx)

	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.acquiring = false

	if err != nil {
		if !common.IsAnyOf(err, ErrPermissionDenied, ErrDeviceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
		}
		log.WithError(err).
			Warn("Cannot acquire microphone.")
		return err
	}

	if this.generation != generation {
		log.Debug("Stopped while acquiring; releasing microphone again.")
		if err := input.Close(); err != nil {
			log.WithError(err).
				Warn("Cannot release microphone.")
		}
		return nil
	}

	s := &session{input: input}
	s.timer = this.scheduler.Every(SampleInterval, func() {
		this.sample(s)
	})
	this.session = s
	this.state = StateListening
	this.feedback.Armed(true)

	log.With("interval", SampleInterval).
		With("threshold", Threshold).
		Info("Listening for a blow.")
	return nil
}

// Stop is valid in every state and always leaves the detector idle.
func (this *Detector) Stop() {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.stop()
}

func (this *Detector) stop() {
	this.generation++
	if s := this.session; s != nil {
		this.session = nil
		s.timer.Cancel()
		if err := s.input.Close(); err != nil {
			log.WithError(err).
				Warn("Cannot release microphone.")
		}
		log.Debug("Stopped listening.")
	}
	this.state = StateIdle
	this.feedback.Armed(false)
}

func (this *Detector) sample(s *session) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	// A tick of a session that was stopped meanwhile.
	if this.session != s {
		return
	}

	level := Mean(s.input.Snapshot())
	if level > Threshold {
		this.trigger(level)
	}
}

func (this *Detector) trigger(level float64) {
	log.With("level", level).
		Info("Blow detected.")

	this.feedback.Extinguish()
	this.stop()

	feedback, celebrator := this.feedback, this.celebrator
	this.scheduler.After(SuccessDelay, func() {
		feedback.Succeed()
		if celebrator != nil {
			celebrator.Celebrate()
		}
	})
}

// Mean returns the arithmetic mean of all bins; 0 for no bins.
func Mean(bins []uint8) float64 {
	if len(bins) == 0 {
		return 0
	}
	var sum int
	for _, v := range bins {
		sum += int(v)
	}
	return float64(sum) / float64(len(bins))
}

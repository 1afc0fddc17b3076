package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/party-deck/pkg/audio"
	"github.com/blaubaer/party-deck/pkg/blow"
	"github.com/blaubaer/party-deck/pkg/common"
	"github.com/blaubaer/party-deck/pkg/deck"
	"github.com/blaubaer/party-deck/pkg/effect"
	"github.com/blaubaer/party-deck/pkg/input"
	"github.com/blaubaer/party-deck/pkg/music"
)

const FrameInterval = 50 * time.Millisecond

const (
	NoticePermissionDenied  = "Microphone access chahiye! Please allow karo."
	NoticeDeviceUnavailable = "Microphone nahi mila! Koi mic connect karo aur phir try karo."
)

type Dependencies struct {
	Deck      *deck.Deck
	Navigator *deck.Navigator
	Detector  *blow.Detector
	Cake      *blow.Cake
	Field     *effect.Field
	Music     *music.Toggle
	// Logs is optional; without it the log pane stays empty.
	Logs *common.LineRing

	PixelsPerCell int
}

type Model struct {
	Dependencies

	ctx    context.Context
	keys   input.KeyMap
	help   help.Model
	swipe  input.Swipe
	photos map[int]deck.Photo

	width, height int
	notice        string
	showLogs      bool
	quitting      bool
}

type frameMsg time.Time

type blowResultMsg struct {
	err error
}

type musicResultMsg struct {
	label string
	err   error
}

func New(ctx context.Context, deps Dependencies) *Model {
	result := &Model{
		Dependencies: deps,
		ctx:          ctx,
		keys:         input.Keys,
		help:         help.New(),
		swipe:        input.Swipe{UnitsPerCell: deps.PixelsPerCell},
		photos:       map[int]deck.Photo{},
		width:        80,
		height:       24,
	}
	for i, s := range deps.Deck.Slides {
		if s.Photo != "" {
			result.photos[i] = deck.LoadPhoto(deps.Deck.PhotoPath(i))
		}
	}
	return result
}

func (this *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(this.title()), frame())
}

func frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (this *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		this.width, this.height = msg.Width, msg.Height
		this.help.Width = msg.Width
		return this, nil
	case frameMsg:
		if this.quitting {
			return this, nil
		}
		return this, frame()
	case tea.KeyMsg:
		return this.onKey(msg)
	case tea.MouseMsg:
		return this.onMouse(msg)
	case blowResultMsg:
		this.onBlowResult(msg.err)
		return this, nil
	case musicResultMsg:
		if msg.err != nil {
			log.WithError(msg.err).Warn("Music toggle failed.")
		}
		return this, nil
	}
	return this, nil
}

func (this *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	defer this.releaseMicrophoneAwayFromCake()
	switch {
	case key.Matches(msg, this.keys.Quit):
		this.quitting = true
		this.Detector.Stop()
		return this, tea.Quit
	case key.Matches(msg, this.keys.Advance):
		this.Navigator.Advance()
	case key.Matches(msg, this.keys.Retreat):
		this.Navigator.Retreat()
	case key.Matches(msg, this.keys.Jump):
		if index, ok := input.JumpIndex(msg.String(), this.Navigator.SlideCount()); ok {
			this.Navigator.JumpTo(index)
		}
	case key.Matches(msg, this.keys.Blow):
		return this, this.blow()
	case key.Matches(msg, this.keys.Music):
		return this, this.toggleMusic()
	case key.Matches(msg, this.keys.Logs):
		this.showLogs = !this.showLogs
	}
	return this, nil
}

func (this *Model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return this, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		this.swipe.Press(msg.X)
	case tea.MouseActionRelease:
		switch this.swipe.Release(msg.X) {
		case input.DirectionAdvance:
			this.Navigator.Advance()
		case input.DirectionRetreat:
			this.Navigator.Retreat()
		}
		this.releaseMicrophoneAwayFromCake()
	}
	return this, nil
}

// releaseMicrophoneAwayFromCake stops listening once the cake slide, which
// carries the control, is no longer shown.
func (this *Model) releaseMicrophoneAwayFromCake() {
	if !this.onCakeSlide() && this.Detector.State() == blow.StateListening {
		log.Debug("Left the cake slide; stop listening.")
		this.Detector.Stop()
	}
}

// blow acquires the microphone in the background; only the cake slide
// carries the control.
func (this *Model) blow() tea.Cmd {
	if !this.onCakeSlide() {
		return nil
	}
	this.notice = ""
	detector, ctx := this.Detector, this.ctx
	return func() tea.Msg {
		return blowResultMsg{err: detector.Start(ctx)}
	}
}

func (this *Model) onBlowResult(err error) {
	switch {
	case err == nil:
		this.notice = ""
	case errors.Is(err, blow.ErrPermissionDenied):
		this.notice = NoticePermissionDenied
	default:
		this.notice = NoticeDeviceUnavailable
	}
	if err == nil {
		return
	}
	l := log.WithError(err)
	if ae, ok := common.AsError[*audio.AcquisitionError](err); ok && ae.Device != "" {
		l = l.With("device", ae.Device)
	}
	l.Warn("Cannot listen to the microphone.")
}

func (this *Model) toggleMusic() tea.Cmd {
	toggle := this.Music
	return func() tea.Msg {
		label, err := toggle.Flip()
		return musicResultMsg{label: label, err: err}
	}
}

func (this *Model) onCakeSlide() bool {
	return this.Deck.Slides[this.Navigator.Current()].Cake
}

func (this *Model) Notice() string {
	return this.notice
}

func (this *Model) title() string {
	if this.Deck.Title != "" {
		return this.Deck.Title
	}
	return "party-deck"
}

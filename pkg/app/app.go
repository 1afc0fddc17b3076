package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"dario.cat/mergo"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/party-deck/pkg/audio"
	"github.com/blaubaer/party-deck/pkg/blow"
	"github.com/blaubaer/party-deck/pkg/common"
	"github.com/blaubaer/party-deck/pkg/deck"
	"github.com/blaubaer/party-deck/pkg/effect"
	"github.com/blaubaer/party-deck/pkg/music"
	"github.com/blaubaer/party-deck/pkg/schedule"
	"github.com/blaubaer/party-deck/pkg/ui"
)

func NewApp() *App {
	return &App{
		config: NewConfiguration(),
	}
}

type App struct {
	AudioStack        audio.Stack
	ConfigurationFile string
	// Logs receives the log output while the deck is shown.
	Logs *common.LineRing

	configFromFlags Configuration
	config          Configuration
	deck            *deck.Deck
	track           *music.Track
	mutex           sync.Mutex
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	common.SetupConfigurations(using, &this.AudioStack, &this.configFromFlags)

	using.Flag("configuration", "Defines the file from which the configuration should be loaded and/or stored to.").
		Short('c').
		Envar("PD_CONFIGURATION").
		StringVar(&this.ConfigurationFile)
}

func (this *App) Configuration() Configuration {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.config
}

func (this *App) configurationFile() string {
	if v := this.ConfigurationFile; v != "" {
		return v
	}
	return defaultConfigurationFile()
}

// LoadConfiguration reads the configuration file (if any) and applies
// everything which was provided by flags on top of it.
func (this *App) LoadConfiguration() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	config := NewConfiguration()
	if err := config.loadFromFile(this.configurationFile(), true); err != nil {
		return err
	}
	if err := mergo.Merge(&config, this.configFromFlags, mergo.WithOverride); err != nil {
		return fmt.Errorf("cannot merge configuration: %w", err)
	}
	this.config = config
	return nil
}

func (this *App) Initialize() (rErr error) {
	success := false
	defer func() {
		if !success {
			if err := this.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}
	}()

	if err := this.LoadConfiguration(); err != nil {
		return err
	}
	config := this.Configuration()

	if err := this.AudioStack.Initialize(); err != nil {
		// The deck is still worth showing; the microphone will report
		// itself as unavailable.
		log.WithError(err).
			Warn("Audio is not available.")
	}

	d, err := loadDeck(config.Deck)
	if err != nil {
		return err
	}
	this.deck = d

	if fn := config.Music; fn != "" {
		if this.track, err = music.LoadTrackFile(fn); err != nil {
			log.WithError(err).
				With("file", fn).
				Warn("Music not available.")
		}
	}

	if err := this.saveConf(false); err != nil {
		return err
	}

	success = true
	return nil
}

func loadDeck(fn string) (*deck.Deck, error) {
	if fn == "" {
		return deck.Default(), nil
	}
	return deck.LoadFile(fn)
}

func (this *App) saveConf(always bool) error {
	config := this.Configuration()
	if config.PreventAutoSave {
		log.Debug("Automatically save of configuration disabled.")
		return nil
	}

	fn := this.configurationFile()
	if !always {
		_, err := os.Stat(fn)
		if os.IsNotExist(err) {
			log.With("file", fn).Info("Configuration absent.")
			// Ok, we should save...
		} else if err != nil {
			return err
		} else {
			// Does exist, skip...
			return nil
		}
	}

	if err := config.saveToFile(fn); err != nil {
		return err
	}

	log.With("file", fn).Info("Configuration saved.")

	return nil
}

// Run shows the deck until the viewer quits or ctx is done.
func (this *App) Run(ctx context.Context) error {
	if this.deck == nil {
		return fmt.Errorf("not initialized")
	}
	config := this.Configuration()
	d := this.deck

	loop := schedule.NewLoop()
	field := effect.NewField(loop, nil)
	confetti := &effect.Confetti{Field: field}
	navigator := deck.NewNavigator(len(d.Slides), loop, confetti)
	cake := blow.NewCake(d.Cake.Instruction, d.Cake.Wish)
	detector := blow.New(blow.MicrophoneSource(&audio.Microphone{
		Stack:  &this.AudioStack,
		Device: config.CaptureDevice,
	}), loop, cake, confetti)

	decorations := &effect.Decorations{
		Field:        field,
		BalloonsOnly: config.Decorations == DecorationModeCalm,
	}
	if config.Decorations != DecorationModeNone {
		decorations.Start()
	}

	var player *music.WavPlayer
	toggle := music.NewToggle(nil)
	if this.track != nil {
		player = &music.WavPlayer{Stack: &this.AudioStack, Track: this.track}
		toggle = music.NewToggle(player)
	}

	defer loop.Do(func() {
		detector.Stop()
		decorations.Stop()
		if player != nil {
			if err := player.Close(); err != nil {
				log.WithError(err).
					Warn("Cannot close music player.")
			}
		}
	})

	model := ui.New(ctx, ui.Dependencies{
		Deck:          d,
		Navigator:     navigator,
		Detector:      detector,
		Cake:          cake,
		Field:         field,
		Music:         toggle,
		Logs:          this.Logs,
		PixelsPerCell: config.PixelsPerCell,
	})

	log.With("slides", len(d.Slides)).
		With("decorations", config.Decorations).
		Info("Showing deck.")

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Debug("Deck interrupted.")
			return nil
		}
		return fmt.Errorf("cannot show deck: %w", err)
	}
	return nil
}

func (this *App) PrintDevices(w io.Writer) error {
	devices, err := this.AudioStack.FindDevices()
	if err != nil {
		return err
	}
	if !devices.HasContent() {
		_, err := fmt.Fprintln(w, "No capture devices found.")
		return err
	}
	for _, d := range devices {
		marker := " "
		if d.Default {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", marker, d.Name); err != nil {
			return err
		}
	}
	return nil
}

func (this *App) PrintConfiguration(w io.Writer) error {
	config := this.Configuration()
	return config.saveTo(w)
}

func (this *App) Dispose() error {
	return this.AudioStack.Dispose()
}

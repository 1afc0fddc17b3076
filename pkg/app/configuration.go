package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/blaubaer/party-deck/pkg/common"
)

const DefaultPixelsPerCell = 8

func NewConfiguration() Configuration {
	return Configuration{
		PixelsPerCell: DefaultPixelsPerCell,
		Decorations:   DecorationModeAll,
	}
}

type Configuration struct {
	PreventAutoSave bool `yaml:"preventAutoSave"`

	// Deck is the YAML file with the slides; empty uses the built-in deck.
	Deck  string `yaml:"deck,omitempty"`
	Music string `yaml:"music,omitempty"`

	CaptureDevice string `yaml:"captureDevice,omitempty"`

	// PixelsPerCell scales terminal cells of swipe gestures to pixels.
	PixelsPerCell int            `yaml:"pixelsPerCell,omitempty"`
	Decorations   DecorationMode `yaml:"decorations,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("preventAutoSave", "If provided configuration will NOT automatically be saved upon changes.").
		Envar("PD_PREVENT_AUTO_SAVE").
		BoolVar(&this.PreventAutoSave)
	using.Flag("deck", "YAML file which contains the slides to show. If absent the built-in deck is shown.").
		Envar("PD_DECK").
		StringVar(&this.Deck)
	using.Flag("music", "WAV file which is played when the music is switched on.").
		Envar("PD_MUSIC").
		StringVar(&this.Music)
	using.Flag("captureDevice", "Name (or part of it) of the microphone to listen to. If absent the default device is used.").
		Envar("PD_CAPTURE_DEVICE").
		StringVar(&this.CaptureDevice)
	using.Flag("pixelsPerCell", "How many pixels one terminal cell is wide; used to recognize swipes.").
		Envar("PD_PIXELS_PER_CELL").
		IntVar(&this.PixelsPerCell)
	using.Flag("decorations", "Which decorations are shown. Possible values: "+AllDecorationModes.String()).
		Envar("PD_DECORATIONS").
		SetValue(&this.Decorations)
}

func (this *Configuration) loadFrom(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(this); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (this *Configuration) loadFromFile(fn string, ignoreNotFound bool) error {
	f, err := os.Open(fn)
	if os.IsNotExist(err) && ignoreNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.loadFrom(f); err != nil {
		return fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}

	return nil
}

func (this *Configuration) saveTo(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc.Encode(this)
}

func (this *Configuration) saveToFile(fn string) error {
	_ = os.MkdirAll(filepath.Dir(fn), 0700)

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.saveTo(f); err != nil {
		return fmt.Errorf("cannot write file %q: %w", fn, err)
	}

	return nil
}

func defaultConfigurationFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "configuration.yml"
	}
	return filepath.Join(dir, "party-deck", "configuration.yml")
}

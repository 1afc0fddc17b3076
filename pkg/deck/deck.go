package deck

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Slide struct {
	Title string   `yaml:"title"`
	Lines []string `yaml:"lines,omitempty"`
	Photo string   `yaml:"photo,omitempty"`
	// Cake marks the slide which carries the candles to blow out.
	Cake bool `yaml:"cake,omitempty"`
}

type CakeTexts struct {
	Button      string `yaml:"button"`
	Instruction string `yaml:"instruction"`
	Success     string `yaml:"success"`
	Wish        string `yaml:"wish"`
}

type Deck struct {
	Title  string    `yaml:"title,omitempty"`
	Slides []Slide   `yaml:"slides"`
	Cake   CakeTexts `yaml:"cake,omitempty"`

	// Dir is used to resolve relative photo paths.
	Dir string `yaml:"-"`
}

func (this *Deck) Validate() error {
	if len(this.Slides) == 0 {
		return errors.New("deck does not contain any slide")
	}
	for i, s := range this.Slides {
		if s.Title == "" && len(s.Lines) == 0 && s.Photo == "" && !s.Cake {
			return fmt.Errorf("slide %d is empty", i+1)
		}
	}
	return nil
}

// PhotoPath returns the resolved path of the photo of the given slide or an
// empty string if it has none.
func (this *Deck) PhotoPath(index int) string {
	p := this.Slides[index].Photo
	if p == "" || filepath.IsAbs(p) || this.Dir == "" {
		return p
	}
	return filepath.Join(this.Dir, p)
}

func Load(r io.Reader) (*Deck, error) {
	var result Deck
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

func LoadFile(fn string) (*Deck, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("cannot open deck file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	result, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load deck file %q: %w", fn, err)
	}
	result.Dir = filepath.Dir(fn)
	return result, nil
}

func Default() *Deck {
	result, err := Load(bytes.NewReader(defaultDeck))
	if err != nil {
		panic(fmt.Errorf("embedded deck is broken: %w", err))
	}
	return result
}

// CakeIndex returns the index of the first cake slide or -1.
func (this *Deck) CakeIndex() int {
	for i, s := range this.Slides {
		if s.Cake {
			return i
		}
	}
	return -1
}

//go:embed assets/deck.yaml
var defaultDeck []byte

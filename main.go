package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"

	"github.com/blaubaer/party-deck/pkg/app"
	"github.com/blaubaer/party-deck/pkg/common"
)

func main() {
	wf := &writerFacade{delegates: []io.Writer{os.Stderr}}
	buf := common.NewLineRing(2000, 4096)
	consumer.Default = consumer.NewWriter(wf)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.AllowMultiLineMessage = &bv
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	a := app.NewApp()
	a.Logs = buf

	cmd := kingpin.New("party-deck", "Birthday slides for the terminal, with candles you can blow out.")
	a.SetupConfiguration(cmd)

	cmd.Command("show", "Shows the deck.").
		Default().
		Action(func(*kingpin.ParseContext) error {
			if err := a.Initialize(); err != nil {
				return err
			}
			defer func() { _ = a.Dispose() }()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			// The terminal belongs to the deck now; everything logged
			// meanwhile is shown afterwards.
			wf.set([]io.Writer{buf})
			defer wf.set([]io.Writer{os.Stderr}, func(_, next []io.Writer) {
				_, _ = buf.WriteTo(next[0])
			})

			return a.Run(ctx)
		})

	cmd.Command("devices", "Lists all available capture devices.").
		Action(func(*kingpin.ParseContext) error {
			if err := a.LoadConfiguration(); err != nil {
				return err
			}
			if err := a.AudioStack.Initialize(); err != nil {
				return err
			}
			defer func() { _ = a.Dispose() }()
			return a.PrintDevices(os.Stdout)
		})

	cmd.Command("config", "Prints the effective configuration.").
		Action(func(*kingpin.ParseContext) error {
			if err := a.LoadConfiguration(); err != nil {
				return err
			}
			return a.PrintConfiguration(os.Stdout)
		})

	cmd.Flag("log.level", "").
		SetValue(lv.Level)
	cmd.Flag("log.format", "").
		Default("text").
		SetValue(lv.Consumer.Formatter)
	cmd.Flag("log.color", "").
		Default("auto").
		SetValue(lv.Consumer.Formatter.ColorMode)

	if _, err := cmd.Parse(os.Args[1:]); err != nil {
		log.WithError(err).
			Error("Failed.")
		os.Exit(1)
	}
}

type writerFacade struct {
	delegates []io.Writer
	mutex     sync.RWMutex
}

func (this *writerFacade) Write(p []byte) (n int, err error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	for i, w := range this.delegates {
		var nn int
		if nn, err = w.Write(p); err != nil {
			return n, err
		}
		if i == 0 {
			n = nn
		} else if n != nn {
			return n, fmt.Errorf("the previous writer wrote %d, but the current one wrote %d bytes", nn, n)
		}
	}

	return
}

func (this *writerFacade) set(next []io.Writer, whileChange ...func(current, next []io.Writer)) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	current := this.delegates
	for _, fn := range whileChange {
		fn(current, next)
	}
	this.delegates = next
}

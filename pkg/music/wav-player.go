package music

import (
	"fmt"
	"sync"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/party-deck/pkg/audio"
)

// WavPlayer loops a Track through a playback device of the given Stack. The
// device is opened on the first Play.
type WavPlayer struct {
	Stack *audio.Stack
	Track *Track

	playback *audio.Playback
	mutex    sync.Mutex
}

func (this *WavPlayer) Play() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.playback == nil {
		if this.Stack == nil || this.Track == nil {
			return fmt.Errorf("player not configured")
		}
		pb, err := this.Stack.OpenPlayback(audio.PlaybackFormat{
			SampleRate: this.Track.SampleRate,
			Channels:   this.Track.Channels,
		}, this.Track.Fill)
		if err != nil {
			return err
		}
		this.playback = pb
		log.With("sampleRate", this.Track.SampleRate).
			With("channels", this.Track.Channels).
			Debug("Playback device opened.")
	}

	return this.playback.Start()
}

func (this *WavPlayer) Pause() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.playback == nil {
		return nil
	}
	return this.playback.Stop()
}

func (this *WavPlayer) Close() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.playback == nil {
		return nil
	}
	err := this.playback.Close()
	this.playback = nil
	return err
}

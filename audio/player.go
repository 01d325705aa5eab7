package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays streamers asynchronously
type Player interface {
	Play(s ...beep.Streamer)
}

// SpeakerPlayer plays through the system audio device
type SpeakerPlayer struct{}

// NewSpeakerPlayer opens the audio device at sampleRate with a 100ms buffer
func NewSpeakerPlayer(sampleRate int) (*SpeakerPlayer, error) {
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	return &SpeakerPlayer{}, nil
}

// Play mixes s into the speaker output
func (SpeakerPlayer) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

// Close stops playback and releases the device
func (SpeakerPlayer) Close() {
	speaker.Clear()
	speaker.Close()
}

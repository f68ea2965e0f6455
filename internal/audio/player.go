// Package audio plays the notification chime.
package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Player holds the decoded chime clip. A Player that failed to
// initialize stays usable: Play returns the stored error every time so
// the caller can log and move on.
type Player struct {
	mu     sync.Mutex
	buffer *beep.Buffer
	err    error
}

// NewPlayer decodes a WAV clip and initializes the speaker once.
func NewPlayer(clip []byte) *Player {
	player := &Player{}

	streamer, format, err := wav.Decode(bytes.NewReader(clip))
	if err != nil {
		player.err = fmt.Errorf("decode chime: %w", err)
		return player
	}
	defer streamer.Close()

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		player.err = fmt.Errorf("init speaker: %w", speakerErr)
		return player
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	player.buffer = buffer
	return player
}

// Play restarts the chime from the start of the clip, cutting off a
// playback already in flight.
func (player *Player) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.err != nil {
		return player.err
	}
	speaker.Clear()
	speaker.Play(player.buffer.Streamer(0, player.buffer.Len()))
	return nil
}

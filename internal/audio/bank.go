// Package audio plays short sound cues for simulation events.
//
// Cues are WAV files decoded once into memory. A cue whose file is missing
// or cannot be decoded is logged and stays silent; nothing else is affected.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// SampleRate is the rate every cue is resampled to before playback.
const SampleRate = beep.SampleRate(44100)

// Cue names a sound. The file for a cue is <dir>/<cue>.wav.
type Cue string

const (
	CuePistolFire  Cue = "pistol_fire"
	CueShotgunFire Cue = "shotgun_fire"
	CueEnemyHit    Cue = "enemy_hit"
	CueEnemyDead   Cue = "enemy_dead"
	CuePlayerHit1  Cue = "player_hit1"
	CuePlayerHit2  Cue = "player_hit2"
	CuePlayerHit3  Cue = "player_hit3"
	CueMusic       Cue = "bgm"
)

// Cues lists every cue the bank tries to load.
var Cues = []Cue{
	CuePistolFire, CueShotgunFire, CueEnemyHit, CueEnemyDead,
	CuePlayerHit1, CuePlayerHit2, CuePlayerHit3, CueMusic,
}

// playerHitCues are picked from at random for PlayerHit.
var playerHitCues = []Cue{CuePlayerHit1, CuePlayerHit2, CuePlayerHit3}

// Bank holds decoded cues.
type Bank struct {
	buffers map[Cue]*beep.Buffer
}

// LoadBank decodes every cue found in dir. Failures are logged at warn
// level and leave the cue unavailable.
func LoadBank(dir string, logger *log.Logger) *Bank {
	b := &Bank{buffers: make(map[Cue]*beep.Buffer, len(Cues))}
	for _, cue := range Cues {
		path := filepath.Join(dir, string(cue)+".wav")
		buf, err := decodeFile(path)
		if err != nil {
			if logger != nil {
				logger.Warn("sound unavailable", "cue", cue, "err", err)
			}
			continue
		}
		b.buffers[cue] = buf
	}
	return b
}

// Has reports whether cue decoded successfully.
func (b *Bank) Has(cue Cue) bool {
	_, ok := b.buffers[cue]
	return ok
}

// Len is the number of available cues.
func (b *Bank) Len() int { return len(b.buffers) }

// Duration is the playing time of cue, zero when unavailable.
func (b *Bank) Duration(cue Cue) time.Duration {
	buf, ok := b.buffers[cue]
	if !ok {
		return 0
	}
	return SampleRate.D(buf.Len())
}

// streamer returns a fresh streamer over cue, or nil when unavailable.
func (b *Bank) streamer(cue Cue) beep.StreamSeeker {
	buf, ok := b.buffers[cue]
	if !ok {
		return nil
	}
	return buf.Streamer(0, buf.Len())
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, streamer)
	}

	format.SampleRate = SampleRate
	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: cannot read %s: %w", filepath.Base(path), err)
	}
	return buf, nil
}

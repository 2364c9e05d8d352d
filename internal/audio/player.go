package audio

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
)

// Output plays streamers. Implementations mix concurrent streamers.
type Output interface {
	Play(beep.Streamer)
}

// Speaker is the system audio device.
type Speaker struct {
	mixer *beep.Mixer
}

// NewSpeaker initializes the speaker at SampleRate.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds st to the mix.
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything and releases the device.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// queueSize bounds pending cues. Cues arriving while the queue is full are
// dropped rather than blocking the simulation.
const queueSize = 64

// Player turns simulation events into cues. It implements sim.Listener.
type Player struct {
	bank    *Bank
	out     Output
	logger  *log.Logger
	cues    chan Cue
	enabled atomic.Bool
	dropped atomic.Int64

	mu    sync.Mutex
	music *beep.Ctrl
}

// NewPlayer creates a player. Call Run to start playback.
func NewPlayer(bank *Bank, out Output, logger *log.Logger, enabled bool) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		bank:   bank,
		out:    out,
		logger: logger,
		cues:   make(chan Cue, queueSize),
	}
	p.enabled.Store(enabled)
	return p
}

// SetEnabled turns sound on or off. Turning it off also pauses the music.
func (p *Player) SetEnabled(on bool) {
	p.enabled.Store(on)
	p.mu.Lock()
	if p.music != nil {
		speakerLocked(p.out, func() { p.music.Paused = !on })
	}
	p.mu.Unlock()
}

// Enabled reports whether sound is on.
func (p *Player) Enabled() bool { return p.enabled.Load() }

// Dropped counts cues lost to a full queue.
func (p *Player) Dropped() int64 { return p.dropped.Load() }

// OnEvent queues the cue for e, if any.
func (p *Player) OnEvent(e sim.Event) {
	if !p.enabled.Load() {
		return
	}
	cue, ok := CueFor(e, rand.IntN)
	if !ok || !p.bank.Has(cue) {
		return
	}
	select {
	case p.cues <- cue:
	default:
		p.dropped.Add(1)
	}
}

// Run plays queued cues until ctx is done.
func (p *Player) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.StopMusic()
			return
		case cue := <-p.cues:
			if st := p.bank.streamer(cue); st != nil {
				p.out.Play(st)
			}
		}
	}
}

// StartMusic loops the background track. It does nothing when the track
// is unavailable or already playing.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music != nil {
		return
	}
	st := p.bank.streamer(CueMusic)
	if st == nil {
		return
	}
	p.music = &beep.Ctrl{Streamer: beep.Loop(-1, st), Paused: !p.enabled.Load()}
	p.out.Play(p.music)
	p.logger.Debug("music started")
}

// StopMusic ends the background track.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music == nil {
		return
	}
	speakerLocked(p.out, func() {
		p.music.Paused = true
		p.music.Streamer = nil
	})
	p.music = nil
}

// speakerLocked runs fn under the speaker lock when out is the real device.
func speakerLocked(out Output, fn func()) {
	if _, ok := out.(*Speaker); ok {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// CueFor maps an event to its cue. pick chooses among the player-hit
// variants and receives the number of variants.
func CueFor(e sim.Event, pick func(n int) int) (Cue, bool) {
	switch ev := e.(type) {
	case sim.ShotFired:
		if ev.Stance == progression.StanceTwoHanded {
			return CueShotgunFire, true
		}
		return CuePistolFire, true
	case sim.EnemyHit:
		return CueEnemyHit, true
	case sim.EnemyKilled:
		return CueEnemyDead, true
	case sim.PlayerHit:
		return playerHitCues[pick(len(playerHitCues))], true
	default:
		return "", false
	}
}

var _ sim.Listener = (*Player)(nil)

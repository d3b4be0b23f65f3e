// Package speech turns assistant replies into audible playback: remote
// synthesis first, decode, play, with a local speech fallback when the
// remote path fails.
package speech

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mindplanet/nova-gateway/audio"
)

// VoiceOptions parameterize the local fallback voice.
type VoiceOptions struct {
	Lang            string   `json:"lang"`
	Rate            float64  `json:"rate"`
	Pitch           float64  `json:"pitch"`
	PreferredVoices []string `json:"preferredVoices,omitempty"`
}

// DefaultVoiceOptions returns the calm, friendly fallback voice profile.
func DefaultVoiceOptions() VoiceOptions {
	return VoiceOptions{
		Lang:  "en-US",
		Rate:  1.0,
		Pitch: 1.05,
		PreferredVoices: []string{
			"Google US English",
			"Samantha",
			"Microsoft Zira",
		},
	}
}

// TTS synthesizes raw PCM16 little-endian audio for a piece of text.
type TTS interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Sink plays a decoded clip. Implementations decide what playback means
// for their transport.
type Sink interface {
	Play(clip *audio.Clip) error
}

// Synthesizer is the local fallback voice used when remote synthesis fails.
type Synthesizer interface {
	SpeakLocal(text string, voice VoiceOptions) error
}

// State describes where a spoken reply is in the pipeline.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateDecoding
	StatePlaying
	StateFallback
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateDecoding:
		return "decoding"
	case StatePlaying:
		return "playing"
	case StateFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Pipeline drives one utterance at a time. A new Speak supersedes the
// one in flight: the older request is cancelled and its output discarded.
// Nothing plays until EnsureOutput has been called for the session.
type Pipeline struct {
	tts      TTS
	sink     Sink
	fallback Synthesizer
	voice    VoiceOptions
	timeout  time.Duration

	mu     sync.Mutex
	ready  bool
	closed bool
	state  State
	gen    uint64
	cancel context.CancelFunc

	// Optional, observed by the session for status reporting.
	OnState func(State)
}

// NewPipeline wires the remote synthesizer, the playback sink, and the
// local fallback. fallback may be nil; failures are then only logged.
// Each utterance runs under timeout; zero means no deadline.
func NewPipeline(tts TTS, sink Sink, fallback Synthesizer, voice VoiceOptions, timeout time.Duration) *Pipeline {
	return &Pipeline{
		tts:      tts,
		sink:     sink,
		fallback: fallback,
		voice:    voice,
		timeout:  timeout,
		state:    StateIdle,
	}
}

// EnsureOutput marks the output as usable. Safe to call repeatedly; only
// the first call changes anything. Until it runs, Speak is a silent no-op.
func (p *Pipeline) EnsureOutput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ready = true
}

// Ready reports whether the output has been unlocked.
func (p *Pipeline) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// State returns the current pipeline state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Speak synthesizes and plays text asynchronously. Empty text, a closed
// pipeline, or output not yet ready are no-ops. An utterance already in
// flight is cancelled and replaced.
func (p *Pipeline) Speak(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	p.mu.Lock()
	if !p.ready || p.closed {
		p.mu.Unlock()
		return
	}
	if p.cancel != nil {
		p.cancel()
	}
	var runCtx context.Context
	var cancel context.CancelFunc
	if p.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	p.cancel = cancel
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	go p.run(runCtx, cancel, gen, text)
}

// Stop cancels any utterance in flight.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	p.state = StateIdle
}

// Close stops playback and rejects further Speak calls.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	p.state = StateIdle
}

func (p *Pipeline) run(ctx context.Context, cancel context.CancelFunc, gen uint64, text string) {
	defer cancel()

	if !p.setState(gen, StateRequesting) {
		return
	}

	raw, err := p.tts.Synthesize(ctx, text)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			// Superseded or shut down; nothing to recover. A deadline
			// expiry is a real failure and goes to the fallback below.
			p.setState(gen, StateIdle)
			return
		}
		log.Printf("⚠️ Synthesis failed, using local speech: %v", err)
		p.speakFallback(gen, text)
		return
	}

	if !p.setState(gen, StateDecoding) {
		return
	}
	clip, err := audio.DecodePCM16(raw, 1)
	if err != nil {
		log.Printf("⚠️ Audio decode failed, using local speech: %v", err)
		p.speakFallback(gen, text)
		return
	}

	if !p.setState(gen, StatePlaying) {
		return
	}
	if err := p.sink.Play(clip); err != nil {
		log.Printf("⚠️ Playback failed: %v", err)
	}
	p.setState(gen, StateIdle)
}

func (p *Pipeline) speakFallback(gen uint64, text string) {
	if !p.setState(gen, StateFallback) {
		return
	}
	if p.fallback != nil {
		if err := p.fallback.SpeakLocal(text, p.voice); err != nil {
			log.Printf("⚠️ Local speech failed: %v", err)
		}
	}
	p.setState(gen, StateIdle)
}

// setState transitions only when gen is still the current utterance; a
// stale generation reports false and must abandon its work.
func (p *Pipeline) setState(gen uint64, state State) bool {
	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		return false
	}
	p.state = state
	notify := p.OnState
	p.mu.Unlock()
	if notify != nil {
		notify(state)
	}
	return true
}

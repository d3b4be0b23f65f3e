package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindplanet/nova-gateway/audio"
)

type fakeTTS struct {
	mu    sync.Mutex
	raw   []byte
	err   error
	calls []string
	block chan struct{} // when set, Synthesize blocks until closed or ctx ends
}

func (f *fakeTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.raw, f.err
}

type fakeSink struct {
	mu     sync.Mutex
	clips  []*audio.Clip
	played chan struct{}
}

func newFakeSink() *fakeSink {
	return &fakeSink{played: make(chan struct{}, 8)}
}

func (f *fakeSink) Play(clip *audio.Clip) error {
	f.mu.Lock()
	f.clips = append(f.clips, clip)
	f.mu.Unlock()
	f.played <- struct{}{}
	return nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clips)
}

type fakeFallback struct {
	mu     sync.Mutex
	texts  []string
	voices []VoiceOptions
	err    error
	spoke  chan struct{}
}

func newFakeFallback() *fakeFallback {
	return &fakeFallback{spoke: make(chan struct{}, 8)}
}

func (f *fakeFallback) SpeakLocal(text string, voice VoiceOptions) error {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.voices = append(f.voices, voice)
	f.mu.Unlock()
	f.spoke <- struct{}{}
	return f.err
}

func waitSignal(t *testing.T, ch chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

// pcmBytes packs int16 samples little-endian.
func pcmBytes(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, byte(uint16(s)&0xff), byte(uint16(s)>>8))
	}
	return out
}

func TestSpeakBeforeEnsureOutputIsNoOp(t *testing.T) {
	tts := &fakeTTS{raw: pcmBytes(100, 200)}
	sink := newFakeSink()
	p := NewPipeline(tts, sink, nil, DefaultVoiceOptions(), 0)

	p.Speak(context.Background(), "hello")
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, tts.calls)
	assert.Zero(t, sink.count())
	assert.Equal(t, StateIdle, p.State())
}

func TestSpeakPlaysDecodedClip(t *testing.T) {
	tts := &fakeTTS{raw: pcmBytes(0, 16384, -16384, 32767)}
	sink := newFakeSink()
	p := NewPipeline(tts, sink, nil, DefaultVoiceOptions(), 0)
	p.EnsureOutput()

	p.Speak(context.Background(), "hello there")
	waitSignal(t, sink.played, "playback")

	require.Equal(t, 1, sink.count())
	clip := sink.clips[0]
	assert.Equal(t, audio.SampleRate, clip.SampleRate)
	assert.Equal(t, 4, clip.FrameCount())
	assert.InDelta(t, 0.5, clip.Data[0][1], 1e-4)
	assert.InDelta(t, -0.5, clip.Data[0][2], 1e-4)
	assert.Equal(t, []string{"hello there"}, tts.calls)
}

func TestSpeakFallsBackOnSynthesisError(t *testing.T) {
	tts := &fakeTTS{err: errors.New("quota exhausted")}
	sink := newFakeSink()
	fallback := newFakeFallback()
	voice := DefaultVoiceOptions()
	p := NewPipeline(tts, sink, fallback, voice, 0)
	p.EnsureOutput()

	p.Speak(context.Background(), "still here for you")
	waitSignal(t, fallback.spoke, "fallback speech")

	assert.Zero(t, sink.count())
	assert.Equal(t, []string{"still here for you"}, fallback.texts)
	assert.Equal(t, voice, fallback.voices[0])
}

func TestSpeakFallsBackOnDecodeError(t *testing.T) {
	tts := &fakeTTS{raw: nil} // no audio bytes at all
	fallback := newFakeFallback()
	p := NewPipeline(tts, newFakeSink(), fallback, DefaultVoiceOptions(), 0)
	p.EnsureOutput()

	p.Speak(context.Background(), "hello")
	waitSignal(t, fallback.spoke, "fallback speech")

	assert.Equal(t, []string{"hello"}, fallback.texts)
}

func TestSpeakTimesOutToFallback(t *testing.T) {
	// Synthesis hangs until its context ends; the per-utterance deadline
	// must expire it and hand the text to the local voice.
	block := make(chan struct{})
	defer close(block)
	tts := &fakeTTS{block: block}
	sink := newFakeSink()
	fallback := newFakeFallback()
	p := NewPipeline(tts, sink, fallback, DefaultVoiceOptions(), 50*time.Millisecond)
	p.EnsureOutput()

	p.Speak(context.Background(), "are you still there")
	waitSignal(t, fallback.spoke, "fallback speech")

	assert.Zero(t, sink.count())
	assert.Equal(t, []string{"are you still there"}, fallback.texts)
}

func TestSpeakSwallowsFallbackError(t *testing.T) {
	tts := &fakeTTS{err: errors.New("boom")}
	fallback := newFakeFallback()
	fallback.err = errors.New("no local voice")
	p := NewPipeline(tts, newFakeSink(), fallback, DefaultVoiceOptions(), 0)
	p.EnsureOutput()

	p.Speak(context.Background(), "hello")
	waitSignal(t, fallback.spoke, "fallback speech")
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, StateIdle, p.State())
}

func TestSpeakSupersedesInFlightUtterance(t *testing.T) {
	block := make(chan struct{})
	tts := &fakeTTS{raw: pcmBytes(1000, 2000), block: block}
	sink := newFakeSink()
	p := NewPipeline(tts, sink, nil, DefaultVoiceOptions(), 0)
	p.EnsureOutput()

	p.Speak(context.Background(), "first reply")

	// The second call cancels the first; only the second may play.
	tts.mu.Lock()
	tts.block = nil
	tts.mu.Unlock()
	p.Speak(context.Background(), "second reply")

	waitSignal(t, sink.played, "playback")
	close(block)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, sink.count())
	tts.mu.Lock()
	calls := append([]string(nil), tts.calls...)
	tts.mu.Unlock()
	assert.Contains(t, calls, "second reply")
}

func TestCloseRejectsSpeak(t *testing.T) {
	tts := &fakeTTS{raw: pcmBytes(1, 2)}
	sink := newFakeSink()
	p := NewPipeline(tts, sink, nil, DefaultVoiceOptions(), 0)
	p.EnsureOutput()
	p.Close()

	p.Speak(context.Background(), "hello")
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, tts.calls)
	assert.Zero(t, sink.count())
}

func TestStateSequenceOnSuccess(t *testing.T) {
	tts := &fakeTTS{raw: pcmBytes(1, 2, 3)}
	sink := newFakeSink()
	p := NewPipeline(tts, sink, nil, DefaultVoiceOptions(), 0)
	p.EnsureOutput()

	var mu sync.Mutex
	var states []State
	done := make(chan struct{}, 1)
	p.OnState = func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
		if s == StateIdle {
			done <- struct{}{}
		}
	}

	p.Speak(context.Background(), "hello")
	waitSignal(t, done, "idle state")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateRequesting, StateDecoding, StatePlaying, StateIdle}, states)
}

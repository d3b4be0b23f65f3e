package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// Gemini TTS returns raw PCM: signed 16-bit little-endian at 24kHz, mono.
const (
	SampleRate     = 24000
	BytesPerSample = 2
)

var ErrNoSamples = errors.New("audio payload contains no samples")

// Clip is a decoded, playable audio buffer. Samples are normalized to
// [-1, 1] per channel; Raw keeps the original interleaved PCM bytes so
// transports can forward the clip without re-encoding.
type Clip struct {
	Data       [][]float32 // one slice per channel
	SampleRate int
	Raw        []byte
}

// Channels returns the channel count.
func (c *Clip) Channels() int {
	return len(c.Data)
}

// FrameCount returns the number of frames per channel.
func (c *Clip) FrameCount() int {
	if len(c.Data) == 0 {
		return 0
	}
	return len(c.Data[0])
}

// Duration returns the playback length of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.FrameCount()) * time.Second / time.Duration(c.SampleRate)
}

// DecodePCM16 views raw as interleaved signed 16-bit little-endian samples
// and de-interleaves them into per-channel float32 data, normalizing each
// sample by 1/32768. Sample i of channel c is raw[i*channels+c]. A trailing
// odd byte is ignored.
func DecodePCM16(raw []byte, channels int) (*Clip, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}

	sampleCount := len(raw) / BytesPerSample
	if sampleCount == 0 {
		return nil, ErrNoSamples
	}

	frameCount := sampleCount / channels
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frameCount)
	}

	for i := 0; i < frameCount; i++ {
		for ch := 0; ch < channels; ch++ {
			offset := (i*channels + ch) * BytesPerSample
			sample := int16(binary.LittleEndian.Uint16(raw[offset : offset+2]))
			data[ch][i] = float32(sample) / 32768.0
		}
	}

	return &Clip{
		Data:       data,
		SampleRate: SampleRate,
		Raw:        raw[:sampleCount*BytesPerSample],
	}, nil
}

// DecodeBase64PCM decodes a base64-encoded PCM payload as returned by the
// TTS endpoint and hands it to DecodePCM16.
func DecodeBase64PCM(encoded string, channels int) (*Clip, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 audio: %w", err)
	}
	return DecodePCM16(raw, channels)
}

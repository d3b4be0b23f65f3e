package audio

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcmBytes(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, byte(uint16(s)&0xff), byte(uint16(s)>>8))
	}
	return out
}

func TestDecodePCM16Mono(t *testing.T) {
	raw := pcmBytes(0, 16384, -16384, 32767, -32768)

	clip, err := DecodePCM16(raw, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, clip.Channels())
	assert.Equal(t, 5, clip.FrameCount())
	assert.Equal(t, SampleRate, clip.SampleRate)

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1}
	for i, w := range want {
		assert.InDelta(t, w, clip.Data[0][i], 1e-4, "sample %d", i)
	}
}

func TestDecodePCM16Stereo(t *testing.T) {
	// Interleaved L R L R: channel 0 gets even samples, channel 1 odd.
	raw := pcmBytes(100, -100, 200, -200, 300, -300)

	clip, err := DecodePCM16(raw, 2)
	require.NoError(t, err)

	require.Equal(t, 2, clip.Channels())
	require.Equal(t, 3, clip.FrameCount())

	for i, s := range []int16{100, 200, 300} {
		assert.InDelta(t, float32(s)/32768.0, clip.Data[0][i], 1e-6)
		assert.InDelta(t, float32(-s)/32768.0, clip.Data[1][i], 1e-6)
	}
}

func TestDecodePCM16IgnoresTrailingOddByte(t *testing.T) {
	raw := append(pcmBytes(1000, 2000), 0x7f)

	clip, err := DecodePCM16(raw, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, clip.FrameCount())
	assert.Len(t, clip.Raw, 4)
}

func TestDecodePCM16Errors(t *testing.T) {
	_, err := DecodePCM16(nil, 1)
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = DecodePCM16([]byte{0x01}, 1)
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = DecodePCM16(pcmBytes(1, 2), 0)
	assert.Error(t, err)
}

func TestDecodeBase64PCM(t *testing.T) {
	raw := pcmBytes(0, 8192, -8192)
	encoded := base64.StdEncoding.EncodeToString(raw)

	clip, err := DecodeBase64PCM(encoded, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, clip.FrameCount())
	assert.InDelta(t, 0.25, clip.Data[0][1], 1e-4)
	assert.Equal(t, raw, clip.Raw)
}

func TestDecodeBase64PCMInvalid(t *testing.T) {
	_, err := DecodeBase64PCM("not base64!!!", 1)
	assert.Error(t, err)
}

func TestClipDuration(t *testing.T) {
	// One second of silence at 24kHz.
	raw := make([]byte, SampleRate*BytesPerSample)

	clip, err := DecodePCM16(raw, 1)
	require.NoError(t, err)

	assert.Equal(t, time.Second, clip.Duration())
}

package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeader(t *testing.T) {
	raw := pcmBytes(1000, -1000, 2000, -2000)
	clip, err := DecodePCM16(raw, 1)
	require.NoError(t, err)

	wav, err := EncodeWAV(clip)
	require.NoError(t, err)
	require.Len(t, wav, 44+len(raw))

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22])) // PCM
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24])) // mono
	assert.Equal(t, uint32(SampleRate), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36])) // bit depth
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(len(raw)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, raw, wav[44:])
}

func TestWriteWAVRejectsBadParams(t *testing.T) {
	clip := &Clip{Raw: pcmBytes(1)}
	_, err := EncodeWAV(clip)
	assert.Error(t, err)
}

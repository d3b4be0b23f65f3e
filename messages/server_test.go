package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioMessageCarriesMimeType(t *testing.T) {
	msg := NewAudioMessage("sid", "AAAA")

	assert.Equal(t, TypeAudio, msg.Type)
	payload, ok := msg.Payload.(AudioResponsePayload)
	require.True(t, ok)
	assert.Equal(t, "AAAA", payload.Data)
	assert.Equal(t, "audio/pcm;rate=24000", payload.MimeType)
}

func TestSpeakLocalMessage(t *testing.T) {
	msg := NewSpeakLocalMessage("sid", "hello", "en-US", 1.0, 1.05, []string{"Samantha"})

	assert.Equal(t, TypeSpeakLocal, msg.Type)
	payload, ok := msg.Payload.(SpeakLocalPayload)
	require.True(t, ok)
	assert.Equal(t, "hello", payload.Text)
	assert.Equal(t, "en-US", payload.Lang)
	assert.InDelta(t, 1.05, payload.Pitch, 1e-9)
	assert.Equal(t, []string{"Samantha"}, payload.PreferredVoices)
}

func TestTranscriptAndPendingMessages(t *testing.T) {
	tr := NewTranscriptMessage("sid", "assistant", "hi")
	assert.Equal(t, TypeTranscript, tr.Type)
	assert.Equal(t, TranscriptPayload{Role: "assistant", Text: "hi"}, tr.Payload)

	p := NewPendingMessage("sid", true)
	assert.Equal(t, TypePending, p.Type)
	assert.Equal(t, PendingPayload{Pending: true}, p.Payload)
}

package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/mindplanet/nova-gateway/audio"

	"google.golang.org/genai"
)

// SpeechClient synthesizes speech through the Gemini API. It is
// independent of ChatClient: a TTS failure must never touch the text path.
type SpeechClient struct {
	credential CredentialFunc
	model      string
	voice      string
	maxBytes   int

	mu     sync.Mutex
	key    string
	client *genai.Client
	closed bool
}

// NewSpeechClient creates a speech client with a fixed voice identifier.
func NewSpeechClient(credential CredentialFunc, model, voice string, maxBytes int) *SpeechClient {
	return &SpeechClient{
		credential: credential,
		model:      model,
		voice:      voice,
		maxBytes:   maxBytes,
	}
}

// ensure resolves the credential and rebuilds the underlying client when
// the key changed. Caller must hold s.mu.
func (s *SpeechClient) ensure(ctx context.Context) (*genai.Client, error) {
	if s.closed {
		return nil, ErrClosed
	}

	key := strings.TrimSpace(s.credential())
	if key == "" {
		return nil, ErrMissingCredential
	}

	if s.client == nil || key != s.key {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create GenAI client: %w", err)
		}
		s.client = client
		s.key = key
	}

	return s.client, nil
}

// Synthesize requests spoken audio for text and returns raw PCM bytes
// (16-bit LE, 24kHz, mono). The model may split one utterance across
// several inline-data parts; they are reassembled in order.
func (s *SpeechClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	s.mu.Lock()
	client, err := s.ensure(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: s.voice,
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(text), config)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	buffer := audio.NewChunkBuffer(s.maxBytes)
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			if err := buffer.Append(part.InlineData.Data); err != nil {
				return nil, fmt.Errorf("audio payload too large: %w", err)
			}
		}
	}

	pcm := buffer.Flush()
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}

	log.Printf("🔊 Synthesized %d bytes audio (%s, voice %s)", len(pcm), s.model, s.voice)
	return pcm, nil
}

// Close releases the client. Further calls return ErrClosed.
func (s *SpeechClient) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.client = nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 8081, cfg.APIPort)
	assert.Equal(t, 100, cfg.MaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "models/gemini-2.5-flash", cfg.ChatModel)
	assert.Equal(t, "models/gemini-2.5-flash-preview-tts", cfg.TTSModel)
	assert.Equal(t, "Aoede", cfg.TTSVoice)
	assert.True(t, cfg.SpeakReplies)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_PORT", "9091")
	t.Setenv("SESSION_TIMEOUT", "5")
	t.Setenv("REQUEST_TIMEOUT", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://mindplanet.app,http://localhost:5173")
	t.Setenv("TTS_VOICE", "Kore")
	t.Setenv("SPEAK_REPLIES", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 9091, cfg.APIPort)
	assert.Equal(t, 5*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://mindplanet.app", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "Kore", cfg.TTSVoice)
	assert.False(t, cfg.SpeakReplies)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "not-a-port"},
		{"bad max sessions", "MAX_SESSIONS", "many"},
		{"bad speak replies", "SPEAK_REPLIES", "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadWithoutCredentialSucceeds(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Credential())
}

func TestCredentialReadsCurrentEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "first-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "first-key", cfg.Credential())

	// A rotated key takes effect without reloading the config.
	t.Setenv("GEMINI_API_KEY", "second-key")
	assert.Equal(t, "second-key", cfg.Credential())
}

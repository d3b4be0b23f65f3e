package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all gateway configuration
type Config struct {
	Port            int // WebSocket chat server port
	APIPort         int // REST content API port
	RedisURL        string
	RedisPassword   string
	MaxSessions     int
	SessionTimeout  time.Duration
	AllowedOrigins  []string
	KeepAlivePeriod time.Duration
	RequestTimeout  time.Duration // Per outbound Gemini request
	MaxClipBytes    int           // Maximum synthesized audio clip size in bytes

	ChatModel    string
	TTSModel     string
	TTSVoice     string
	SpeakReplies bool // Hand assistant replies to the speech pipeline

	credentialEnv string
}

// Load reads configuration from environment variables with defaults
func Load() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:            8080,
		APIPort:         8081,
		RedisURL:        "localhost:6379",
		RedisPassword:   "",
		MaxSessions:     100,
		SessionTimeout:  30 * time.Minute,
		AllowedOrigins:  []string{"*"},
		KeepAlivePeriod: 30 * time.Second,
		RequestTimeout:  30 * time.Second,
		MaxClipBytes:    5 * 1024 * 1024, // 5MB default
		ChatModel:       "models/gemini-2.5-flash",
		TTSModel:        "models/gemini-2.5-flash-preview-tts",
		TTSVoice:        "Aoede",
		SpeakReplies:    true,
		credentialEnv:   "GEMINI_API_KEY",
	}

	// GEMINI_API_KEY is intentionally NOT required at startup. A missing
	// credential is a per-request condition surfaced to the user in the
	// transcript, so the gateway must boot without one.

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: API_PORT
	if apiPort := os.Getenv("API_PORT"); apiPort != "" {
		p, err := strconv.Atoi(apiPort)
		if err != nil {
			return nil, fmt.Errorf("invalid API_PORT: %w", err)
		}
		config.APIPort = p
	}

	// Optional: REDIS_URL
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: MAX_SESSIONS
	if maxSessions := os.Getenv("MAX_SESSIONS"); maxSessions != "" {
		m, err := strconv.Atoi(maxSessions)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SESSIONS: %w", err)
		}
		config.MaxSessions = m
	}

	// Optional: SESSION_TIMEOUT (in minutes)
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
		config.SessionTimeout = time.Duration(t) * time.Minute
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Optional: KEEPALIVE_PERIOD (in seconds)
	if keepalive := os.Getenv("KEEPALIVE_PERIOD"); keepalive != "" {
		k, err := strconv.Atoi(keepalive)
		if err != nil {
			return nil, fmt.Errorf("invalid KEEPALIVE_PERIOD: %w", err)
		}
		config.KeepAlivePeriod = time.Duration(k) * time.Second
	}

	// Optional: REQUEST_TIMEOUT (in seconds)
	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		config.RequestTimeout = time.Duration(t) * time.Second
	}

	// Optional: MAX_CLIP_BYTES
	if clipBytes := os.Getenv("MAX_CLIP_BYTES"); clipBytes != "" {
		b, err := strconv.Atoi(clipBytes)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_CLIP_BYTES: %w", err)
		}
		config.MaxClipBytes = b
	}

	// Optional: CHAT_MODEL
	if model := os.Getenv("CHAT_MODEL"); model != "" {
		config.ChatModel = model
	}

	// Optional: TTS_MODEL
	if model := os.Getenv("TTS_MODEL"); model != "" {
		config.TTSModel = model
	}

	// Optional: TTS_VOICE
	if voice := os.Getenv("TTS_VOICE"); voice != "" {
		config.TTSVoice = voice
	}

	// Optional: SPEAK_REPLIES ("true" / "false")
	if speak := os.Getenv("SPEAK_REPLIES"); speak != "" {
		s, err := strconv.ParseBool(speak)
		if err != nil {
			return nil, fmt.Errorf("invalid SPEAK_REPLIES: %w", err)
		}
		config.SpeakReplies = s
	}

	return config, nil
}

// Credential reads the Gemini API key from the environment. It is re-read on
// every call so a key rotated at runtime takes effect without a restart.
func (c *Config) Credential() string {
	return os.Getenv(c.credentialEnv)
}

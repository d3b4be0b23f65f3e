package messages

// Error codes
const (
	ErrCodeInvalidMessage    = "INVALID_MESSAGE"
	ErrCodeMissingCredential = "MISSING_CREDENTIAL"
	ErrCodeModelRejected     = "MODEL_REJECTED"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeSessionFailed     = "SESSION_FAILED"
)

// Message types
const (
	TypeTranscript = "transcript"
	TypePending    = "pending"
	TypeAudio      = "audio"
	TypeSpeakLocal = "speak_local"
	TypeStatus     = "status"
	TypeError      = "error"
)

// ServerMessage represents a message sent to the frontend client
type ServerMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Payload   interface{} `json:"payload"`
}

// TranscriptPayload carries one appended transcript entry
type TranscriptPayload struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// PendingPayload toggles the typing indicator and input lock
type PendingPayload struct {
	Pending bool `json:"pending"`
}

// AudioResponsePayload contains synthesized audio for client playback
type AudioResponsePayload struct {
	Data     string `json:"data"`     // Base64-encoded PCM audio
	MimeType string `json:"mimeType"` // "audio/pcm;rate=24000"
}

// SpeakLocalPayload tells the client to use its own speech synthesis
type SpeakLocalPayload struct {
	Text            string   `json:"text"`
	Lang            string   `json:"lang"`
	Rate            float64  `json:"rate"`
	Pitch           float64  `json:"pitch"`
	PreferredVoices []string `json:"preferredVoices,omitempty"`
}

// StatusPayload contains status updates
type StatusPayload struct {
	Status  string `json:"status"` // "connected", "pong", "reset", "disconnected"
	Message string `json:"message,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewTranscriptMessage creates a transcript append message
func NewTranscriptMessage(sessionID, role, text string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeTranscript,
		SessionID: sessionID,
		Payload: TranscriptPayload{
			Role: role,
			Text: text,
		},
	}
}

// NewPendingMessage creates a pending indicator message
func NewPendingMessage(sessionID string, pending bool) *ServerMessage {
	return &ServerMessage{
		Type:      TypePending,
		SessionID: sessionID,
		Payload: PendingPayload{
			Pending: pending,
		},
	}
}

// NewAudioMessage creates an audio playback message
func NewAudioMessage(sessionID, data string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeAudio,
		SessionID: sessionID,
		Payload: AudioResponsePayload{
			Data:     data,
			MimeType: "audio/pcm;rate=24000",
		},
	}
}

// NewSpeakLocalMessage tells the client to speak text with its local voice
func NewSpeakLocalMessage(sessionID, text, lang string, rate, pitch float64, preferred []string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeSpeakLocal,
		SessionID: sessionID,
		Payload: SpeakLocalPayload{
			Text:            text,
			Lang:            lang,
			Rate:            rate,
			Pitch:           pitch,
			PreferredVoices: preferred,
		},
	}
}

// NewStatusMessage creates a status message
func NewStatusMessage(sessionID, status, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeStatus,
		SessionID: sessionID,
		Payload: StatusPayload{
			Status:  status,
			Message: message,
		},
	}
}

// NewErrorMessage creates an error message
func NewErrorMessage(sessionID, code, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeError,
		SessionID: sessionID,
		Payload: ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}

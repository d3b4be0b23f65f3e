package session

import (
	"context"
	"encoding/base64"
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/mindplanet/nova-gateway/audio"
	"github.com/mindplanet/nova-gateway/config"
	"github.com/mindplanet/nova-gateway/conversation"
	"github.com/mindplanet/nova-gateway/gemini"
	"github.com/mindplanet/nova-gateway/messages"
	"github.com/mindplanet/nova-gateway/persona"
	"github.com/mindplanet/nova-gateway/speech"
)

const (
	writeBufferSize = 256
	writeTimeout    = 10 * time.Second
)

// ClientSession represents a single user's connection: one transcript,
// one speech pipeline, one WebSocket.
type ClientSession struct {
	ID           string
	ClientConn   *websocket.Conn
	Conversation *conversation.Controller
	Pipeline     *speech.Pipeline
	CreatedAt    time.Time
	LastActivity time.Time

	chat           *gemini.ChatClient
	tts            *gemini.SpeechClient
	requestTimeout time.Duration
	speakReplies   bool
	greeted        bool

	// Use channels for non-blocking writes
	writeChan chan any

	mu        sync.RWMutex
	closed    bool
	CloseChan chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClientSession creates a session wired to the Gemini chat and speech
// clients. No remote connection is made until the first message.
func NewClientSession(id string, clientConn *websocket.Conn, cfg *config.Config) *ClientSession {
	ctx, cancel := context.WithCancel(context.Background())

	clientConn.SetReadLimit(64 * 1024) // text frames only
	clientConn.EnableWriteCompression(true)
	clientConn.SetCompressionLevel(6)

	chat := gemini.NewChatClient(cfg.Credential, cfg.ChatModel, persona.SystemInstruction())
	tts := gemini.NewSpeechClient(cfg.Credential, cfg.TTSModel, cfg.TTSVoice, cfg.MaxClipBytes)

	cs := &ClientSession{
		ID:             id,
		ClientConn:     clientConn,
		CreatedAt:      time.Now(),
		LastActivity:   time.Now(),
		chat:           chat,
		tts:            tts,
		requestTimeout: cfg.RequestTimeout,
		speakReplies:   cfg.SpeakReplies,
		writeChan:      make(chan any, writeBufferSize),
		CloseChan:      make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}

	cs.Conversation = conversation.New(chat, persona.Greeting, persona.Filler)
	cs.Conversation.OnAppend = func(msg conversation.Message) {
		cs.queueMessage(messages.NewTranscriptMessage(cs.ID, string(msg.Role), msg.Text))
	}
	cs.Conversation.OnPending = func(pending bool) {
		cs.queueMessage(messages.NewPendingMessage(cs.ID, pending))
	}

	// The session is both the playback sink and the local-speech fallback:
	// decoded audio goes to the client as base64 frames, fallback speech as
	// a speak_local directive.
	cs.Pipeline = speech.NewPipeline(tts, cs, cs, speech.DefaultVoiceOptions(), cfg.RequestTimeout)

	return cs
}

// Start begins the bidirectional message handling
func (cs *ClientSession) Start() {
	go cs.writePump()
	cs.queueMessage(messages.NewStatusMessage(cs.ID, "connected", "Session established"))
	cs.sendTranscript()
	go cs.handleClientMessages()
}

// sendTranscript replays the full transcript to the client.
func (cs *ClientSession) sendTranscript() {
	for _, msg := range cs.Conversation.Messages() {
		cs.queueMessage(messages.NewTranscriptMessage(cs.ID, string(msg.Role), msg.Text))
	}
}

// Play implements speech.Sink: decoded audio is shipped to the client as
// a base64 frame for playback in the browser.
func (cs *ClientSession) Play(clip *audio.Clip) error {
	encoded := base64.StdEncoding.EncodeToString(clip.Raw)
	cs.queueMessage(messages.NewAudioMessage(cs.ID, encoded))
	return nil
}

// SpeakLocal implements speech.Synthesizer: the client is told to speak
// the text with its own voice when remote synthesis fails.
func (cs *ClientSession) SpeakLocal(text string, voice speech.VoiceOptions) error {
	cs.queueMessage(messages.NewSpeakLocalMessage(
		cs.ID, text, voice.Lang, voice.Rate, voice.Pitch, voice.PreferredVoices))
	return nil
}

// writePump handles all outgoing messages in a single goroutine
func (cs *ClientSession) writePump() {
	defer func() {
		// Send close message before exiting
		cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
		cs.ClientConn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
	}()

	for {
		select {
		case <-cs.CloseChan:
			return
		case msg := <-cs.writeChan:
			if err := cs.writeFrame(msg); err != nil {
				return
			}

			n := len(cs.writeChan)
			for i := 0; i < n; i++ {
				select {
				case msg := <-cs.writeChan:
					if err := cs.writeFrame(msg); err != nil {
						return
					}
				default:
					// No more messages, continue outer loop
				}
			}
		}
	}
}

func (cs *ClientSession) writeFrame(msg any) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		log.Printf("❌ [%s] Failed to marshal frame: %v", cs.ID[:8], err)
		return nil // malformed frame, skip it rather than killing the pump
	}
	cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return cs.ClientConn.WriteMessage(websocket.TextMessage, data)
}

// queueMessage adds a message to the write queue (non-blocking)
func (cs *ClientSession) queueMessage(msg any) {
	cs.mu.RLock()
	closed := cs.closed
	cs.mu.RUnlock()
	if closed {
		return
	}
	select {
	case cs.writeChan <- msg:
		cs.mu.Lock()
		cs.LastActivity = time.Now()
		cs.mu.Unlock()
	default:
		// Queue full, drop message (shouldn't happen with proper sizing)
	}
}

func (cs *ClientSession) handleClientMessages() {
	defer cs.Close()

	for {
		select {
		case <-cs.CloseChan:
			return
		default:
			_, message, err := cs.ClientConn.ReadMessage()
			if err != nil {
				if !cs.IsClosed() {
					log.Printf("🔌 [%s] WebSocket read ended: %v", cs.ID[:8], err)
				}
				return
			}

			cs.mu.Lock()
			cs.LastActivity = time.Now()
			cs.mu.Unlock()

			clientMsg, err := messages.ParseClientMessage(message)
			if err != nil {
				cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, err.Error()))
				continue
			}

			cs.processClientMessage(clientMsg)
		}
	}
}

func (cs *ClientSession) processClientMessage(msg *messages.ClientMessage) {
	switch msg.Type {
	case messages.ClientTypeMessage:
		// Run the turn off the read loop so control frames keep flowing
		// while the request is in flight. The controller drops sends that
		// arrive while one is pending.
		go cs.handleSend(msg.Message.Text)

	case messages.ClientTypeControl:
		cs.handleControlMessage(msg.Control)
	}
}

// handleSend runs one conversation turn and hands the reply to the
// speech pipeline when it succeeded.
func (cs *ClientSession) handleSend(text string) {
	ctx, cancel := context.WithTimeout(cs.ctx, cs.requestTimeout)
	defer cancel()

	outcome := cs.Conversation.SendUserMessage(ctx, text)
	if !outcome.Accepted {
		return
	}

	if outcome.Failed {
		cs.queueMessage(messages.NewErrorMessage(cs.ID, errCodeForKind(outcome.Kind), outcome.Reply.Text))
		return
	}

	if cs.speakReplies {
		cs.Pipeline.Speak(cs.ctx, outcome.Reply.Text)
	}
}

func (cs *ClientSession) handleControlMessage(payload *messages.ControlPayload) {
	switch payload.Action {
	case messages.ActionPanelOpen:
		// First user gesture on the chat panel unlocks audio output and
		// triggers the spoken greeting, once per session.
		cs.Pipeline.EnsureOutput()
		cs.mu.Lock()
		first := !cs.greeted
		cs.greeted = true
		cs.mu.Unlock()
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "ready", "Audio output unlocked"))
		if first && cs.speakReplies {
			cs.Pipeline.Speak(cs.ctx, persona.Greeting)
		}

	case messages.ActionReset:
		cs.Pipeline.Stop()
		cs.Conversation.Reset()
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "reset", ""))
		cs.sendTranscript()

	case messages.ActionPing:
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "pong", ""))
	}
}

func errCodeForKind(kind gemini.ErrorKind) string {
	switch kind {
	case gemini.KindMissingCredential:
		return messages.ErrCodeMissingCredential
	case gemini.KindRejected:
		return messages.ErrCodeModelRejected
	default:
		return messages.ErrCodeNetworkError
	}
}

// IsClosed returns whether the session is closed
func (cs *ClientSession) IsClosed() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.closed
}

// Close terminates the session and cleans up resources
func (cs *ClientSession) Close() error {
	cs.mu.Lock()
	if cs.closed {
		cs.mu.Unlock()
		return nil
	}
	cs.closed = true
	cs.mu.Unlock()

	cs.cancel()

	// Signal close; writePump exits on CloseChan. The write channel is
	// never closed so a queueMessage racing this never hits a closed
	// channel; a late buffered frame is simply dropped with the session.
	close(cs.CloseChan)

	cs.Pipeline.Close()
	cs.chat.Close()
	cs.tts.Close()

	// Close client connection - don't write close message as writePump is stopped
	if cs.ClientConn != nil {
		cs.ClientConn.Close()
	}

	return nil
}

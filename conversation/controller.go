// Package conversation owns the chat transcript and turn sequencing with
// the text-generation service: user turn, pending, assistant turn.
package conversation

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/mindplanet/nova-gateway/gemini"
)

// Role tags a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. The transcript is append-only for the
// life of a session; insertion order is display order.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Responder produces one assistant reply per user message. An empty reply
// with a nil error means the model answered without usable text.
type Responder interface {
	Reply(ctx context.Context, text string) (string, error)
	Reset()
}

// Outcome reports what SendUserMessage did.
type Outcome struct {
	Accepted bool             // false: empty input or a send was already pending
	Reply    Message          // the assistant entry appended (model text, filler, or failure text)
	Failed   bool             // true when Reply describes a failure
	Kind     gemini.ErrorKind // failure category when Failed
}

// Failure texts by category. Plain language, assistant-styled, so the
// transcript explains the problem instead of the UI crashing.
const (
	textMissingCredential = "I can't connect right now: the gateway has no API key configured. Please add a Gemini credential and send your message again."
	textRejected          = "My connection was rejected. The configured API key or model looks invalid; please check the gateway configuration before retrying."
	textTransient         = "Sorry, something went wrong. Please try again."
)

// Controller manages turn-taking for a single session. At most one send
// is in flight at a time; a send attempted while pending is dropped.
type Controller struct {
	responder Responder
	greeting  string
	filler    string

	mu       sync.Mutex
	messages []Message
	pending  bool

	// Optional callbacks, set before first use. Invoked in append order.
	OnAppend  func(Message)
	OnPending func(bool)
}

// New creates a controller whose transcript starts with the canned greeting.
func New(responder Responder, greeting, filler string) *Controller {
	return &Controller{
		responder: responder,
		greeting:  greeting,
		filler:    filler,
		messages:  []Message{{Role: RoleAssistant, Text: greeting}},
	}
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending reports whether a send is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// SendUserMessage runs one full turn: it appends the user message
// immediately (kept regardless of network outcome), issues the request,
// and appends exactly one assistant entry when the request resolves.
// Empty input, or a call while another send is pending, is a no-op.
// Pending is cleared on every exit path, including a panicking responder.
func (c *Controller) SendUserMessage(ctx context.Context, text string) Outcome {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Outcome{}
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return Outcome{}
	}
	c.pending = true
	userMsg := Message{Role: RoleUser, Text: trimmed}
	c.messages = append(c.messages, userMsg)
	c.mu.Unlock()

	c.notifyAppend(userMsg)
	c.notifyPending(true)

	assistant, failed, kind := c.resolve(ctx, trimmed)

	c.mu.Lock()
	c.messages = append(c.messages, assistant)
	c.pending = false
	c.mu.Unlock()

	c.notifyAppend(assistant)
	c.notifyPending(false)

	return Outcome{Accepted: true, Reply: assistant, Failed: failed, Kind: kind}
}

// resolve issues the request and maps its outcome to one assistant entry.
// Nothing escapes this boundary.
func (c *Controller) resolve(ctx context.Context, text string) (assistant Message, failed bool, kind gemini.ErrorKind) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Responder panic: %v", r)
			assistant = Message{Role: RoleAssistant, Text: textTransient}
			failed = true
			kind = gemini.KindTransient
		}
	}()

	reply, err := c.responder.Reply(ctx, text)
	if err != nil {
		log.Printf("❌ Send failed: %v", err)
		kind = gemini.KindOf(err)
		return Message{Role: RoleAssistant, Text: failureText(kind)}, true, kind
	}
	if reply == "" {
		return Message{Role: RoleAssistant, Text: c.filler}, false, gemini.KindNone
	}
	return Message{Role: RoleAssistant, Text: reply}, false, gemini.KindNone
}

// Reset clears the transcript back to the greeting and drops the remote
// chat handle so the next send starts a fresh context. A send resolving
// concurrently appends its assistant entry after the reset.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.messages = []Message{{Role: RoleAssistant, Text: c.greeting}}
	c.mu.Unlock()
	c.responder.Reset()
}

func failureText(kind gemini.ErrorKind) string {
	switch kind {
	case gemini.KindMissingCredential:
		return textMissingCredential
	case gemini.KindRejected:
		return textRejected
	default:
		return textTransient
	}
}

func (c *Controller) notifyAppend(msg Message) {
	if c.OnAppend != nil {
		c.OnAppend(msg)
	}
}

func (c *Controller) notifyPending(pending bool) {
	if c.OnPending != nil {
		c.OnPending(pending)
	}
}

package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// CredentialFunc resolves the API key. It is invoked on every request so a
// key rotated in the environment takes effect without restarting the gateway.
type CredentialFunc func() string

// ChatClient wraps a server-held multi-turn Gemini chat. The remote
// session handle keeps conversation context on the API side, so each turn
// sends only the newest message.
type ChatClient struct {
	credential CredentialFunc
	model      string
	system     string

	mu     sync.Mutex
	key    string // key the underlying client was built with
	client *genai.Client
	chat   *genai.Chat
	closed bool
}

// NewChatClient creates a chat client. No connection is made until the
// first Reply call.
func NewChatClient(credential CredentialFunc, model, systemInstruction string) *ChatClient {
	return &ChatClient{
		credential: credential,
		model:      model,
		system:     systemInstruction,
	}
}

// ensure resolves the credential and lazily builds the underlying client
// and chat handle. A changed key drops both so the next turn starts fresh
// with the new credential. Caller must hold c.mu.
func (c *ChatClient) ensure(ctx context.Context) (*genai.Chat, error) {
	if c.closed {
		return nil, ErrClosed
	}

	key := strings.TrimSpace(c.credential())
	if key == "" {
		return nil, ErrMissingCredential
	}

	if c.client == nil || key != c.key {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create GenAI client: %w", err)
		}
		c.client = client
		c.key = key
		c.chat = nil
	}

	if c.chat == nil {
		config := &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{
					{Text: c.system},
				},
			},
		}
		chat, err := c.client.Chats.Create(ctx, c.model, config, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat session: %w", err)
		}
		c.chat = chat
		log.Printf("✅ Chat session created (%s)", c.model)
	}

	return c.chat, nil
}

// Reply sends one user message and returns the assistant text. An empty
// string with a nil error means the model answered without usable text;
// callers substitute their own filler. Errors are classified with KindOf.
func (c *ChatClient) Reply(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	chat, err := c.ensure(ctx)
	if err != nil {
		c.mu.Unlock()
		return "", err
	}
	c.mu.Unlock()

	resp, err := chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return extractText(resp), nil
}

// Reset drops the server-held chat handle so the next Reply starts a
// fresh conversation context.
func (c *ChatClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chat = nil
}

// Close releases the client. Further calls return ErrClosed.
func (c *ChatClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.chat = nil
	c.client = nil
}

// extractText concatenates the text parts of every candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(text.String())
}

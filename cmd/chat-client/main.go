// Interactive terminal client for the gateway. Type a message, read
// Nova's reply, and hear it through sox when audio frames arrive.
package main

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"sync"

	"github.com/gorilla/websocket"
)

// Message types matching the server
type ClientMessage struct {
	Type    string          `json:"type"`
	Message *TextPayload    `json:"message,omitempty"`
	Control *ControlPayload `json:"control,omitempty"`
}

type TextPayload struct {
	Text string `json:"text"`
}

type ControlPayload struct {
	Action string `json:"action"`
}

type ServerMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type TranscriptPayload struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type PendingPayload struct {
	Pending bool `json:"pending"`
}

type AudioResponsePayload struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type SpeakLocalPayload struct {
	Text string  `json:"text"`
	Lang string  `json:"lang"`
	Rate float64 `json:"rate"`
}

type StatusPayload struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// AudioPlayer streams raw PCM audio via sox
type AudioPlayer struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	mu     sync.Mutex
	closed bool
}

func NewAudioPlayer() *AudioPlayer {
	cmd := exec.Command("sox",
		"-t", "raw",
		"-r", "24000",
		"-b", "16",
		"-c", "1",
		"-e", "signed-integer",
		"-",
		"-d",
	)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		log.Println("sox stdin error:", err)
		return nil
	}

	if err := cmd.Start(); err != nil {
		log.Println("sox start error:", err)
		return nil
	}

	return &AudioPlayer{cmd: cmd, stdin: stdin}
}

func (p *AudioPlayer) Play(audioData []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.stdin == nil {
		return
	}
	p.stdin.Write(audioData)
}

func (p *AudioPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if p.stdin != nil {
		p.stdin.Close()
	}
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Wait()
	}
}

// speakLocal mirrors the browser's speechSynthesis fallback with the
// platform's speech command. Best effort; errors are only logged.
func speakLocal(text string) {
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.Command("say", text)
	} else {
		cmd = exec.Command("espeak", text)
	}
	if err := cmd.Run(); err != nil {
		log.Printf("⚠️ Local speech unavailable: %v", err)
	}
}

func main() {
	// Flags
	serverURL := flag.String("server", "ws://localhost:8080/ws", "WebSocket server URL")
	mute := flag.Bool("mute", false, "Skip audio playback")
	flag.Parse()

	log.Printf("🔌 Connecting to %s...", *serverURL)

	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	log.Println("✅ Connected!")

	var player *AudioPlayer
	if !*mute {
		player = NewAudioPlayer()
		if player == nil {
			log.Println("⚠️ No audio player (is sox installed?), continuing muted")
		} else {
			defer player.Close()
		}
	}

	// Handle interrupt
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})

	// Read responses from server
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var msg ServerMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Println("Parse error:", err)
				continue
			}

			switch msg.Type {
			case "transcript":
				var payload TranscriptPayload
				json.Unmarshal(msg.Payload, &payload)
				if payload.Role == "assistant" {
					fmt.Printf("\n🪐 Nova: %s\n> ", payload.Text)
				}

			case "pending":
				var payload PendingPayload
				json.Unmarshal(msg.Payload, &payload)
				if payload.Pending {
					fmt.Print("…")
				}

			case "audio":
				var payload AudioResponsePayload
				json.Unmarshal(msg.Payload, &payload)
				audioBytes, err := base64.StdEncoding.DecodeString(payload.Data)
				if err == nil && player != nil {
					log.Printf("🔊 Playing audio: %d bytes", len(audioBytes))
					player.Play(audioBytes)
				}

			case "speak_local":
				var payload SpeakLocalPayload
				json.Unmarshal(msg.Payload, &payload)
				if !*mute {
					go speakLocal(payload.Text)
				}

			case "status":
				var payload StatusPayload
				json.Unmarshal(msg.Payload, &payload)
				log.Printf("📊 Status: %s %s", payload.Status, payload.Message)

			case "error":
				log.Printf("❌ Error: %s", string(msg.Payload))
			}
		}
	}()

	// Opening the terminal counts as the user gesture that unlocks audio.
	conn.WriteJSON(ClientMessage{Type: "control", Control: &ControlPayload{Action: "panel_open"}})

	// Read stdin lines and send them as chat messages
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("> ")
		for scanner.Scan() {
			text := scanner.Text()
			if text == "/reset" {
				conn.WriteJSON(ClientMessage{Type: "control", Control: &ControlPayload{Action: "reset"}})
				fmt.Print("> ")
				continue
			}
			if text == "/quit" {
				interrupt <- os.Interrupt
				return
			}
			conn.WriteJSON(ClientMessage{Type: "message", Message: &TextPayload{Text: text}})
		}
	}()

	select {
	case <-done:
		log.Println("Connection closed")
	case <-interrupt:
		log.Println("\n👋 Interrupted, closing...")
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

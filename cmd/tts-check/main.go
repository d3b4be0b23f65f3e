// Synthesizes one line of text through the Gemini speech model and
// writes the result as a WAV file. Quick credential and voice check.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/mindplanet/nova-gateway/audio"
	"github.com/mindplanet/nova-gateway/gemini"
)

func main() {
	text := flag.String("text", "Hi! I am Nova. How are you feeling today?", "Text to synthesize")
	model := flag.String("model", "models/gemini-2.5-flash-preview-tts", "TTS model")
	voice := flag.String("voice", "Aoede", "Voice name")
	out := flag.String("out", "nova.wav", "Output WAV file")
	flag.Parse()

	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}

	tts := gemini.NewSpeechClient(func() string {
		return os.Getenv("GEMINI_API_KEY")
	}, *model, *voice, 10*1024*1024)
	defer tts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pcm, err := tts.Synthesize(ctx, *text)
	if err != nil {
		log.Fatalf("Failed to synthesize: %v", err)
	}

	clip, err := audio.DecodePCM16(pcm, 1)
	if err != nil {
		log.Fatalf("Failed to decode audio: %v", err)
	}
	log.Printf("🎧 Decoded %d frames (%.2fs at %d Hz)",
		clip.FrameCount(), clip.Duration().Seconds(), clip.SampleRate)

	wav, err := audio.EncodeWAV(clip)
	if err != nil {
		log.Fatalf("Failed to encode WAV: %v", err)
	}

	if err := os.WriteFile(*out, wav, 0o644); err != nil {
		log.Fatalf("Failed to write file: %v", err)
	}
	log.Printf("✅ Wrote %s (%d bytes)", *out, len(wav))
}

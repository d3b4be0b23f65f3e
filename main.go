package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mindplanet/nova-gateway/config"
	"github.com/mindplanet/nova-gateway/server"
	"github.com/mindplanet/nova-gateway/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Create session manager
	sessionManager, err := session.NewManager(cfg)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// Start cleanup routine
	ctx, cancel := context.WithCancel(context.Background())
	go sessionManager.StartCleanupRoutine(ctx)

	wsSrv := server.NewServerWebsocket(cfg, sessionManager)
	apiSrv := server.NewAPIServer(cfg)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\nReceived shutdown signal...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Content API shutdown error: %v", err)
		}
		if err := wsSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("WebSocket server shutdown error: %v", err)
		}
	}()

	// Start content API in background
	go func() {
		if err := apiSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Content API error: %v", err)
		}
	}()

	// Start WebSocket server (blocks)
	if err := wsSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("WebSocket server error: %v", err)
	}

	log.Println("Server stopped")
}

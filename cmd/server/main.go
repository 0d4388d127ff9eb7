package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/tamim-18/medical-healthcare/api/http"
	"github.com/tamim-18/medical-healthcare/internal/config"
	"github.com/tamim-18/medical-healthcare/internal/gateway"
	"github.com/tamim-18/medical-healthcare/internal/httpserver"
	"github.com/tamim-18/medical-healthcare/internal/live"
	"github.com/tamim-18/medical-healthcare/internal/storage"
	"github.com/tamim-18/medical-healthcare/internal/tts"
)

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := config.Load()

	var gw gateway.Gateway
	if g, err := gateway.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		log.Printf("gemini gateway disabled: %v", err)
	} else {
		gw = g
	}

	var speech tts.Synthesizer
	if cfg.DeepgramAPIKey != "" {
		speech = tts.NewDeepgramClient(cfg.DeepgramAPIKey, cfg.DeepgramModel)
	}

	var archive storage.Archive
	if s, err := storage.New(storage.Config{
		URL:            cfg.SupabaseURL,
		ServiceRoleKey: cfg.SupabaseServiceKey,
		Bucket:         cfg.SupabaseBucket,
	}); err != nil {
		log.Printf("report archiving disabled: %v", err)
	} else {
		archive = s
	}

	var liveHandler *live.Handler
	if gw != nil {
		liveHandler = live.NewHandler(gw, cfg.AuthPassword, cfg.QuietInterval)
	}

	e := httpserver.New()
	api.NewHandlers(gw, speech, archive, liveHandler).Register(e)

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in background
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddress)
		serverErrors <- server.ListenAndServe()
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("shutdown signal received: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = server.Close()
	}
}

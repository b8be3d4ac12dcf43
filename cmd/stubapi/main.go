// Command stubapi runs the in-memory stand-in for the hosted backend, for
// local development of the site against a predictable API.
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

	"github.com/joho/godotenv"

	"github.com/pixelcraftlabs/site-gateway/internal/stubapi"
)

func main() {
	// Best-effort: load environment variables from .env-style files in
	// local development.
	_ = godotenv.Load(
		"../.env",
		".env",
	)

	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":18230"
	}

	stub := stubapi.New(stubapi.Options{
		AdminToken:         os.Getenv("STUB_ADMIN_TOKEN"),
		RazorpayConfigured: os.Getenv("STUB_RAZORPAY_CONFIGURED") != "false",
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      stub.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
		}
	}()

	log.Printf("stub backend starting on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server exited with error: %v", err)
		os.Exit(1)
	}
}

/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and wires the plan
generators and the chat relay to their routes.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"FitPlanner/internal/config"
	"FitPlanner/internal/geminiservice"
	"FitPlanner/internal/session"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	cfg *config.Config

	// gemini relays chat conversations and memoizes replies.
	gemini *geminiservice.Client

	// sessions owns one conversation per browser session.
	sessions *session.Store

	startTime time.Time
}

// New builds the Server and its dependencies from cfg.
func New(cfg *config.Config) (*Server, error) {
	gemini, err := geminiservice.NewClient(geminiservice.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		Timeout:    cfg.GeminiTimeout,
		MaxRetries: cfg.GeminiMaxRetries,
		Backoff:    cfg.GeminiBackoff,
		CacheSize:  cfg.ChatCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	sessions, err := session.NewStore(session.Options{
		Secret:      cfg.SessionSecret,
		Secure:      cfg.IsProduction(),
		MaxSessions: cfg.ChatMaxSessions,
		MaxTurns:    cfg.ChatMaxTurns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	return &Server{
		port:      port,
		cfg:       cfg,
		gemini:    gemini,
		sessions:  sessions,
		startTime: time.Now(),
	}, nil
}

// NewServer initializes a new Server instance and returns a configured *http.Server.
func NewServer(cfg *config.Config) (*http.Server, error) {
	newApp, err := New(cfg)
	if err != nil {
		return nil, err
	}

	// A chat request may wait through every Gemini retry before answering.
	writeTimeout := newApp.gemini.MaxCallDuration() + 10*time.Second

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newApp.port),
		Handler:      newApp.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
	}

	return server, nil
}

// Package server provides the HTTP REST API for the CV anonymizer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmartel/cv-anonymizer/internal/config"
	"github.com/jmartel/cv-anonymizer/internal/pipeline"
	"github.com/jmartel/cv-anonymizer/internal/server/middleware"
	"github.com/jmartel/cv-anonymizer/internal/server/ratelimit"
)

// Config holds server configuration
type Config struct {
	Port        int
	APIKey      string
	DatabaseURL string
	AssetsDir   string
	UploadDir   string
	Verbose     bool
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         Config
	jobs        *jobStore
	validate    *validator.Validate
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService

	// queue feeds the single background worker; runSlot serializes
	// pipeline execution between the worker and streaming requests
	queue   chan uuid.UUID
	runSlot chan struct{}
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.UploadDir == "" {
		dir, err := os.MkdirTemp("", "cv_anonymizer_uploads_")
		if err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
		cfg.UploadDir = dir
	} else if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		jobs:     newJobStore(),
		validate: validator.New(),
		queue:    make(chan uuid.UUID, 16),
		runSlot:  make(chan struct{}, 1),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Token auth protects the conversion routes. Without JWT_SECRET the
	// API runs open, which is acceptable for local use only.
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
		fmt.Printf("Continuing without API authentication...\n")
	} else {
		s.jwtService = NewJWTService(jwtConfig)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.Handle("POST /convert", s.withAuth(http.HandlerFunc(s.handleConvert)))
	mux.Handle("POST /convert/stream", s.withAuth(http.HandlerFunc(s.handleConvertStream)))
	mux.HandleFunc("GET /status/{id}", s.handleStatus)
	mux.HandleFunc("GET /download/{id}", s.handleDownload)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for streaming conversions
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and runs the conversion worker
// until an interrupt arrives
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.runWorker(gCtx)
		return nil
	})

	<-gCtx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}

// runWorker drains the queue, converting one document at a time
func (s *Server) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case jobID := <-s.queue:
			s.runSlot <- struct{}{}
			s.runJob(ctx, jobID)
			<-s.runSlot
		}
	}
}

// runJob executes the pipeline for a queued job and records the outcome
func (s *Server) runJob(ctx context.Context, jobID uuid.UUID) {
	job := s.jobs.Get(jobID)
	if job == nil {
		return
	}

	s.jobs.SetRunning(jobID)
	log.Printf("[worker] Starting conversion %s (%s)", jobID, job.InputName)

	written, err := pipeline.Run(ctx, pipeline.Options{
		InputPath:   job.inputPath,
		OutputPath:  s.outputPathFor(jobID),
		Style:       job.Style,
		Format:      job.Format,
		APIKey:      s.cfg.APIKey,
		DatabaseURL: s.cfg.DatabaseURL,
		AssetsDir:   s.cfg.AssetsDir,
		Verbose:     s.cfg.Verbose,
		OnProgress: func(event pipeline.ProgressEvent) {
			s.jobs.SetProgress(jobID, event)
		},
	})
	if err != nil {
		log.Printf("[worker] Conversion %s failed: %v", jobID, err)
		s.jobs.SetFailed(jobID, err.Error(), failureHint(err))
		return
	}

	s.jobs.SetCompleted(jobID, written)
	log.Printf("[worker] Conversion %s completed: %s", jobID, written)
}

// outputPathFor places generated documents in the upload directory,
// keyed by job so downloads cannot collide
func (s *Server) outputPathFor(jobID uuid.UUID) string {
	return fmt.Sprintf("%s/cv_anonyme_%s.pdf", s.cfg.UploadDir, jobID)
}

// withAuth protects a handler with bearer token validation when a JWT
// service is configured
func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			// Set rate limit headers
			s.setRateLimitHeaders(w, info)
			// Return 429 Too Many Requests
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	// Log rate limit hit
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

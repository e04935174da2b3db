// Package server provides the HTTP API for interview question generation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"

	"github.com/yaswanth-142004/EZ-Search/internal/logging"
	"github.com/yaswanth-142004/EZ-Search/internal/pipeline"
	"github.com/yaswanth-142004/EZ-Search/internal/server/ratelimit"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// Generator runs one curated question generation.
type Generator interface {
	Generate(ctx context.Context, ic types.InterviewContext) (*types.CuratedResult, *pipeline.State, error)
}

// GeneratorFactory builds a Generator that reports progress to onProgress.
// onProgress is nil for non-streaming requests.
type GeneratorFactory func(onProgress pipeline.ProgressCallback) Generator

// DSALookup resolves a company's DSA questions.
type DSALookup interface {
	Lookup(company string) (map[string][]types.DSAQuestion, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	newGenerator GeneratorFactory
	dsa          DSALookup
	rateLimiter  *ratelimit.Limiter
	log          *logging.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	Generator GeneratorFactory
	// DSA may be nil when the table failed to load; its endpoint then answers 503.
	DSA DSALookup
	// RateLimit is nil to disable per-client limiting.
	RateLimit *ratelimit.Config
	Logger    *logging.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("server requires a generator")
	}

	s := &Server{
		newGenerator: cfg.Generator,
		dsa:          cfg.DSA,
		rateLimiter:  ratelimit.NewLimiter(cfg.RateLimit),
		log:          logging.OrNop(cfg.Logger),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for harvest + LLM
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /generate_interview_questions", s.handleGenerateInterviewQuestions)
	mux.HandleFunc("POST /generate_interview_questions/stream", s.handleGenerateInterviewQuestionsStream)
	mux.HandleFunc("POST /generate_dsa_questions", s.handleGenerateDSAQuestions)

	return s.withRequestID(s.withLogging(s.withRecover(s.withCORS(s.withRateLimit(mux)))))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

// withRequestID propagates or assigns X-Request-Id
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.log.Info("http request",
			"request_id", requestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration_ms", m.Duration.Milliseconds(),
		)
	})
}

// withRecover turns a handler panic into a 500
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic recovered",
					"request_id", requestID(r.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				s.errorResponse(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID identifies the caller by the IP in RemoteAddr.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimitResponse writes a 429 with a Retry-After hint.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	retryAfter := max(int(info.RetryAfter.Round(time.Second)/time.Second), 1)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	s.log.Warn("rate limit exceeded",
		"request_id", requestID(r.Context()),
		"client", clientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"retry_after_s", retryAfter,
	)
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate limit exceeded",
		"retry_after": retryAfter,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

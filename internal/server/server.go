// Package server provides the HTTP REST API for the application tracker.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/application-tracker/internal/config"
	"github.com/jonathan/application-tracker/internal/schemas"
	"github.com/jonathan/application-tracker/internal/server/middleware"
	"github.com/jonathan/application-tracker/internal/server/ratelimit"
	"github.com/jonathan/application-tracker/internal/store"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	applications store.ApplicationStore
	validator    *schemas.Validator
	rateLimiter  *ratelimit.Limiter
	authHandler  *AuthHandler
	corsOrigin   string
}

// Config holds server configuration
type Config struct {
	Port              int
	CORSAllowedOrigin string
}

// Deps are the collaborators a Server is built from. Stores are injected, never global.
type Deps struct {
	Applications store.ApplicationStore
	Identities   store.IdentityStore
	Validator    *schemas.Validator
	JWT          *JWTService
	Passwords    *config.PasswordConfig
	RateLimiter  *ratelimit.Limiter // nil disables rate limiting
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	switch {
	case deps.Applications == nil:
		return nil, fmt.Errorf("application store is required")
	case deps.Identities == nil:
		return nil, fmt.Errorf("identity store is required")
	case deps.JWT == nil:
		return nil, fmt.Errorf("JWT service is required")
	case deps.Passwords == nil:
		return nil, fmt.Errorf("password config is required")
	}

	if deps.Validator == nil {
		v, err := schemas.NewValidator()
		if err != nil {
			return nil, fmt.Errorf("failed to load request schemas: %w", err)
		}
		deps.Validator = v
	}
	if deps.RateLimiter == nil {
		deps.RateLimiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	if cfg.CORSAllowedOrigin == "" {
		cfg.CORSAllowedOrigin = config.DefaultCORSAllowedOrigin
	}

	s := &Server{
		applications: deps.Applications,
		validator:    deps.Validator,
		rateLimiter:  deps.RateLimiter,
		corsOrigin:   cfg.CORSAllowedOrigin,
	}

	userService := NewUserService(deps.Identities, deps.Passwords)
	s.authHandler = NewAuthHandler(userService, deps.JWT, deps.Validator)

	r := chi.NewRouter()
	r.Use(s.withLogging, s.withCORS, s.withRateLimit)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		errorResponse(w, http.StatusNotFound, "Not found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	})

	r.Get("/health", s.handleHealth)
	r.Get("/api/schemas/{name}", s.handleGetSchema)
	r.Post("/api/auth/register", s.authHandler.Register)
	r.Post("/api/auth/login", s.authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(deps.JWT.AsTokenValidator()))

		r.Get("/api/auth/user", s.authHandler.CurrentUser)
		r.Put("/api/auth/password", s.authHandler.UpdatePassword)

		r.Get("/api/applications", s.handleListApplications)
		r.Post("/api/applications", s.handleCreateApplication)
		r.Get("/api/applications/{id}", s.handleGetApplication)
		r.Put("/api/applications/{id}", s.handleUpdateApplication)
		r.Delete("/api/applications/{id}", s.handleDeleteApplication)

		r.Post("/api/interviews", s.handleCreateInterview)
		r.Delete("/api/interviews/{id}", s.handleDeleteInterview)

		r.Get("/api/stats", s.handleStats)
	})

	s.handler = r
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d completed in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// readBody reads a request body of at most maxRequestBodySize bytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &ErrValidation{Message: "Invalid request body"}
	}
	return body, nil
}

// requireIdentity returns the caller's identity, answering 401 when the request was not authenticated.
func requireIdentity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized", "")
	}
	return identity, ok
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
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
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", "")
}

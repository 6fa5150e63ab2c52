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
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-roadmap/internal/config"
	"github.com/jonathan/career-roadmap/internal/db"
	"github.com/jonathan/career-roadmap/internal/pipeline"
	"github.com/jonathan/career-roadmap/internal/server/ratelimit"
	"github.com/jonathan/career-roadmap/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	apiKey       string
	searchAPIKey string
	searchCX     string
	databaseURL  string
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	validate     *validator.Validate

	// runPipeline is swappable for tests.
	runPipeline func(ctx context.Context, opts pipeline.RunOptions) (*types.RoadmapReport, error)
}

// Config holds server configuration
type Config struct {
	Port         int
	APIKey       string
	SearchAPIKey string
	SearchCX     string
	DatabaseURL  string

	// RequireAuth enables bearer token authentication on /v1 routes.
	// It requires JWT_SECRET to be set.
	RequireAuth bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("an LLM API key is required to serve roadmap requests")
	}

	s := &Server{
		apiKey:       cfg.APIKey,
		searchAPIKey: cfg.SearchAPIKey,
		searchCX:     cfg.SearchCX,
		databaseURL:  cfg.DatabaseURL,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
		validate:     validator.New(),
		runPipeline:  pipeline.RunPipeline,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
	}

	if cfg.RequireAuth {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/roadmaps", s.withAuth(s.handleCreateRoadmap))
	mux.HandleFunc("GET /v1/runs/{run_id}/artifacts/{step}", s.withAuth(s.handleGetArtifact))
	mux.HandleFunc("GET /v1/runs/{run_id}/report", s.withAuth(s.handleGetReport))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // roadmap generation makes several LLM calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
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
		class := "default"
		if r.Method == http.MethodPost && r.URL.Path == "/v1/roadmaps" {
			class = "roadmap"
		}

		info := s.rateLimiter.Allow(s.extractClientID(r), class)
		s.setRateLimitHeaders(w, info)
		if !info.Allowed {
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
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withAuth validates the bearer token when authentication is enabled
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.jwtService == nil {
			next(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.errorResponse(w, http.StatusUnauthorized, (&ErrUnauthorized{}).Error())
			return
		}
		if _, err := s.jwtService.ValidateToken(token); err != nil {
			s.errorResponse(w, http.StatusUnauthorized, (&ErrUnauthorized{}).Error())
			return
		}

		next(w, r)
	}
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
// Uses the IP from RemoteAddr; X-Forwarded-For would only be safe behind
// a trusted proxy.
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

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
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
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

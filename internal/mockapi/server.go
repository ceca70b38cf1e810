package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mistralbridge/pkg/types"
)

// ReplyFunc produces the generated text for a prompt.
type ReplyFunc func(prompt string) string

// Server is a stand-in for the remote generation endpoint, used for local
// development and end-to-end tests. It mirrors the wire contract the real
// endpoint exposes: bearer auth, a JSON {"prompt": ...} body, and the
// outputs/text response shape.
type Server struct {
	authToken string
	reply     ReplyFunc
}

// New constructs a Server. A nil reply echoes the prompt back.
func New(authToken string, reply ReplyFunc) *Server {
	if reply == nil {
		reply = func(prompt string) string { return "echo: " + prompt }
	}
	return &Server{authToken: authToken, reply: reply}
}

// zlog is an optional structured logger. If unset, requests are not logged.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the mock server.
func SetLogger(l zerolog.Logger) { zlog = &l }

// NewMux builds the HTTP handler: POST /v1/generate plus /healthz and
// /metrics.
func (s *Server) NewMux() http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/v1/generate", s.handleGenerate)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if s.authToken != "" && r.Header.Get("Authorization") != "Bearer "+s.authToken {
		writeJSONError(w, http.StatusUnauthorized, "invalid or missing bearer token")
		return
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSONError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	resp := types.GenerateResponse{Outputs: []types.Output{{Text: s.reply(req.Prompt)}}}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	if zlog != nil {
		zlog.Info().Str("path", r.URL.Path).Int("prompt_len", len(req.Prompt)).Dur("dur", time.Since(start)).Msg("generate served")
	}
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/robelasefa/mafirestaurant/internal/common"
	"github.com/robelasefa/mafirestaurant/internal/llm"
	"github.com/robelasefa/mafirestaurant/internal/retriever"
)

// Config controls the chat boundary: retrieval breadth, context budget,
// history depth, cache TTL, and the generation timeout.
type Config struct {
	TopK             int
	ContextCharLimit int
	HistoryTurns     int
	CacheTTL         time.Duration
	GenerateTimeout  time.Duration
	AllowedOrigins   []string
}

// DefaultConfig returns the standard configuration used when no overrides
// are provided.
func DefaultConfig() Config {
	return Config{
		TopK:             6,
		ContextCharLimit: 1200,
		HistoryTurns:     6,
		CacheTTL:         5 * time.Minute,
		GenerateTimeout:  30 * time.Second,
		AllowedOrigins:   []string{"*"},
	}
}

// Merge overlays positive values from the override onto the base
// configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if override.TopK > 0 {
		result.TopK = override.TopK
	}
	if override.ContextCharLimit > 0 {
		result.ContextCharLimit = override.ContextCharLimit
	}
	if override.HistoryTurns > 0 {
		result.HistoryTurns = override.HistoryTurns
	}
	if override.CacheTTL > 0 {
		result.CacheTTL = override.CacheTTL
	}
	if override.GenerateTimeout > 0 {
		result.GenerateTimeout = override.GenerateTimeout
	}
	if len(override.AllowedOrigins) > 0 {
		result.AllowedOrigins = append([]string(nil), override.AllowedOrigins...)
	}
	return result
}

type Server struct {
	router   chi.Router
	handler  http.Handler
	index    *retriever.Index
	provider llm.Provider
	cache    *replyCache
	brand    string
	cfg      Config
}

func NewServer(index *retriever.Index, brand string, provider llm.Provider, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if index == nil {
		return nil, fmt.Errorf("retriever index required")
	}
	if strings.TrimSpace(brand) == "" {
		return nil, fmt.Errorf("brand name required")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	providerName := "unknown"
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info(
		"api: building server",
		"docs", index.Size(),
		"provider", providerName,
		"topk", configuration.TopK,
		"cache_ttl", configuration.CacheTTL,
	)
	srv := &Server{
		router:   chi.NewRouter(),
		index:    index,
		provider: provider,
		cache:    newReplyCache(configuration.CacheTTL),
		brand:    strings.TrimSpace(brand),
		cfg:      configuration,
	}
	srv.routes()
	srv.handler = cors.New(cors.Options{
		AllowedOrigins: configuration.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(srv.router)
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/chat", s.handleChat)
	s.router.Get("/v1/search", s.handleSearch)
	s.router.Get("/v1/logs", s.handleLogs)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

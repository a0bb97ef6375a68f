// Package server exposes the translator over HTTP and WebSocket
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/internal/history"
	"github.com/msto63/etds/internal/metrics"
	"github.com/msto63/etds/pkg/core/cache"
	"github.com/msto63/etds/pkg/core/health"
)

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	Version        string

	// CacheSize bounds the memoized compile results; 0 disables the cache
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           8470,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxRequestSize: 64 * 1024,
		Version:        "dev",
		CacheSize:      1024,
		CacheTTL:       10 * time.Minute,
	}
}

// Address returns host:port
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, fmt.Sprintf("%d", c.Port))
}

// Server is the translator HTTP server
type Server struct {
	httpServer *http.Server
	engine     *etds.Engine
	results    *cache.ResultCache
	history    *history.Store
	health     *health.Registry
	metrics    *metrics.Collector
	logger     *mdwlog.Logger
	config     Config
}

// New creates a server. store may be nil, in which case runs are not
// recorded and /api/v1/history answers 404.
func New(cfg Config, engine *etds.Engine, store *history.Store, logger *mdwlog.Logger) *Server {
	if logger == nil {
		logger = mdwlog.Discard()
	}
	if cfg.MaxRequestSize <= 0 {
		cfg.MaxRequestSize = DefaultConfig().MaxRequestSize
	}

	s := &Server{
		engine:  engine,
		history: store,
		health:  health.NewRegistry("etds", cfg.Version),
		metrics: metrics.New(metrics.DefaultConfig()),
		logger:  logger.WithField("component", "etds-server"),
		config:  cfg,
	}

	s.health.Register(health.EngineCheck(engine))
	if cfg.CacheSize > 0 {
		s.results = cache.NewResultCache(engine, cache.Config{
			MaxItems:        cfg.CacheSize,
			TTL:             cfg.CacheTTL,
			CleanupInterval: time.Minute,
		})
		s.health.RegisterFunc("cache", s.cacheCheck)
	}
	if store != nil {
		s.health.Register(health.PingCheck("history", store))
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /health", s.health.Handler(2*time.Second))
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("POST /api/v1/compile", s.handleCompile)
	mux.HandleFunc("GET /api/v1/grammar", s.handleGrammar)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)
	mux.HandleFunc("GET /api/v1/ws", s.handleWebSocket)
	return loggingMiddleware(s.logger, mux)
}

// Start listens on the configured address and blocks until Shutdown
func (s *Server) Start() error {
	s.logger.Info("starting server", mdwlog.Fields{"address": s.config.Address()})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve accepts connections on l and blocks until Shutdown
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("starting server", mdwlog.Fields{"address": l.Addr().String()})
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("stopping server")
	err := s.httpServer.Shutdown(ctx)
	s.Close()
	return err
}

// Close releases the result cache. It is called by Shutdown and only
// needed on its own for servers that were never started.
func (s *Server) Close() {
	if s.results != nil {
		s.results.Close()
	}
}

// cacheCheck reports cache usage; it never fails
func (s *Server) cacheCheck(ctx context.Context) health.CheckResult {
	hits, misses, rate := s.results.Stats()
	return health.CheckResult{
		Status: health.StatusHealthy,
		Details: map[string]interface{}{
			"entries":  s.results.Size(),
			"hits":     hits,
			"misses":   misses,
			"hit_rate": rate,
		},
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *mdwlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request", mdwlog.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      wrapper.statusCode,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
		})
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for WebSocket upgrades
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// Unwrap exposes the underlying writer to http.ResponseController
func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

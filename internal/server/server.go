package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/eventlog"
	"github.com/osse101/PetalGarden_Go/internal/grid"
	"github.com/osse101/PetalGarden_Go/internal/handler"
	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/metrics"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
	"github.com/osse101/PetalGarden_Go/internal/sse"
)

// Config holds the HTTP server settings
type Config struct {
	Addr           string
	Version        string
	NeighborRadius int
	MaxBodyBytes   int64
	RateLimit      int
	RateWindow     time.Duration
	TrustedProxies []string
}

// Deps are the services exposed over HTTP
type Deps struct {
	Grid       grid.Service
	Economy    economy.Service
	Dispatcher scheduler.Dispatcher
	Hub        *sse.Hub
	Health     handler.HealthChecker
	EventLog   eventlog.Service
	Saver      handler.Saver
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route table
func NewRouter(cfg Config, deps Deps) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	handler.InitValidator()

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, NewRateLimiter(cfg.RateLimit, cfg.RateWindow, nil)))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Health))
	r.Get("/version", handler.HandleVersion(cfg.Version))
	r.Handle("/metrics", promhttp.Handler())

	gridHandler := handler.NewGridHandler(deps.Grid, deps.Dispatcher, cfg.NeighborRadius)
	economyHandler := handler.NewEconomyHandler(deps.Economy, deps.Dispatcher)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/grid", func(r chi.Router) {
			r.Get("/", gridHandler.HandleSnapshot)
			r.Get("/cell", gridHandler.HandleCell)
			r.Get("/neighbors", gridHandler.HandleNeighbors)
			r.Post("/plant", gridHandler.HandlePlant)
			r.Post("/harvest", gridHandler.HandleHarvest)
			r.Post("/destroy", gridHandler.HandleDestroy)
			r.Post("/water", gridHandler.HandleWater)
		})

		r.Get("/economy", economyHandler.HandleBalances)

		if deps.Saver != nil {
			r.Post("/save", handler.NewSaveHandler(deps.Saver, deps.Dispatcher).HandleSave)
		}

		if deps.Hub != nil {
			r.Get("/events", sse.Handler(deps.Hub))
		}
		if deps.EventLog != nil {
			r.Get("/events/recent", handler.NewEventLogHandler(deps.EventLog).HandleRecent)
		}
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets the event stream through
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func isQuietPath(path string) bool {
	return slices.ContainsFunc(QuietPaths, func(p string) bool {
		return strings.HasPrefix(path, p)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldRemoteAddr, r.RemoteAddr)

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, HeaderCookie) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		log.Info(LogMsgRequestCompleted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldStatus, rw.statusCode,
			LogFieldDuration, time.Since(start).Milliseconds())
	})
}

// Start serves until Stop is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, LogFieldAddr, s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

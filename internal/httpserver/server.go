package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ducksapi/backend/internal/config"
	"ducksapi/backend/internal/domain/store"
	"ducksapi/backend/internal/logging"
	authusecase "ducksapi/backend/internal/usecase/auth"
	duckusecase "ducksapi/backend/internal/usecase/duck"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer  *http.Server
	router      *http.ServeMux
	handler     http.Handler
	store       store.Connector
	authService *authusecase.Service
	duckService *duckusecase.Service
	log         *slog.Logger
	addr        string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(
	cfg config.Config,
	connector store.Connector,
	authService *authusecase.Service,
	duckService *duckusecase.Service,
	log *slog.Logger,
) *Server {
	if log == nil {
		log = logging.Nop()
	}
	log = logging.Named(log, "http")

	mux := http.NewServeMux()
	handler := withRequestID(withLogging(log, withRecovery(log, withCORS(mux, cfg.AllowedOrigins))))

	srv := &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
			ErrorLog:     logging.StdLogger(log, slog.LevelWarn),
		},
		router:      mux,
		handler:     handler,
		store:       connector,
		authService: authService,
		duckService: duckService,
		log:         log,
		addr:        cfg.Addr(),
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the fully wrapped handler chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}

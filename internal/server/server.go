package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/identware/identity-secure/internal/allowlist"
	"github.com/identware/identity-secure/internal/config"
	"github.com/identware/identity-secure/internal/extractor"
	"github.com/identware/identity-secure/internal/logger"
	"github.com/identware/identity-secure/internal/pii"
	"github.com/identware/identity-secure/internal/storage"
)

// Server exposes the scan pipeline and report store over HTTP.
type Server struct {
	config    *config.Config
	logger    *logger.Logger
	pipeline  *pii.Pipeline
	extractor *extractor.Factory
	store     *storage.Store
	allowlist *allowlist.Allowlist
	limiter   *rateLimiter
	router    *mux.Router
	server    *http.Server
}

// New wires the HTTP server around an already-built pipeline and store.
// store and allowlist may be nil; the matching endpoints then return 503.
func New(cfg *config.Config, log *logger.Logger, pipeline *pii.Pipeline, store *storage.Store, al *allowlist.Allowlist) *Server {
	s := &Server{
		config:    cfg,
		logger:    log.WithComponent("server"),
		pipeline:  pipeline,
		extractor: extractor.NewFactory(),
		store:     store,
		allowlist: al,
		limiter:   newRateLimiter(cfg.RateLimit),
		router:    mux.NewRouter(),
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware)

	scans := api.NewRoute().Subrouter()
	scans.Use(s.rateLimitMiddleware)
	scans.HandleFunc("/scan", s.handleScanUpload).Methods("POST")
	scans.HandleFunc("/scan/text", s.handleScanText).Methods("POST")
	scans.HandleFunc("/quickscan", s.handleQuickScan).Methods("POST")

	api.HandleFunc("/reports", s.handleListReports).Methods("GET")
	api.HandleFunc("/reports/{id:[0-9]+}", s.handleGetReport).Methods("GET")
	api.HandleFunc("/reports/{id:[0-9]+}", s.handleDeleteReport).Methods("DELETE")

	api.HandleFunc("/allowlist", s.handleAllowlistAdd).Methods("POST")
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.Int("port", s.config.Server.Port))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

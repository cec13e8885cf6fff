// Package server provides the HTTP API for Saharah.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/auth"
	"github.com/saharah/saharah/internal/chat"
	"github.com/saharah/saharah/internal/config"
	"github.com/saharah/saharah/internal/contacts"
	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/lawdata"
	"github.com/saharah/saharah/internal/search"
	"github.com/saharah/saharah/internal/storage"
	"github.com/saharah/saharah/internal/uploads"
)

// Dependencies are the services behind the API.
type Dependencies struct {
	Store        *lawdata.Store
	Engine       *search.Engine
	Storage      storage.Storage
	Contacts     *contacts.Service
	Uploads      *uploads.Service
	Conversation *chat.Conversation
	Session      *auth.Session
	Language     *i18n.Selector

	// DataDir, when set, is served under /data for PDF downloads.
	DataDir string
	// DiskPaths are the on-disk store paths reported by the status endpoint.
	DiskPaths []string
}

// Server is the HTTP server for the Saharah API.
type Server struct {
	deps   *Dependencies
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(cfg *config.ServerConfig, deps *Dependencies, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{deps: deps, config: cfg, logger: logger}
}

// Router returns the API handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/laws", s.handleListLaws)
		r.Get("/laws/{id}", s.handleGetLaw)
		r.Get("/categories", s.handleCategories)
		r.Post("/search", s.handleSearch)

		r.Get("/lawyers", s.handleListLawyers)
		r.Get("/lawyers/{id}", s.handleGetLawyer)

		r.Get("/contacts", s.handleListContacts)
		r.With(s.requireLogin).Post("/contacts", s.handleAddContact)
		r.With(s.requireLogin).Delete("/contacts/{id}", s.handleDeleteContact)

		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{id}", s.handleGetDocument)
		r.With(s.requireLogin).Post("/documents", s.handleUploadDocument)
		r.With(s.requireLogin).Delete("/documents/{id}", s.handleDeleteDocument)

		r.Get("/chat", s.handleChatHistory)
		r.Post("/chat", s.handleChatSend)
		r.Delete("/chat", s.handleChatClear)
		r.Get("/chat/transcript", s.handleChatTranscript)

		r.Get("/session", s.handleGetSession)
		r.Post("/session", s.handleLogin)
		r.Delete("/session", s.handleLogout)

		r.Get("/language", s.handleGetLanguage)
		r.Put("/language", s.handleSetLanguage)

		r.Get("/status", s.handleStatus)
	})

	if s.deps.DataDir != "" {
		r.Handle("/data/*", http.StripPrefix("/data", http.FileServer(http.Dir(s.deps.DataDir))))
	}
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

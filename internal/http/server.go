// Package http is the presentation layer: a small server gluing the catalog,
// the ledger and the export serializer to a browser. All domain rules live in
// the services it calls into.
package http

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"spendlog/internal/export"
	"spendlog/internal/services"
	appweb "spendlog/web"
)

type Server struct {
	http.Server

	session     *services.Session
	exporter    *export.Service
	templates   *template.Template
	rateLimiter *rateLimiter

	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, session *services.Session, exporter *export.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		session:     session,
		exporter:    exporter,
		rateLimiter: newRateLimiter(),
		startedAt:   time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/items", s.withSecurityHeaders(s.handleItems))
	mux.HandleFunc("/api/items/", s.withSecurityHeaders(s.handleItemByID))
	mux.HandleFunc("/api/expenses", s.withSecurityHeaders(s.handleExpenses))
	mux.HandleFunc("/api/expenses/clear", s.withSecurityHeaders(s.handleClearExpenses))
	mux.HandleFunc("/export", s.withSecurityHeaders(s.handleExport))

	return s
}

// Shutdown stops the HTTP server and background cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// Package server exposes the dashboard: a JSON API serving Vega-Lite chart
// specs bound to filtered views of the cleaned dataset, and the single
// embedded page that renders them.
package server

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/chronicdata/brfss-dash/internal/dataset"
)

//go:embed web/index.html
var indexHTML []byte

// Server binds the immutable dataset to HTTP handlers. Handlers only read the
// table, so no locking is needed.
type Server struct {
	table *dataset.Table
}

// New builds a Server over a loaded table.
func New(table *dataset.Table) *Server {
	return &Server{table: table}
}

// Router constructs the chi router with all routes and middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/meta", s.handleMeta)
		r.Get("/stats", s.handleStats)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/trend", s.handleTrend)
			r.Get("/geo", s.handleGeo)
			r.Get("/demographics", s.handleDemographics)
			r.Get("/correlation", s.handleCorrelation)
		})
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})

	return r
}

// requestLogger logs each request with the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"borough-recommender/config"
	"borough-recommender/metrics"
	"borough-recommender/services"
	"borough-recommender/utils"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Server serves the recommendation form, results and JSON API.
type Server struct {
	cfg         *config.Config
	logger      *utils.Logger
	recommender *services.Recommender
	maps        *services.MapBuilder
	insights    *services.InsightService
	templates   *template.Template
	router      *chi.Mux
}

// NewServer wires routes over a loaded recommender.
func NewServer(cfg *config.Config, recommender *services.Recommender, logger *utils.Logger) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		logger:      logger,
		recommender: recommender,
		maps:        services.NewMapBuilder(recommender.Dataset(), cfg.VenueSampleStride),
		insights:    services.NewInsightService(logger),
		templates:   templates,
		router:      chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"contains": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
		"rankAt": func(list []string, i int) string {
			if i < len(list) {
				return list[i]
			}
			return ""
		},
		"mapArgs": mapArgs,
	}
	t, err := template.New("").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	return t, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/recommend", s.handleRecommendPage)
	s.router.Get("/geojson", s.handleGeoJSON)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Post("/recommend", s.handleRecommendJSON)
		r.Post("/map", s.handleMapJSON)
		r.Post("/summary", s.handleSummaryJSON)
	})
}

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on cfg.HTTPAddr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[web] Listening on %s", s.cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("[web] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request and records HTTP metrics by route pattern.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		s.logger.Debug("[web] %s %s %d %s (%s)", r.Method, r.URL.Path, status, elapsed,
			middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	path := s.cfg.DataPath(s.cfg.GeoJSONFile)
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	http.ServeFile(w, r, path)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.recommender.Dataset()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"rents":    len(ds.Rents()),
		"venues":   len(ds.Venues()),
		"boroughs": ds.Density().Len(),
	})
}

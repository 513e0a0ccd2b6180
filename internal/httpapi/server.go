package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/dashfetch/internal/dashboard"
	"github.com/hamed0406/dashfetch/internal/domain"
	"github.com/hamed0406/dashfetch/internal/httpapi/middleware"
	"github.com/hamed0406/dashfetch/internal/notify"
)

type Server struct {
	Logger   *zap.Logger
	Agg      *dashboard.Aggregator
	Requests []domain.ResourceRequest
	Notifier notify.Notifier
	Origins  []string
}

func NewServer(l *zap.Logger, agg *dashboard.Aggregator, reqs []domain.ResourceRequest, n notify.Notifier, origins []string) *Server {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{Logger: l, Agg: agg, Requests: reqs, Notifier: n, Origins: origins}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(s.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.Origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/resources", s.handleResources)
	r.Get("/api/dashboard", s.handleDashboard)

	return r
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"resources": s.Requests})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	mode := domain.ModeParallel
	if v := r.URL.Query().Get("mode"); v != "" {
		m, err := domain.ParseMode(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = m
	}

	out, err := s.Agg.Run(r.Context(), mode, s.Requests)
	if err != nil {
		s.respondFetchError(w, err)
		return
	}

	s.Logger.Info("dashboard_served",
		zap.String("mode", string(out.Mode)),
		zap.Int("resources", len(out.Results)),
		zap.Float64("total_ms", out.ElapsedMS),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) respondFetchError(w http.ResponseWriter, err error) {
	ff, ok := domain.AsFetchFailure(err)
	if !ok {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.Logger.Warn("dashboard_failed",
		zap.String("resource", string(ff.Resource)),
		zap.String("kind", ff.Kind.String()),
		zap.Int("status", ff.Status),
		zap.Error(ff.Err),
	)

	// Fire and forget; the response must not wait on notification channels.
	if s.Notifier != nil {
		title, text := notify.FailureMessage(ff)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if nerr := s.Notifier.Send(ctx, title, text); nerr != nil {
				s.Logger.Warn("notify_error", zap.Error(nerr))
			}
		}()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"resource": ff.Resource,
			"kind":     ff.Kind.String(),
			"status":   ff.Status,
			"message":  ff.Error(),
		},
	})
}

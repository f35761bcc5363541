package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"quizbabu-service/internal/app"
)

// RouterConfig holds the HTTP surface options.
type RouterConfig struct {
	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter mounts the landing, quiz and report endpoints.
func NewRouter(service *app.QuizService, log *zap.Logger, cfg RouterConfig) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	api := NewAPIHandler(service, log)
	ws := NewWSHandler(service, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(sr chi.Router) {
		sr.Use(SessionCookie(cfg.SecureCookies))
		sr.Route("/api", func(ar chi.Router) {
			ar.Use(middleware.Timeout(30 * time.Second))
			ar.Post("/session", api.StartSession)
			ar.Get("/report", api.GetReport)
			ar.Delete("/report", api.ResetReport)
		})
		sr.Get("/ws/quiz", ws.ServeWS)
	})
	return r
}

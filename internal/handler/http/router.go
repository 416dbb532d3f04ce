package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/metrics"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	Recorder       *metrics.Recorder
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, dashboardHandler DashboardHandler, reportHandler ReportHandler, streamHandler StreamHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Recorder != nil {
		r.Method(http.MethodGet, "/metrics", opts.Recorder.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/dashboard", func(r chi.Router) {
			// Stream endpoints authenticate with a short-lived token query parameter
			r.Get("/stream", streamHandler.Stream)
			r.Get("/ws", streamHandler.StreamWS)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

				r.Get("/", dashboardHandler.GetDashboard)
				r.Post("/refresh", dashboardHandler.Refresh)
				r.Get("/daily-attendance-stats", dashboardHandler.GetDailyAttendanceStats)
				r.Post("/stream-token", streamHandler.GetStreamToken)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance", reportHandler.GetAttendanceReport)
			})
		})
	})
	return r
}

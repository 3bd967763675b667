package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/launa-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	payrollHandler PayrollHandler,
	dashboardHandler DashboardHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "launa"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(metrics.HTTPMetricsMiddleware)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login/employee-code", authHandler.LoginWithEmployeeCode)
		})

		// The stream authenticates with its own short-lived query token
		r.Get("/events/stream", eventHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.SessionContext)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", payrollHandler.ListSales)
				r.Post("/", payrollHandler.RecordSale)
				r.Put("/{id}", payrollHandler.UpdateSale)
				r.Delete("/{id}", payrollHandler.DeleteSale)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", payrollHandler.ListShifts)
				r.Post("/", payrollHandler.RecordShift)
				r.Put("/{id}", payrollHandler.UpdateShift)
				r.Delete("/{id}", payrollHandler.DeleteShift)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/preview", payrollHandler.PreviewPay)
				r.Post("/net-salary", payrollHandler.EstimateNet)
				r.Get("/periods/{period}/summary", payrollHandler.GetPeriodSummary)
			})

			r.Get("/dashboard", dashboardHandler.GetDashboard)
			r.Get("/events/token", eventHandler.Token)
		})
	})
	return r
}

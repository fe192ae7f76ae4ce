package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sportcenter/shift-manager/internal/handler/http/middleware"
	"github.com/sportcenter/shift-manager/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	// AuthEnabled puts every /api/v1 route behind a bearer token and holiday
	// writes behind the is_admin claim.
	AuthEnabled bool
	Env         string
	Version     string
	// Logger receives request logs; nil builds the ECS JSON logger on stdout.
	Logger *slog.Logger
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, shiftHandler ShiftHandler, reportHandler ReportHandler, holidayHandler HolidayHandler) *chi.Mux {
	r := chi.NewRouter()
	logger := cfg.Logger
	if logger == nil {
		logFormat := httplog.SchemaECS.Concise(false)
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			ReplaceAttr: logFormat.ReplaceAttr,
		})).With(
			slog.String("app", "shift-manager"),
			slog.String("version", cfg.Version),
			slog.String("env", cfg.Env),
		)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
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

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	adminOnly := func(next http.Handler) http.Handler { return next }

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			adminOnly = middleware.AdminOnly
		}

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", reportHandler.WeekView)
			r.Post("/", shiftHandler.Create)
			r.Get("/monthly", shiftHandler.ListMonthly)

			r.Route("/weeks", func(r chi.Router) {
				r.Get("/", reportHandler.MonthWeeks)
				r.Get("/{week}", reportHandler.StrictWeek)
			})

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", shiftHandler.GetByID)
				r.Put("/", shiftHandler.Update)
				r.Delete("/", shiftHandler.Delete)
			})
		})

		r.Get("/employees/{employeeID}/shifts", shiftHandler.ListByEmployee)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/store", reportHandler.StoreRange)
			r.Get("/worked-hours", reportHandler.WorkedHours)
			r.Get("/holidays", reportHandler.HolidayShifts)
			r.Get("/monthly-summary", reportHandler.MonthlySummary)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", holidayHandler.List)
			r.Get("/check", holidayHandler.Check)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", holidayHandler.Create)
				r.Delete("/{id}", holidayHandler.Delete)
			})
		})
	})
	return r
}

package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/bayanihr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	periodHandler PayPeriodHandler,
	payrollHandler PayrollHandler,
	advanceHandler AdvanceHandler,
	disciplineHandler DisciplineHandler,
	contributionHandler ContributionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "bayanihr-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/periods", func(r chi.Router) {
				r.Get("/", periodHandler.ListPayPeriods)
				r.Get("/{id}", periodHandler.GetPayPeriod)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Post("/", periodHandler.CreatePayPeriod)
					r.Post("/{id}/close", periodHandler.ClosePayPeriod)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/records", payrollHandler.ListPayrollRecords)
				r.Get("/records/{id}", payrollHandler.GetPayrollRecord)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Post("/generate", payrollHandler.GeneratePayroll)
					r.Post("/records/{id}/approve", payrollHandler.ApprovePayroll)
					r.Post("/records/{id}/release", payrollHandler.ReleasePayroll)
					r.Delete("/records/{id}", payrollHandler.DeleteDraftPayroll)
				})
			})

			r.Route("/advances", func(r chi.Router) {
				r.Post("/", advanceHandler.RequestAdvance)
				r.Get("/{id}", advanceHandler.GetAdvance)
				r.Get("/{id}/deductions", advanceHandler.ListDeductions)
				r.Get("/employee/{employeeID}", advanceHandler.ListAdvancesByEmployee)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Post("/{id}/approve", advanceHandler.ApproveAdvance)
					r.Post("/{id}/reject", advanceHandler.RejectAdvance)
					r.Post("/{id}/disburse", advanceHandler.DisburseAdvance)
				})
			})

			r.Route("/notices", func(r chi.Router) {
				r.Get("/{id}", disciplineHandler.GetNotice)
				r.Get("/{id}/explanation", disciplineHandler.GetExplanation)
				r.Get("/employee/{employeeID}", disciplineHandler.ListNoticesByEmployee)
				r.Post("/{id}/explanation", disciplineHandler.SubmitExplanation)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Post("/", disciplineHandler.IssueNotice)
					r.Post("/{id}/resolve", disciplineHandler.ResolveNotice)
				})
			})

			r.Route("/contribution-schedules", func(r chi.Router) {
				r.Get("/active", contributionHandler.GetActiveSchedule)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Post("/", contributionHandler.CreateSchedule)
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}

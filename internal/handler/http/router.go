package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/config"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/handler/http/middleware"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	authHandler AuthHandler,
	signatureHandler SignatureHandler,
	progressHandler ProgressHandler,
	payrollHandler PayrollHandler,
	importHandler ImportHandler,
	mappingHandler MappingHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "luong-hoa-tho"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Public kiosk endpoint: employees authenticate inline with CCCD.
		r.Post("/signatures/employee", signatureHandler.EmployeeSign)

		r.Get("/signature-progress/{month}", progressHandler.GetProgress)
		r.Get("/signature-status/{month}", progressHandler.GetStatus)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManagementSigner)
				r.Post("/signatures/management", signatureHandler.ManagementSign)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/{employeeID}/{month}", payrollHandler.GetRecord)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSupervisor)
					r.Get("/", payrollHandler.ListRecords)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/imports", func(r chi.Router) {
					r.Post("/payroll", importHandler.ImportPayroll)
					r.Post("/attendance", importHandler.ImportAttendance)
					r.Post("/employees", importHandler.ImportEmployees)
					r.Get("/template", importHandler.DownloadTemplate)
					r.Post("/error-report", importHandler.ErrorReport)
				})

				r.Route("/mapping-configs", func(r chi.Router) {
					r.Get("/", mappingHandler.ListConfigs)
					r.Post("/", mappingHandler.SaveConfig)
					r.Post("/detect", mappingHandler.Detect)
					r.Get("/{id}", mappingHandler.GetConfig)
					r.Delete("/{id}", mappingHandler.DeleteConfig)
				})
			})
		})
	})
	return r
}

package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hcms-backend-go/internal/config"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth            AuthHandler
	Shift           ShiftHandler
	AttendanceGroup AttendanceGroupHandler
	User            UserHandler
	Department      DepartmentHandler
}

// RequestLogOutput is where the request logger writes. Tests point it at io.Discard.
var RequestLogOutput io.Writer = os.Stdout

func NewRouter(app config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(RequestLogOutput, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hcms"),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	allowedOrigins := app.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
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
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth(), JWTService))
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth(), JWTService))

			r.Route("/shifts", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionShiftView)).Get("/", h.Shift.List)
				r.With(middleware.RequirePermission(user.PermissionShiftView)).Get("/{id}", h.Shift.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", h.Shift.Create)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
				})
			})

			r.Route("/attendance-groups", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceGroupView))
					r.Get("/", h.AttendanceGroup.List)
					r.Get("/{id}", h.AttendanceGroup.Get)
					r.Get("/{id}/weekly-schedule", h.AttendanceGroup.GetWeeklySchedule)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceGroupManage))
					r.Post("/", h.AttendanceGroup.Create)
					r.Put("/{id}", h.AttendanceGroup.Update)
					r.Delete("/{id}", h.AttendanceGroup.Delete)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionUserView)).Get("/{id}", h.User.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Put("/{id}", h.User.Update)
					r.Delete("/{id}", h.User.Delete)
					r.Post("/{id}/reset-password", h.User.ResetPassword)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentView))
					r.Get("/", h.Department.List)
					r.Get("/{id}", h.Department.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentManage))
					r.Post("/", h.Department.Create)
					r.Put("/{id}", h.Department.Update)
					r.Delete("/{id}", h.Department.Delete)
				})
			})
		})
	})
	return r
}

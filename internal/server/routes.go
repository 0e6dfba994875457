package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/middleware"
)

// SetupRoutes configures the router.
//
// Every request passes request id, real ip, recovery, security headers,
// metrics, request log and CORS. Register and login are rate limited per
// client IP; everything else under /api requires a bearer token, and the user
// management routes additionally require the admin role.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(s.metrics.Middleware())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.CORS(s.Config.CORS))

	// Operational routes (unprotected)
	r.Get(constants.HealthPath, s.Handlers.HealthHandler.Health)
	r.Get(constants.VersionPath, s.Handlers.HealthHandler.Version)
	r.Method(http.MethodGet, constants.MetricsPath, s.metrics.Handler())

	r.Route(constants.APIBasePath, func(r chi.Router) {
		// Public authentication routes
		r.Group(func(r chi.Router) {
			if s.limiter != nil {
				r.Use(middleware.RateLimit(s.limiter, constants.RateLimitCategoryAuth, s.metrics))
			}
			r.Post(constants.RegisterPath, s.Handlers.AuthHandler.Register)
			r.Post(constants.LoginPath, s.Handlers.AuthHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(s.authProviders.Tokens, s.metrics))

			r.Post(constants.TaskPath, s.Handlers.TaskHandler.CreateTask)
			r.Get(constants.TaskDetailPath, s.Handlers.TaskHandler.GetTask)
			r.Put(constants.TaskDetailPath, s.Handlers.TaskHandler.UpdateTask)
			r.Delete(constants.TaskDetailPath, s.Handlers.TaskHandler.DeleteTask)
			r.Get(constants.TasksPath, s.Handlers.TaskHandler.ListTasks)

			r.With(auth.RequireAdmin(constants.MsgAdminRequired)).
				Get(constants.UsersPath, s.Handlers.UserHandler.ListUsers)

			r.With(auth.RequireAdmin(constants.MsgForbidViewUsers)).
				Get(constants.AdminUsersPath, s.Handlers.UserHandler.ListUsers)
			r.With(auth.RequireAdmin(constants.MsgForbidCreateUser)).
				Post(constants.AdminUserPath, s.Handlers.UserHandler.CreateUser)
			r.With(auth.RequireAdmin(constants.MsgForbidUpdateUsers)).
				Put(constants.AdminUserDetailPath, s.Handlers.UserHandler.UpdateUser)
			r.With(auth.RequireAdmin(constants.MsgForbidDeleteUsers)).
				Delete(constants.AdminUserDetailPath, s.Handlers.UserHandler.DeleteUser)
		})
	})

	s.router = r
}

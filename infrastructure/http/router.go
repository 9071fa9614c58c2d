package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/infrastructure/http/handler"
	"github.com/verdemed/verdemed/infrastructure/http/middleware"
	"github.com/verdemed/verdemed/infrastructure/http/response"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
	"github.com/verdemed/verdemed/pkg/apperror"
)

type RouterDeps struct {
	UserUseCase      inbound.UserUseCase
	AuthUseCase      inbound.AuthUseCase
	AuditUseCase     inbound.AuditUseCase
	IdentityProvider outbound.IdentityProvider
	Profiles         outbound.ProfileRepository
	RateLimit        *middleware.RateLimitMiddleware
	DB               *sql.DB
	Logger           logger.Logger
	AllowedOrigins   []string
}

// NewRouter assembles the full route table and the middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := handler.NewAuthHandler(deps.UserUseCase, deps.AuthUseCase)
	profileHandler := handler.NewProfileHandler(deps.UserUseCase)
	adminHandler := handler.NewAdminHandler(deps.AuditUseCase)
	healthHandler := handler.NewHealthHandler(deps.DB)

	authMW := middleware.NewAuthMiddleware(deps.IdentityProvider)
	rbacMW := middleware.NewRBACMiddleware(deps.Profiles, deps.Logger)

	router := mux.NewRouter()

	register := authHandler.Register
	login := authHandler.Login
	if deps.RateLimit != nil {
		register = deps.RateLimit.Limit("register")(register)
		login = deps.RateLimit.Limit("login")(login)
	}

	router.HandleFunc("/api/auth/register", register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", login).Methods(http.MethodPost)
	router.HandleFunc("/api/me", authMW.RequireAuth(profileHandler.Me)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/audit-logs",
		authMW.RequireAuth(rbacMW.RequireRole(entity.RoleAdmin)(adminHandler.ListAuditLogs))).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthHandler.Healthz).Methods(http.MethodGet)

	var chained http.Handler = router
	chained = requestLogging(deps.Logger, chained)
	chained = recovery(deps.Logger, chained)
	chained = middleware.CORS(chained, deps.AllowedOrigins)
	chained = middleware.CorrelationID(chained)

	return chained
}

type Server struct {
	server *http.Server
	logger logger.Logger
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func NewServer(config ServerConfig, router http.Handler, log logger.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: log,
	}
}

func (s *Server) Start() error {
	s.logger.Info(context.Background(), "starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}

func requestLogging(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info(r.Context(), "request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

func recovery(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error(r.Context(), "panic recovered", nil, map[string]interface{}{
					"panic": rec,
					"path":  r.URL.Path,
				})
				response.WriteError(w, apperror.NewInternal(""))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

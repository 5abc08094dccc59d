package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orbitwise/fdsaas/internal/api/handler"
	"github.com/orbitwise/fdsaas/internal/api/middleware"
	"github.com/orbitwise/fdsaas/internal/services/auth"
	"github.com/orbitwise/fdsaas/internal/services/gateway"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GatewayService *gateway.Service
	Version        string
	ExitKey        string
	Shutdown       func()
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	userHandler := handler.NewUserHandler(cfg.AuthService)
	propagationHandler := handler.NewPropagationHandler(cfg.GatewayService)
	diagnosticsHandler := handler.NewDiagnosticsHandler(cfg.Version, cfg.ExitKey, cfg.Shutdown)

	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/fdsaas/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Open routes
	api.HandleFunc("/version", diagnosticsHandler.Version).Methods(http.MethodGet)
	api.HandleFunc("/status", diagnosticsHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/exit/{key}", diagnosticsHandler.Exit).Methods(http.MethodPost)
	api.HandleFunc("/register", userHandler.Register).Methods(http.MethodPut)
	api.HandleFunc("/login", userHandler.Login).Methods(http.MethodPost)

	// Session routes carry credentials in the body envelope
	session := api.NewRoute().Subrouter()
	session.Use(authMiddleware)
	session.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodGet, http.MethodDelete)
	session.HandleFunc("/deregister", userHandler.Deregister).Methods(http.MethodDelete)
	session.HandleFunc("/orb_propagation_tle", propagationHandler.PropagateTLE).Methods(http.MethodGet, http.MethodPost)

	return r
}

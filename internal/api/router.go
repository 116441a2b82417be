// Package api exposes the services over HTTP.
package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"portforyou/internal/auth"
	"portforyou/internal/user"
)

// Options tunes the router.
type Options struct {
	CORSOrigins []string
	// AccessLog receives Apache-style access lines. Nil disables them.
	AccessLog io.Writer
}

type server struct {
	auth   *auth.Service
	users  *user.Service
	logger *slog.Logger
}

// NewRouter builds the HTTP handler with its middleware chain.
func NewRouter(authSvc *auth.Service, users *user.Service, logger *slog.Logger, opts Options) http.Handler {
	s := &server{auth: authSvc, users: users, logger: logger}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(s.notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)

	router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/forgot", s.forgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/reset", s.resetPassword).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/templates/{variant}/visits", s.recordVisit).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(s.requireAuth)
	private.HandleFunc("/users", s.getUserByEmail).Methods(http.MethodGet).Queries("email", "{email}")
	private.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	private.HandleFunc("/users/{id}", s.getUser).Methods(http.MethodGet)
	private.HandleFunc("/users/{id}", s.updateUser).Methods(http.MethodPatch)
	private.HandleFunc("/users/{id}", s.deleteUser).Methods(http.MethodDelete)
	private.HandleFunc("/users/{id}/templates/{variant}", s.updateTemplate).Methods(http.MethodPatch)
	private.HandleFunc("/users/{id}/templates/{variant}/analytics", s.templateAnalytics).Methods(http.MethodGet)
	private.HandleFunc("/users/{id}/selected-templates/{name}", s.addSelectedTemplate).Methods(http.MethodPut)
	private.HandleFunc("/users/{id}/selected-templates/{name}", s.removeSelectedTemplate).Methods(http.MethodDelete)
	private.HandleFunc("/users/{id}/preferences", s.updatePreferences).Methods(http.MethodPut)

	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedOrigins(opts.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-ID"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
		handlers.AllowCredentials(),
	)(h)
	if opts.AccessLog != nil {
		h = handlers.LoggingHandler(opts.AccessLog, h)
	}
	h = requestID(h)
	h = handlers.ProxyHeaders(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger}),
		handlers.PrintRecoveryStack(true),
	)(h)
	return h
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Route not found")
}

func (s *server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// recoveryLogger adapts slog to handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(args ...interface{}) {
	l.logger.Error("panic recovered", "detail", args)
}

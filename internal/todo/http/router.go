package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookies      httpx.CookieOptions

	store          store.Store
	AuthService    *service.AuthService
	SessionService *service.SessionService
	TaskService    *service.TaskService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	cookies httpx.CookieOptions,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cookies:      cookies,
		store:        st,
	}

	// Request logging runs first so its request id is on the context logger.
	// Session resolution then adds user_id for handler and service lines;
	// the http_request summary line only carries the request id.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.resolveSession,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTasks()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		Cookies:     r.cookies,
	}

	r.Mux.HandleFunc("GET /register", h.HandleRegisterPage)
	r.Mux.HandleFunc("POST /register", h.HandleRegister)
	r.Mux.HandleFunc("GET /login", h.HandleLoginPage)
	r.Mux.HandleFunc("POST /login", h.HandleLogin)
	r.Mux.HandleFunc("GET /logout", h.HandleLogout)
}

func (r *Router) registerTasks() {
	h := &TaskHandler{TaskService: r.TaskService}

	// Everything here acts on the session user, so anonymous requests go to /login.
	r.Mux.Handle("GET /{$}", requireSession(http.HandlerFunc(h.HandleHome)))
	r.Mux.Handle("POST /add_task", requireSession(http.HandlerFunc(h.HandleAddTask)))
	r.Mux.Handle("POST /complete_task", requireSession(http.HandlerFunc(h.HandleCompleteTask)))
	r.Mux.Handle("POST /remove_completed_tasks", requireSession(http.HandlerFunc(h.HandleRemoveCompleted)))
}

func (r *Router) registerSystem() {
	r.Mux.HandleFunc("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.HandleFunc("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

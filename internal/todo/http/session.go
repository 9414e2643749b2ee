package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

// SessionCookie carries the opaque session token.
const SessionCookie = "authToken"

type userCtxKey struct{}

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user resolved for this request, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userCtxKey{}).(*domain.User)
	return u
}

// resolveSession attaches the session user, if any, to the request. It never
// rejects a request; handlers that need a user are wrapped in requireSession.
func (r *Router) resolveSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token := httpx.CookieValue(req, SessionCookie)
		if token == "" || r.SessionService == nil {
			next.ServeHTTP(w, req)
			return
		}

		user := r.SessionService.Resolve(req.Context(), token)
		if user == nil {
			next.ServeHTTP(w, req)
			return
		}

		ctx := withUser(req.Context(), user)
		ctx = slogx.WithUserID(ctx, user.ID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			httpx.SeeOther(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
)

const (
	msgMissingFields      = "all fields are required"
	msgPasswordMismatch   = "passwords must match"
	msgInvalidCredentials = "username or password incorrect"
	msgGeneric            = "something went wrong"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Cookies     httpx.CookieOptions
}

func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "register.html", formView{})
}

func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "login.html", formView{})
}

// HandleRegister creates the account, sets the session cookie and sends the
// browser home. Failures re-render the form with a message.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, r, http.StatusBadRequest, "register.html", formView{Error: msgGeneric})
		return
	}
	username := r.PostFormValue("username")

	_, token, err := h.AuthService.Register(r.Context(),
		username,
		r.PostFormValue("password"),
		r.PostFormValue("confirmPassword"),
	)
	if err != nil {
		status, msg := authError(err)
		render(w, r, status, "register.html", formView{Username: username, Error: msg})
		return
	}

	httpx.SetSessionCookie(w, SessionCookie, token.Value, h.Cookies)
	httpx.SeeOther(w, r, "/")
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, r, http.StatusBadRequest, "login.html", formView{Error: msgGeneric})
		return
	}
	username := r.PostFormValue("username")

	token, err := h.AuthService.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		status, msg := authError(err)
		render(w, r, status, "login.html", formView{Username: username, Error: msg})
		return
	}

	httpx.SetSessionCookie(w, SessionCookie, token.Value, h.Cookies)
	httpx.SeeOther(w, r, "/")
}

// HandleLogout drops the server-side session and the cookie. A store failure
// still clears the cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	_ = h.AuthService.Logout(r.Context(), httpx.CookieValue(r, SessionCookie))

	httpx.ClearCookie(w, SessionCookie, h.Cookies)
	httpx.SeeOther(w, r, "/login")
}

// authError maps a service error to a status and the message shown on the form.
// Duplicate usernames get the generic message on purpose.
func authError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, service.ErrPasswordMismatch):
		return http.StatusBadRequest, msgPasswordMismatch
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, msgGeneric
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusConflict, msgGeneric
	default:
		return http.StatusInternalServerError, msgGeneric
	}
}

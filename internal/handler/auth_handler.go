package handlers

import (
	"net/http"
	"socialhub/internal/service"
	"time"
)

const SessionCookieName = "jwt"

func (h *Handlers) setSessionCookie(w http.ResponseWriter, session *service.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.Cfg == nil || !h.Cfg.IsDevelopment(),
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.Cfg == nil || !h.Cfg.IsDevelopment(),
	})
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	session, err := h.AuthService.Signup(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, session)
	WriteJSON(w, session.User, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	session, err := h.AuthService.Login(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, session)
	WriteJSON(w, session.User, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), sessionToken(r)); err != nil {
		WriteServiceError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	WriteJSON(w, MessageResponse{Message: "Logged out successfully"}, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

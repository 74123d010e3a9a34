package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/spotshare/internal/auth"
)

const sessionCookie = "spotshare_session"

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, expires, err := s.sessions.Login(body.Password)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		s.logger.Warn("admin login attempted without a configured credential")
		s.respond(w, http.StatusUnauthorized, errorBody{Error: "admin login is disabled"})
		return
	case err != nil:
		s.logger.Info("admin login rejected", "remote_addr", r.RemoteAddr)
		s.respond(w, http.StatusUnauthorized, errorBody{Error: "invalid password"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Info("admin logged in")
	s.respond(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(sessionToken(r))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.respond(w, http.StatusOK, map[string]any{"success": true})
}

// requireAdmin rejects requests that do not carry a live session token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.sessions.Validate(sessionToken(r)) {
			s.respond(w, http.StatusUnauthorized, errorBody{Error: "admin login required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionToken reads the bearer token, falling back to the session cookie.
func sessionToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

package httpserver

import (
	"errors"
	"net/http"
	"time"

	accountdomainerrors "advidly/contexts/identity-access/account-service/domain/errors"
	accounthttp "advidly/contexts/identity-access/account-service/transport/http"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, session, err := s.accounts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.accounts.Handler.LogoutHandler(r.Context(), cookie.Value); err != nil {
			writeAccountDomainError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, accounthttp.LogoutResponse{Message: "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	resp, err := s.accounts.Handler.MeHandler(r.Context(), session.UserID)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, accounthttp.StatusResponse{IsAuthenticated: false})
		return
	}
	session, err := s.accounts.Handler.ValidateSessionHandler(r.Context(), cookie.Value)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, accounthttp.StatusResponse{IsAuthenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, accounthttp.StatusResponse{
		IsAuthenticated: true,
		UserType:        string(session.UserType),
	})
}

func writeAccountDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accountdomainerrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", "registration input is invalid")
	case errors.Is(err, accountdomainerrors.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "email_taken", "email is already registered")
	case errors.Is(err, accountdomainerrors.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "username_taken", "username is already registered")
	case errors.Is(err, accountdomainerrors.ErrProfileExists):
		writeError(w, http.StatusBadRequest, "profile_exists", "a profile already exists for this user")
	case errors.Is(err, accountdomainerrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
	case errors.Is(err, accountdomainerrors.ErrSessionInvalid):
		writeError(w, http.StatusUnauthorized, "unauthenticated", "session is invalid or expired")
	case errors.Is(err, accountdomainerrors.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

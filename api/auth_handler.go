package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	sessions      *auth.Sessions
	credentials   auth.Credentials
	gate          sessionMiddleware
	secureCookies bool
}

func newAuthHandler(sessions *auth.Sessions, credentials auth.Credentials, secureCookies bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		sessions:      sessions,
		credentials:   credentials,
		gate:          newSessionMiddleware(sessions),
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login exchanges the admin credentials for a session cookie
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "{success:true, session}"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, "login", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !h.credentials.Authenticate(req.Email, req.Password) {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("rejected admin login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, session, err := h.sessions.Issue(h.credentials.Name, h.credentials.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Failed to create session", err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    token,
			Path:     "/",
			Expires:  session.ExpiresAt,
			MaxAge:   int(h.sessions.TTL().Seconds()),
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteSuccess(w, map[string]any{"session": session})
	}
}

// logout clears the session cookie. Tokens stay valid until they expire.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteSuccess(w, nil)
	}
}

func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := h.gate.claimsFrom(r)
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized"))
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"authenticated": true,
			"session":       claims.Session(),
		})
	}
}

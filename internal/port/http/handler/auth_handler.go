package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/plantnet/server/internal/auth"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/port/http/middleware"
)

// AuthHandler issues and clears the session cookie. Logout is purely a
// client-state operation: issued tokens stay valid until they expire.
type AuthHandler struct {
	codec      *auth.TokenCodec
	ttl        time.Duration
	production bool
	log        logger.Logger
}

func NewAuthHandler(codec *auth.TokenCodec, ttl time.Duration, production bool, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		codec:      codec,
		ttl:        ttl,
		production: production,
		log:        log.With("handler", "auth"),
	}
}

func (h *AuthHandler) cookieFlags(c *http.Cookie) {
	c.HttpOnly = true
	c.Path = "/"
	c.Secure = h.production
	if h.production {
		// Cross-site frontend deployments need SameSite=None.
		c.SameSite = http.SameSiteNoneMode
	} else {
		c.SameSite = http.SameSiteStrictMode
	}
}

// IssueToken handles POST /jwt: it signs a token for the claimed email and
// sets it as an http-only cookie.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.codec.Issue(req.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	cookie := &http.Cookie{
		Name:    middleware.TokenCookieName,
		Value:   token,
		Expires: time.Now().Add(h.ttl),
	}
	h.cookieFlags(cookie)
	http.SetCookie(w, cookie)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles GET /logout by expiring the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Name:   middleware.TokenCookieName,
		Value:  "",
		MaxAge: -1,
	}
	h.cookieFlags(cookie)
	http.SetCookie(w, cookie)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plantnet/server/internal/auth"
	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/repository"
)

// TokenCookieName is the cookie carrying the session credential.
const TokenCookieName = "token"

func reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// RequireAuth verifies the token cookie and stores the claim email on the
// request context. Every verification failure gets the same 401; the guard
// never reveals whether the token was missing, expired, or tampered.
func RequireAuth(codec *auth.TokenCodec, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil {
				reject(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			email, err := codec.Verify(cookie.Value)
			if err != nil {
				log.Debugf("token verification failed: %v", err)
				reject(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaimEmail(r.Context(), email)))
		})
	}
}

// RequireRole looks the authenticated identity up in the user store and
// rejects unless the stored role matches. The role comes from the store on
// every request, never from the token, so demotions apply immediately.
func RequireRole(users repository.UserRepository, role entity.Role, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := ClaimEmail(r.Context())
			if !ok {
				reject(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			user, err := users.FindByEmail(r.Context(), email)
			if err != nil || user.Role != role {
				if err != nil {
					log.Debugf("role lookup failed for %s: %v", email, err)
				}
				reject(w, http.StatusForbidden, fmt.Sprintf("Forbidden Access! %s Only Actions!", role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEmailMatch compares the claim email against the {email} path
// parameter and the body's top-level "email" field. Sources that are absent
// are skipped; any present source must match exactly, case-sensitive. The
// body is restored for downstream handlers.
func RequireEmailMatch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim, ok := ClaimEmail(r.Context())
		if !ok {
			reject(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		if pathEmail := chi.URLParam(r, "email"); pathEmail != "" && pathEmail != claim {
			reject(w, http.StatusForbidden, "Forbidden Access! Email not Match")
			return
		}

		if r.Body != nil && r.ContentLength != 0 {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				reject(w, http.StatusBadRequest, "invalid request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var probe struct {
				Email string `json:"email"`
			}
			if err := json.Unmarshal(body, &probe); err == nil && probe.Email != "" && probe.Email != claim {
				reject(w, http.StatusForbidden, "Forbidden Access! Email not Match")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/sgacceso/service-acceso-go/internal/terminal"
)

// Terminal request headers.
const (
	HeaderTerminalID     = "X-Terminal-Id"
	HeaderTerminalSecret = "X-Terminal-Secret"
)

// RequireTerminal authenticates scan requests coming from gate devices by
// terminal id + shared secret headers.
func RequireTerminal(svc *terminal.Service, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderTerminalID)
			secret := r.Header.Get(HeaderTerminalSecret)
			if id == "" || secret == "" {
				http.Error(w, "missing terminal credentials", http.StatusUnauthorized)
				return
			}
			if _, err := svc.Verify(r.Context(), id, secret); err != nil {
				if errors.Is(err, terminal.ErrBadSecret) {
					logger.Warnw("terminal auth rejected", "terminal", id)
					http.Error(w, "invalid terminal credentials", http.StatusUnauthorized)
					return
				}
				logger.Errorw("terminal auth failed", "terminal", id, "err", err)
				http.Error(w, "auth unavailable", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireBearer verifies an HS256 bearer token issued by the administrative
// service. This service only verifies; issuance and session bookkeeping
// live elsewhere.
func RequireBearer(secret []byte, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				http.Error(w, "missing_token", http.StatusUnauthorized)
				return
			}
			raw := strings.TrimSpace(authz[len("bearer "):])
			tkn, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !tkn.Valid {
				logger.Debugw("bearer token rejected", "err", err)
				http.Error(w, "invalid_token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

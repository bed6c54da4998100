package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dan9191/shop-service/internal/auth"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// UnauthorizedMessage is the only body a rejected request ever sees
const UnauthorizedMessage = "Não autorizado"

// TokenVerifier resolves a bearer token to a user id
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthMiddleware rejects requests without a valid bearer token with 401 and
// passes the rest on with the caller's user id in the request context.
func AuthMiddleware(tokens TokenVerifier, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := LoggerFromContext(r.Context(), log)

			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, entry, "missing credential")
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				reject(w, entry, "malformed authorization header")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				reason := "invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired token"
				}
				entry.WithError(err).Debug("token verification failed")
				reject(w, entry, reason)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			ctx = WithLogger(ctx, entry.WithField("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, entry *logrus.Entry, reason string) {
	entry.WithField("reason", reason).Warn("Request rejected by auth gate")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	writeError(w, http.StatusUnauthorized, UnauthorizedMessage)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the user named in the verified token
	ContextKeyUser ContextKey = "user"
)

// RequireToken rejects requests whose Authorization header does not carry a valid, unexpired
// token. The header holds the raw token; a "Bearer " prefix is tolerated.
func (s *Server) RequireToken() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rawToken := strings.TrimSpace(r.Header.Get("Authorization"))
			rawToken = strings.TrimSpace(strings.TrimPrefix(rawToken, "Bearer "))
			if rawToken == "" {
				writeMessage(w, http.StatusUnauthorized, "Token missing")
				return
			}

			introspection, err := s.inspector.Introspect(rawToken)
			if err != nil || !introspection.Active {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected token")
				writeMessage(w, http.StatusUnauthorized, "Invalid Token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, introspection.User)
			next(w, r.WithContext(ctx))
		}
	}
}

// UserFromContext returns the user stored by RequireToken
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(ContextKeyUser).(string)
	return user
}

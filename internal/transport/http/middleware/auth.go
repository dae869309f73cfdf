package middleware

import (
	"context"
	"net/http"
	"strings"

	"dayflow/internal/domain/auth"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// SessionCookie is the HttpOnly cookie carrying the bearer token for
// browser clients.
const SessionCookie = "auth_token"

type UserContext struct {
	AccountID string
	Role      string
}

// Auth resolves the caller from the Authorization header or the session
// cookie. It never rejects; RequireAuth does that for protected routes.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(SessionCookie); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, UserContext{
				AccountID: claims.AccountID,
				Role:      claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

func GetUser(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(UserContext)
	return user, ok
}

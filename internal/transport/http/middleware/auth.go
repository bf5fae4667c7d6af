package middleware

import (
	"context"
	"net/http"
	"strings"

	"jscorphr/internal/domain/auth"
)

type ctxKey int

const ctxKeyActor ctxKey = iota

// Auth parses a bearer token into the request context. Requests without a
// valid token pass through anonymously; RequirePermission rejects them later.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithActor(r.Context(), auth.Actor{
				UserID:     claims.UserID,
				Role:       claims.Role,
				EmployeeID: claims.EmployeeID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithActor(ctx context.Context, actor auth.Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, actor)
}

func GetActor(ctx context.Context) (auth.Actor, bool) {
	actor, ok := ctx.Value(ctxKeyActor).(auth.Actor)
	return actor, ok
}

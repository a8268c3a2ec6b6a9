package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/pkg/auth"
)

type actorKey struct{}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor пользователь, прошедший аутентификацию
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// Auth проверяет Bearer токен и кладет пользователя в контекст запроса
func Auth(tokens TokenParser, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, "missing bearer token")
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Warn("Auth: %s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "invalid or expired token")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				log.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "invalid token subject")
				return
			}

			role := claims.Role
			switch role {
			case auth.RoleUser, auth.RoleOwner, auth.RoleAdmin:
			default:
				log.Warn("Auth: %s %s - unknown role %q for user=%d", r.Method, r.URL.Path, role, userID)
				handlers.RespondForbidden(w, "unknown role")
				return
			}

			ctx := WithActor(r.Context(), domain.Actor{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

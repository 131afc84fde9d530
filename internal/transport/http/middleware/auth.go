package httpmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/geonote/chat-service/internal/domain"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

type Identity interface {
	Verify(ctx context.Context, credential string) (*domain.User, error)
}

// AuthMiddleware requires a valid Bearer access token and puts the resolved
// user on the request context.
func AuthMiddleware(identity Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || len(auth) <= 7 {
				unauthorized(w)
				return
			}

			u, err := identity.Verify(r.Context(), strings.TrimSpace(auth[7:]))
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"invalid credential"}`))
}

func UserFromCtx(ctx context.Context) *domain.User {
	if v := ctx.Value(ctxKeyUser); v != nil {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

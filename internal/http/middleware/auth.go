package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/invoicer/internal/permission"
)

type identityKey struct{}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity reads an HS256 bearer token and stores its email claim as the request
// identity. Requests without a valid token proceed as permission.Anonymous.
func Identity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := identityFromHeader(r.Header.Get("Authorization"), secret)

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func identityFromHeader(header string, secret []byte) permission.Identity {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" || len(secret) == 0 {
		return permission.Anonymous
	}

	var c claims

	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		slog.Debug("rejected bearer token", "error", err)
		return permission.Anonymous
	}

	return permission.Identity(c.Email)
}

func WithIdentity(ctx context.Context, id permission.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the request identity, or permission.Anonymous.
func IdentityFrom(ctx context.Context) permission.Identity {
	id, _ := ctx.Value(identityKey{}).(permission.Identity)

	return id
}

// PathGate rejects requests whose path the identity may not access.
func PathGate(policy *permission.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFrom(r.Context())

			if !policy.CanAccessPath(id, r.URL.Path) {
				slog.Warn("access denied", "identity", id, "path", r.URL.Path)
				http.Error(w, "forbidden", http.StatusForbidden)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

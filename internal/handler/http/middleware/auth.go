package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/launa-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RevocationChecker reports whether a token was logged out.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

// AuthRequired rejects requests without a valid, unrevoked access token.
// It runs after jwtauth.Verifier.
func AuthRequired(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			revoked, err := revocations.IsTokenRevoked(r.Context(), jwtauth.TokenFromHeader(r))
			if err != nil {
				// The revocation list lives in the cache; an outage should not lock everyone out.
				slog.Warn("revocation check failed", "error", err)
			}
			if revoked {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

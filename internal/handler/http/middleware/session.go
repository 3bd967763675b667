package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/launa-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// SessionContext turns the verified token claims into an auth.Session on
// the request context. It must run after AuthRequired.
func SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		employeeID, _ := claims["employee_id"].(string)
		if employeeID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		displayName, _ := claims["display_name"].(string)

		ctx := auth.WithSession(r.Context(), auth.Session{
			EmployeeID:  employeeID,
			DisplayName: displayName,
			Token:       jwtauth.TokenFromHeader(r),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

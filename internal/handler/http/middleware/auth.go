package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sportcenter/shift-manager/internal/domain/auth"
	"github.com/sportcenter/shift-manager/internal/handler/http/response"
)

// AuthRequired rejects requests whose verified token is missing, is not an
// access token, or carries no subject. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, _ := claims["type"].(string)
		userID, _ := claims["user_id"].(string)
		if tokenType != "access" || userID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AdminOnly lets through tokens carrying is_admin=true.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if admin, _ := claims["is_admin"].(bool); !admin {
			response.HandleError(w, auth.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

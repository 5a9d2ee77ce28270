package router

import (
	"net/http"
	"strings"

	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
)

// bearerToken pulls the token out of the Authorization header, or returns
// empty when the scheme is not Bearer.
func bearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func middlewareAuthentication(verifier jwt.JWT, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if routes, ok := public[r.Method]; ok {
				if _, skip := routes[matchedRoutePath(r)]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			token := bearerToken(r)
			if token == "" {
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeJSON(w, map[string]string{"message": "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}

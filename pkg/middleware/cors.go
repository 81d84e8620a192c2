package middleware

import (
	"net/http"

	"github.com/samber/lo"
)

// Cors libera as origens configuradas em CORS_ALLOWED_ORIGINS. "*" libera todas.
func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := lo.Contains(allowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case origin == "":
			case allowAll:
				// curinga não acompanha credenciais
				w.Header().Set("Access-Control-Allow-Origin", "*")
				setCorsHeaders(w)
			case lo.Contains(allowedOrigins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
				setCorsHeaders(w)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setCorsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, DELETE")
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Requested-With")
	w.Header().Set("Access-Control-Max-Age", "86400") // Cache do CORS por 24 horas
}

package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows a single browser origin to call the API with its session cookie.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true, // Required for cookies!
	})
	return c.Handler
}

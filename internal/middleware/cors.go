package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows any origin. The session token travels in a custom header, so
// it is both accepted and exposed.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", TokenHeader},
		ExposedHeaders: []string{TokenHeader},
	}
	return cors.New(options).Handler
}

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/cors"
)

// CORSMiddleware разрешает запросы синхронизации из браузерных клиентов.
// Пустой allowedOrigins разрешает любой origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         int((10 * time.Minute).Seconds()),
	}
	if len(allowedOrigins) == 0 {
		opts.AllowOriginFunc = func(origin string) bool {
			return true
		}
	} else {
		opts.AllowedOrigins = allowedOrigins
	}

	return cors.New(opts).Handler
}

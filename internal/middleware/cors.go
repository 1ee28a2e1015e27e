package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

var (
	allowedMethods = []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders = []string{"Content-Type"}
)

// CORS applies the fixed cross-origin policy to every response and answers
// any OPTIONS request with 204 before it reaches next.
//
// rs/cors handles origin negotiation (Vary: Origin) for browser requests;
// the fixed headers are then written on top so that clients which send no
// Origin see the same policy.
func CORS(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     allowedMethods,
		AllowedHeaders:     allowedHeaders,
		OptionsPassthrough: true,
	})

	policy := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", strings.Join(allowedMethods, ", "))
		h.Set("Access-Control-Allow-Headers", strings.Join(allowedHeaders, ", "))

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
	return c.Handler(policy)
}

package middlewares

import (
	"net/http"
)

// Cache marks responses as cacheable for an hour, revalidating once stale.
func Cache(handler http.Handler) http.Handler {
	return CacheControl("stale-while-revalidate, max-age=3600")(handler)
}

// NoCache forces clients to revalidate every response.
func NoCache(handler http.Handler) http.Handler {
	return CacheControl("no-cache")(handler)
}

func CacheControl(value string) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			handler.ServeHTTP(w, r)
		})
	}
}

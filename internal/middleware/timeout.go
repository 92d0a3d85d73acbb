package middleware

import (
	"net/http"
	"time"
)

// Timeout caps request handling time for a subtree
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}

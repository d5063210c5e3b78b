package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// TokenAuth returns middleware that rejects requests not carrying token,
// either as "Authorization: token T", "Authorization: Bearer T" or a
// "token" query parameter. Rejected requests get 403 and never reach next.
func TokenAuth(token string, logger hclog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := tokenFromRequest(r)
			if token == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				logger.Debug("rejected unauthenticated request", "path", r.URL.Path, "remote", r.RemoteAddr)
				writeJSON(w, http.StatusForbidden, map[string]string{"message": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, value, ok := strings.Cut(auth, " ")
		if ok && (strings.EqualFold(scheme, "token") || strings.EqualFold(scheme, "bearer")) {
			return strings.TrimSpace(value)
		}
	}
	return r.URL.Query().Get("token")
}

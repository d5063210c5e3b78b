package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenAuth(t *testing.T) {
	const token = "s3cret"

	tests := []struct {
		name       string
		url        string
		header     string
		configured string
		wantStatus int
	}{
		{"token header", "/x", "token s3cret", token, http.StatusOK},
		{"bearer header", "/x", "Bearer s3cret", token, http.StatusOK},
		{"scheme is case insensitive", "/x", "TOKEN s3cret", token, http.StatusOK},
		{"query parameter", "/x?token=s3cret", "", token, http.StatusOK},
		{"missing token", "/x", "", token, http.StatusForbidden},
		{"wrong token", "/x", "token nope", token, http.StatusForbidden},
		{"wrong query token", "/x?token=nope", "", token, http.StatusForbidden},
		{"unknown scheme", "/x", "Basic s3cret", token, http.StatusForbidden},
		{"prefix of token", "/x", "token s3c", token, http.StatusForbidden},
		{"empty configured token rejects all", "/x?token=", "token ", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			TokenAuth(tt.configured, nil)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			if tt.wantStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"message":"Forbidden"}`, rec.Body.String())
			}
		})
	}
}

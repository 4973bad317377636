package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBasicAuth(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		user     string
		pass     string
		withAuth bool
		want     int
	}{
		{name: "valid", login: "admin", user: "admin", pass: "secret", withAuth: true, want: http.StatusOK},
		{name: "wrong password", login: "admin", user: "admin", pass: "nope", withAuth: true, want: http.StatusUnauthorized},
		{name: "wrong user", login: "admin", user: "root", pass: "secret", withAuth: true, want: http.StatusUnauthorized},
		{name: "no header", login: "admin", want: http.StatusUnauthorized},
		{name: "login not configured", login: "", user: "", pass: "secret", withAuth: true, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := BasicAuth(tt.login, "secret")(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/api/report/excel", nil)
			if tt.withAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="Reports"`, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	allowed := []string{"http://localhost:5173", "https://app.example.com/"}

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		nextCalled  bool
	}{
		{
			name:       "allowed origin gets header",
			method:     http.MethodGet,
			origin:     "http://localhost:5173",
			wantStatus: http.StatusOK,
			wantOrigin: "http://localhost:5173",
			nextCalled: true,
		},
		{
			name:       "trailing slash in config is normalized",
			method:     http.MethodGet,
			origin:     "https://app.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "https://app.example.com",
			nextCalled: true,
		},
		{
			name:       "unknown origin gets no header",
			method:     http.MethodGet,
			origin:     "http://evil.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "",
			nextCalled: true,
		},
		{
			name:       "no origin header",
			method:     http.MethodGet,
			origin:     "",
			wantStatus: http.StatusOK,
			wantOrigin: "",
			nextCalled: true,
		},
		{
			name:       "preflight for allowed origin",
			method:     http.MethodOptions,
			origin:     "http://localhost:5173",
			wantStatus: http.StatusNoContent,
			wantOrigin: "http://localhost:5173",
			nextCalled: false,
		},
		{
			name:       "preflight for unknown origin",
			method:     http.MethodOptions,
			origin:     "http://evil.example.com",
			wantStatus: http.StatusNoContent,
			wantOrigin: "",
			nextCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})
			handler := CORS(allowed, next)

			req := httptest.NewRequest(tt.method, "http://test/venues", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.method == http.MethodOptions && tt.wantOrigin != "" {
				assert.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, corsAllowHeaders, rr.Header().Get("Access-Control-Allow-Headers"))
			}
		})
	}
}

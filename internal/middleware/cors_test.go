package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name           string
		origin         string
		userAgent      string
		path           string
		expectCors     bool
		expectedStatus int
	}{
		{
			name:           "AllowedOrigin",
			origin:         "https://straviz.2beens.online",
			path:           "/review/2024",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "AllowedLocalhost",
			origin:         "http://localhost:3000",
			path:           "/review/2024",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotAllowedOrigin",
			origin:         "https://www.notallowed.com",
			path:           "/review/2024",
			expectCors:     false,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "AllowedUserAgentCurl",
			userAgent:      "curl/8.5.0",
			path:           "/review/2024",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "HealthWithoutOrigin",
			path:           "/health",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.userAgent != "" {
				req.Header.Set("User-Agent", tc.userAgent)
			}

			rec := httptest.NewRecorder()
			Cors()(next).ServeHTTP(rec, req)

			require.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectCors, called)
			if tc.expectCors {
				assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

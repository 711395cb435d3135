package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NomadCrew/feedback-portal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	mockConfig := &config.ServerConfig{
		AllowedOrigins: []string{"http://localhost:5000", "https://feedback.example.com"},
	}

	testCases := []struct {
		name           string
		requestOrigin  string
		expectedOrigin string
		isOptions      bool
		expectedStatus int
	}{
		{
			name:           "Allowed origin, simple request",
			requestOrigin:  "http://localhost:5000",
			expectedOrigin: "http://localhost:5000",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Allowed origin, preflight",
			requestOrigin:  "https://feedback.example.com",
			expectedOrigin: "https://feedback.example.com",
			isOptions:      true,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Disallowed origin",
			requestOrigin:  "http://evil.example.com",
			expectedOrigin: "",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "No origin",
			expectedOrigin: "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware(mockConfig))
			router.GET("/feedback", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

			method := http.MethodGet
			if tc.isOptions {
				method = http.MethodOptions
			}
			req, _ := http.NewRequest(method, "/feedback", nil)
			if tc.requestOrigin != "" {
				req.Header.Set("Origin", tc.requestOrigin)
			}
			if tc.isOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware(&config.ServerConfig{AllowedOrigins: []string{"*"}}))
	router.GET("/feedback", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	req, _ := http.NewRequest(http.MethodGet, "/feedback", nil)
	req.Header.Set("Origin", "http://anything.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

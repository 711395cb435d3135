package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/NomadCrew/feedback-portal/errors"
	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/NomadCrew/feedback-portal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler(t *testing.T) {
	testCases := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedBody       types.ErrorResponse
	}{
		{
			name:               "Validation error",
			err:                apperrors.ValidationFailed("Rating must be between 1 and 5.", "rating=9"),
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedBody: types.ErrorResponse{
				Type:    "VALIDATION_ERROR",
				Message: "Rating must be between 1 and 5.",
				Code:    "422",
				Details: "rating=9",
			},
		},
		{
			name:               "Not found error",
			err:                apperrors.NotFound("Feedback", 42),
			expectedStatusCode: http.StatusNotFound,
			expectedBody: types.ErrorResponse{
				Type:    "NOT_FOUND",
				Message: "Feedback not found",
				Code:    "404",
				Details: "ID: 42",
			},
		},
		{
			name:               "Wrapped app error",
			err:                fmt.Errorf("respond: %w", apperrors.NotFound("Feedback", 7)),
			expectedStatusCode: http.StatusNotFound,
			expectedBody: types.ErrorResponse{
				Type:    "NOT_FOUND",
				Message: "Feedback not found",
				Code:    "404",
				Details: "ID: 7",
			},
		},
		{
			name:               "Database error hides detail",
			err:                apperrors.NewDatabaseError(errors.New("pq: connection reset")),
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody: types.ErrorResponse{
				Type:    "DATABASE_ERROR",
				Message: "Database operation failed",
				Code:    "500",
			},
		},
		{
			name:               "Plain error",
			err:                errors.New("internal processing error"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedBody: types.ErrorResponse{
				Type:    "SERVER_ERROR",
				Message: "Internal Server Error",
				Code:    "500",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler())
			router.GET("/test", func(c *gin.Context) {
				_ = c.Error(tc.err)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)
			var body types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedBody, body)
		})
	}
}

func TestErrorHandler_NoErrors(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.DELETE("/test", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

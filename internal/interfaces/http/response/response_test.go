package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/interfaces/http/response"
)

func runError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	response.Error(c, err)
	return w
}

func TestError_AppErrorKeepsStatus(t *testing.T) {
	w := runError(domainerrors.NewAppError(http.StatusTeapot, "short and stout", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, w.Body.String(), "short and stout")
}

func TestError_SentinelMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domainerrors.ErrNotFound, http.StatusNotFound},
		{"already exists", domainerrors.ErrAlreadyExists, http.StatusConflict},
		{"already processed", domainerrors.ErrAlreadyProcessed, http.StatusConflict},
		{"invalid action", domainerrors.ErrInvalidAction, http.StatusBadRequest},
		{"invalid credentials", domainerrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", domainerrors.ErrInactiveAccount, http.StatusForbidden},
		{"forbidden", domainerrors.ErrForbidden, http.StatusForbidden},
		{"unauthorized", domainerrors.ErrUnauthorized, http.StatusUnauthorized},
		{"storage", domainerrors.ErrStorage, http.StatusBadGateway},
		{"invalid input", domainerrors.ErrInvalidInput, http.StatusBadRequest},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := runError(tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestError_WrappedSentinel(t *testing.T) {
	wrapped := domainerrors.NewError("could not store file", domainerrors.ErrStorage)
	w := runError(wrapped)
	// The explicit AppError wins over the wrapped sentinel's canonical status.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "could not store file")
}

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Success(c, http.StatusCreated, gin.H{"message": "done"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"done"}`, w.Body.String())
}

package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "student-portal.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppErrors keep their status; bare domain
// sentinels are mapped to their canonical status; anything else is a 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}

func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("Resource already exists")
	case errors.Is(err, domainerrors.ErrAlreadyProcessed):
		return domainerrors.NewAppError(http.StatusConflict, "Payment proof already processed", err)
	case errors.Is(err, domainerrors.ErrInvalidAction):
		return domainerrors.BadRequest("Action must be approve or reject")
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, domainerrors.ErrInactiveAccount):
		return domainerrors.NewAppError(http.StatusForbidden, "Account is not active", err)
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("Insufficient permissions")
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("Unauthorized")
	case errors.Is(err, domainerrors.ErrStorage):
		return domainerrors.NewAppError(http.StatusBadGateway, "Failed to store uploaded file", err)
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		return domainerrors.BadRequest(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/interfaces/http/response"
	"student-portal.backend/internal/usecases"
	"student-portal.backend/pkg/utils"
)

// AdminHandler handles admin verification endpoints
type AdminHandler struct {
	verificationUsecase *usecases.VerificationUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(verificationUsecase *usecases.VerificationUsecase) *AdminHandler {
	return &AdminHandler{
		verificationUsecase: verificationUsecase,
	}
}

// ListPendingVerifications lists users awaiting payment verification
// GET /api/v1/admin/verifications
func (h *AdminHandler) ListPendingVerifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	params := utils.GetPaginationParams(page, limit)

	users, total, err := h.verificationUsecase.ListPending(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// ProcessVerification approves or rejects a pending payment proof
// POST /api/v1/admin/verifications/:userId
func (h *AdminHandler) ProcessVerification(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input entities.VerificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.verificationUsecase.ProcessVerification(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

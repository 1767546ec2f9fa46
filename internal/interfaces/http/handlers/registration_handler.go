package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/interfaces/http/response"
	"student-portal.backend/internal/usecases"
)

// RegistrationHandler handles applicant registration endpoints
type RegistrationHandler struct {
	registrationUsecase *usecases.RegistrationUsecase
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationUsecase *usecases.RegistrationUsecase) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUsecase: registrationUsecase,
	}
}

// Register handles student registration
// POST /api/v1/registration/register (multipart form + payment_proof file)
func (h *RegistrationHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("payment_proof")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("payment_proof file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("failed to read payment_proof file"))
		return
	}
	defer file.Close()

	user, err := h.registrationUsecase.Register(c.Request.Context(), &input, file, fileHeader.Filename)
	if err != nil {
		if err == domainerrors.ErrAlreadyExists {
			response.Error(c, domainerrors.Conflict("The user with this email already exists in the system"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful. Please wait for admin approval.",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

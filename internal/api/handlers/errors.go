package handlers

import (
	"errors"
	"net/http"

	"jobboard/internal/logging"
	"jobboard/internal/services"
	"jobboard/internal/transport/dto"
	"jobboard/internal/validation"

	"github.com/gin-gonic/gin"
)

// respondValidation replies 400 with the field errors of a failed struct validation.
func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
		Success: false,
		Errors:  validation.FormatValidationErrors(err),
	})
}

// respondBindError replies 400 when the request body could not be decoded.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
		Success: false,
		Errors:  map[string]string{"error": "Invalid request body: " + err.Error()},
	})
}

// respondServiceError translates a service error into the HTTP response.
// op names the failed operation in the log line written for 500s.
func respondServiceError(c *gin.Context, log logging.Logger, op string, err error) {
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Success: false, Errors: fieldErrs})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid status."})
	case errors.Is(err, services.ErrAlreadyApplied):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: services.MsgAlreadyApplied})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: services.MsgInvalidCredentials})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "A conflicting record already exists."})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: err.Error()})
	default:
		log.Error(c.Request.Context(), "Error "+op, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"wholesale-catalog/internal/models"
	"wholesale-catalog/internal/repository"
)

func respond(c *gin.Context, status int, message string, data any, pagination *models.Pagination) {
	c.JSON(status, models.NewSuccess(message, data, pagination))
}

func respondError(c *gin.Context, status int, message string, details []models.ErrorDetail) {
	c.JSON(status, models.NewError(status, message, details))
}

// respondBindingError maps a gin binding failure to a 400 with per-field
// details when the error came from the validator.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]models.ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, models.ErrorDetail{
				Field:   strings.ToLower(fe.Field()),
				Message: validationMessage(fe),
			})
		}
		respondError(c, http.StatusBadRequest, "validation failed", details)
		return
	}
	respondError(c, http.StatusBadRequest, "invalid request body", nil)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "failed validation: " + fe.Tag()
	}
}

// respondRepoError maps engine errors onto the HTTP taxonomy: 404 not found,
// 409 conflict, 400 validation, 500 everything else.
func respondRepoError(c *gin.Context, resource string, err error) {
	var conflict *repository.ConflictError
	var invalid *repository.ValidationError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, resource+" not found", nil)
	case errors.As(err, &conflict):
		respondError(c, http.StatusConflict, conflict.Error(), []models.ErrorDetail{
			{Field: conflict.Field, Message: "already exists"},
		})
	case errors.As(err, &invalid):
		respondError(c, http.StatusBadRequest, invalid.Error(), []models.ErrorDetail{
			{Field: invalid.Field, Message: invalid.Message},
		})
	default:
		respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

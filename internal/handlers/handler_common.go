package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/dto"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dto.DateLayout, fl.Field().String())
			return err == nil
		})
	}
}

// respondServiceError translates service errors into HTTP responses. Domain
// sentinels map to client errors; anything else is a 500 with a generic
// message so internals never leak.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrLocked):
		c.JSON(http.StatusLocked, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrApprovedExists),
		errors.Is(err, apperrors.ErrAlreadyPaid),
		errors.Is(err, apperrors.ErrNotPaid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// listParams reads the standard limit/nextToken query pair. An absent or
// malformed limit reads as zero; the service applies its default page size.
func listParams(c *gin.Context) (int, *string) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}
	return limit, nextToken
}

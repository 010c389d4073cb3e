package http

import (
	"errors"
	"net/http"

	"loja-backend/internal/dto"
	"loja-backend/internal/models"
	"loja-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeServiceError мапит ошибки сервисного слоя на HTTP-ответы.
// Ошибки инвариантов агрегата (models.Err*) — это 400, "не найдено" — 404.
func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))

	case errors.Is(err, service.ErrInstallmentsInvalid),
		errors.Is(err, service.ErrPriceNegative),
		errors.Is(err, models.ErrZeroInstallments),
		errors.Is(err, models.ErrInstallmentsReduced),
		errors.Is(err, models.ErrRemainingNegative),
		errors.Is(err, models.ErrRemainingExceedsTotal),
		errors.Is(err, models.ErrNoRemainingInstallments):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))

	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))

	case errors.Is(err, service.ErrTooManyRequests):
		c.JSON(http.StatusTooManyRequests, dto.NewRateLimitedError(err.Error()))

	default:
		log.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

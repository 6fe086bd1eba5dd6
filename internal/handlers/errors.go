package handlers

import (
	"errors"
	"net/http"

	"starbook/internal/models"
	"starbook/internal/utils"
	"starbook/internal/validators"

	"github.com/gin-gonic/gin"
)

// respondError maps business errors to HTTP responses. Unknown errors are
// reported as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var validationErrs validators.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, ve := range validationErrs {
			details[ve.Field] = ve.Message
		}
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", utils.ErrValidationFailed, details)
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidPurpose),
		errors.Is(err, models.ErrUnknownPaymentMethodType):
		utils.BadRequestResponse(c, err.Error())

	case errors.Is(err, models.ErrInsufficientFunds):
		utils.UnprocessableResponse(c, "INSUFFICIENT_FUNDS", err.Error())

	case errors.Is(err, models.ErrAccountNotFound):
		utils.NotFoundResponse(c, "account")
	case errors.Is(err, models.ErrDepositNotFound):
		utils.NotFoundResponse(c, "deposit")
	case errors.Is(err, models.ErrPaymentMethodNotFound):
		utils.NotFoundResponse(c, "payment method")
	case errors.Is(err, models.ErrBookingNotFound):
		utils.NotFoundResponse(c, "booking")
	case errors.Is(err, models.ErrTicketNotFound):
		utils.NotFoundResponse(c, "ticket")
	case errors.Is(err, models.ErrMembershipNotFound):
		utils.NotFoundResponse(c, "membership")

	case errors.Is(err, models.ErrDepositNotPending),
		errors.Is(err, models.ErrBookingNotActive),
		errors.Is(err, models.ErrTicketNotActive),
		errors.Is(err, models.ErrMembershipActive),
		errors.Is(err, models.ErrPaymentMethodInUse),
		errors.Is(err, models.ErrPaymentMethodInactive):
		utils.ConflictResponse(c, err.Error())

	default:
		utils.InternalServerErrorResponse(c)
	}
}

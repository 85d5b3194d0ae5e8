package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/pkg/currency"
	"github.com/polkiloo/deliveryportal/internal/server/http/dto"
	"github.com/polkiloo/deliveryportal/internal/server/http/middleware"
)

const dateLayout = "2006-01-02"

// CurrentIdentity extracts authenticated caller from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return model.Identity{}
	}
	id, _ := val.(model.Identity)
	return id
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

// writeDomainError maps the error taxonomy to HTTP statuses. Store and gateway
// failures get generic messages so internals never reach the caller.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized),
		errors.Is(err, domainErrors.ErrMissingSignature),
		errors.Is(err, domainErrors.ErrInvalidSignature):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domainErrors.ErrForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainErrors.ErrBadRequest),
		errors.Is(err, domainErrors.ErrInvalidPayload),
		errors.Is(err, domainErrors.ErrAlreadyPaid),
		errors.Is(err, domainErrors.ErrNotPayable):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrPaymentConflict),
		errors.Is(err, domainErrors.ErrOrderInProgress):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domainErrors.ErrConfiguration):
		abortWithError(c, http.StatusInternalServerError, "payment gateway not configured")
	case errors.Is(err, domainErrors.ErrGateway):
		abortWithError(c, http.StatusInternalServerError, "payment gateway request failed")
	default:
		abortWithError(c, http.StatusInternalServerError, "internal server error")
	}
}

func toInvoiceResponse(inv model.Invoice) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:                inv.ID,
		ProjectID:         inv.ProjectID,
		Title:             inv.Title,
		Amount:            inv.Amount.StringFixed(currency.Exponent(inv.Currency)),
		Currency:          inv.Currency,
		Status:            string(inv.Status),
		CreatedAt:         inv.CreatedAt,
		RazorpayOrderID:   inv.GatewayOrderID,
		RazorpayPaymentID: inv.GatewayPaymentID,
		PaidAt:            inv.PaidAt,
	}
	if inv.DueDate != nil {
		due := inv.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}
	return resp
}

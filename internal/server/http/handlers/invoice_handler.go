package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/server/http/dto"
)

// InvoiceHandler manages invoice endpoints.
type InvoiceHandler struct {
	facade InvoiceFacade
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// Create handles POST /api/admin/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	in := model.NewInvoice{
		ProjectID: strings.TrimSpace(req.ProjectID),
		Title:     req.Title,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    model.InvoiceStatus(req.Status),
	}
	if req.DueDate != "" {
		due, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "due_date must use YYYY-MM-DD")
			return
		}
		in.DueDate = &due
	}

	inv, err := h.facade.CreateInvoice(c.Request.Context(), CurrentIdentity(c), in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInvoiceResponse(*inv))
}

// ListByProject handles GET /api/projects/:id/invoices.
func (h *InvoiceHandler) ListByProject(c *gin.Context) {
	invoices, err := h.facade.ProjectInvoices(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if len(invoices) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		response = append(response, toInvoiceResponse(inv))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/admin/invoices/:id/status.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		abortWithError(c, http.StatusBadRequest, "status is required")
		return
	}

	inv, err := h.facade.UpdateInvoiceStatus(c.Request.Context(), CurrentIdentity(c), c.Param("id"), model.InvoiceStatus(req.Status))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(*inv))
}

// Delete handles DELETE /api/admin/invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteInvoice(c.Request.Context(), CurrentIdentity(c), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

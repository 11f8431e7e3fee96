package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/presentation/http/dto/request"
	"github.com/aiqso/odoo-bridge/internal/presentation/http/dto/response"
	"github.com/aiqso/odoo-bridge/pkg/apperror"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	billing *service.BillingService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(billing *service.BillingService) *InvoiceHandler {
	return &InvoiceHandler{billing: billing}
}

// Create handles POST /api/create_invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewBadRequestError(err.Error()))
		return
	}

	result, err := h.billing.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		CustomerEmail: req.CustomerEmail,
		Amount:        req.Amount,
		SessionID:     req.SessionID,
		Description:   req.Description,
		ProductCode:   req.ProductCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.CreateInvoiceResponse{
		Success:       true,
		InvoiceID:     result.InvoiceID,
		InvoiceNumber: result.InvoiceNumber,
		Message:       "Invoice " + result.InvoiceNumber + " created and posted",
	})
}

// MarkPaid handles POST /api/mark_invoice_paid
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	var req request.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewBadRequestError(err.Error()))
		return
	}

	result, err := h.billing.RegisterPayment(c.Request.Context(), &service.RegisterPaymentInput{
		InvoiceID:  req.InvoiceID,
		SessionID:  req.SessionID,
		PaymentRef: req.PaymentID,
		Amount:     req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.MarkPaidResponse{
		Success:   true,
		InvoiceID: result.InvoiceID,
		PaymentID: result.PaymentID,
		Message:   result.Message,
	})
}

// Get handles GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.NewBadRequestError("Invalid invoice id"))
		return
	}

	detail, err := h.billing.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(detail))
}

// GetBySession handles GET /api/invoices/by-stripe/:session_id
func (h *InvoiceHandler) GetBySession(c *gin.Context) {
	detail, err := h.billing.GetInvoiceBySession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toInvoiceResponse(detail))
}

func toInvoiceResponse(d *service.InvoiceDetail) response.InvoiceResponse {
	return response.InvoiceResponse{
		ID:             d.ID,
		Name:           d.Name,
		PartnerName:    d.PartnerName,
		PartnerEmail:   d.PartnerEmail,
		AmountTotal:    d.AmountTotal,
		AmountResidual: d.AmountResidual,
		State:          d.State,
		PaymentState:   d.PaymentState,
		InvoiceDate:    d.InvoiceDate,
		SessionID:      d.SessionID,
	}
}

package handler

import (
	rentalapp "github.com/alquileres/backend/internal/application/rental"
	"github.com/gin-gonic/gin"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *rentalapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *rentalapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// Create handles POST /properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req rentalapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, property)
}

// List handles GET /properties
func (h *PropertyHandler) List(c *gin.Context) {
	var filter rentalapp.PropertyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	properties, err := h.propertyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, properties, int64(len(properties)))
}

// GetByID handles GET /properties/:id
func (h *PropertyHandler) GetByID(c *gin.Context) {
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// Update handles PUT /properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req rentalapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// Delete handles DELETE /properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), propertyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkPaid handles POST /properties/:id/mark-paid. It records the
// current cycle as paid and advances the payment date one month.
func (h *PropertyHandler) MarkPaid(c *gin.Context) {
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	property, err := h.propertyService.MarkPaid(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// CancelPayment handles POST /properties/:id/cancel-payment. It undoes
// a mark-paid, moving the payment date one month back.
func (h *PropertyHandler) CancelPayment(c *gin.Context) {
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	property, err := h.propertyService.CancelPayment(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// UpdatePaymentStatus handles PATCH /properties/:id/payment-status
func (h *PropertyHandler) UpdatePaymentStatus(c *gin.Context) {
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req rentalapp.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	property, err := h.propertyService.UpdatePaymentStatus(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

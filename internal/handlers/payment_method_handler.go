package handlers

import (
	"starbook/internal/middleware"
	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/services"
	"starbook/internal/utils"
	"starbook/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethodHandler struct {
	paymentMethodService services.PaymentMethodService
}

func NewPaymentMethodHandler(paymentMethodService services.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		paymentMethodService: paymentMethodService,
	}
}

// ListActive returns active payment methods visible to users, defaults
// first.
func (h *PaymentMethodHandler) ListActive(c *gin.Context) {
	methods, err := h.paymentMethodService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment methods retrieved successfully", methods)
}

// List returns all payment methods with optional type/status filters.
func (h *PaymentMethodHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := &interfaces.PaymentMethodFilter{}

	if typeStr := c.Query("type"); typeStr != "" {
		methodType := models.PaymentMethodType(typeStr)
		filter.Type = &methodType
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := statusStr == "true"
		filter.Status = &status
	}

	methods, total, err := h.paymentMethodService.List(c.Request.Context(), filter, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Payment methods retrieved successfully", methods, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

// Get returns one payment method by ID.
func (h *PaymentMethodHandler) Get(c *gin.Context) {
	methodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid payment method ID")
		return
	}

	method, err := h.paymentMethodService.GetByID(c.Request.Context(), methodID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment method retrieved successfully", method)
}

// Create registers a new payment method.
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		respondError(c, errs)
		return
	}

	method, err := h.paymentMethodService.Create(c.Request.Context(), adminID, &request)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Payment method created successfully", method)
}

// Update applies a partial update to a payment method.
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	methodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid payment method ID")
		return
	}

	var request services.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	method, err := h.paymentMethodService.Update(c.Request.Context(), adminID, methodID, &request)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment method updated successfully", method)
}

// ToggleStatus flips a payment method between active and inactive.
func (h *PaymentMethodHandler) ToggleStatus(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	methodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid payment method ID")
		return
	}

	method, err := h.paymentMethodService.ToggleStatus(c.Request.Context(), adminID, methodID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment method status updated successfully", method)
}

// SetDefault promotes a payment method to the default for its type.
func (h *PaymentMethodHandler) SetDefault(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	methodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid payment method ID")
		return
	}

	method, err := h.paymentMethodService.SetDefault(c.Request.Context(), adminID, methodID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment method set as default successfully", method)
}

// Delete removes a payment method with no pending deposits against it.
func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	methodID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid payment method ID")
		return
	}

	if err := h.paymentMethodService.Delete(c.Request.Context(), adminID, methodID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment method deleted successfully", nil)
}

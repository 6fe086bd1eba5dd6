package handlers

import (
	"starbook/internal/middleware"
	"starbook/internal/models"
	"starbook/internal/services"
	"starbook/internal/utils"
	"starbook/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DepositHandler struct {
	depositService services.DepositService
}

func NewDepositHandler(depositService services.DepositService) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
	}
}

// Create submits a new deposit request for admin review.
func (h *DepositHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.CreateDepositRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		respondError(c, errs)
		return
	}

	deposit, err := h.depositService.Create(c.Request.Context(), userID, &request)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Deposit submitted successfully", deposit)
}

// GetMyDeposits lists the authenticated user's deposits.
func (h *DepositHandler) GetMyDeposits(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	deposits, total, err := h.depositService.GetUserDeposits(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Deposits retrieved successfully", deposits, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

// GetMyDeposit returns one of the authenticated user's deposits.
func (h *DepositHandler) GetMyDeposit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	depositID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid deposit ID")
		return
	}

	deposit, err := h.depositService.GetUserDeposit(c.Request.Context(), depositID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Deposit retrieved successfully", deposit)
}

// List returns deposits across all users, optionally filtered by status.
func (h *DepositHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.DepositStatus(statusStr)
		switch status {
		case models.DepositStatusPending, models.DepositStatusCompleted, models.DepositStatusFailed:
		default:
			utils.BadRequestResponse(c, "Invalid status")
			return
		}

		deposits, total, err := h.depositService.ListByStatus(c.Request.Context(), status, params)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessResponseWithMeta(c, "Deposits retrieved successfully", deposits, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
		return
	}

	deposits, total, err := h.depositService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Deposits retrieved successfully", deposits, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

// Get returns any deposit by ID.
func (h *DepositHandler) Get(c *gin.Context) {
	depositID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid deposit ID")
		return
	}

	deposit, err := h.depositService.GetByID(c.Request.Context(), depositID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Deposit retrieved successfully", deposit)
}

type processDepositRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

// Approve completes a pending deposit and credits the user's balance.
func (h *DepositHandler) Approve(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	depositID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid deposit ID")
		return
	}

	var request processDepositRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	deposit, err := h.depositService.Approve(c.Request.Context(), depositID, adminID, request.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Deposit approved successfully", deposit)
}

// Reject fails a pending deposit without crediting.
func (h *DepositHandler) Reject(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	depositID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid deposit ID")
		return
	}

	var request processDepositRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	deposit, err := h.depositService.Reject(c.Request.Context(), depositID, adminID, request.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Deposit rejected successfully", deposit)
}

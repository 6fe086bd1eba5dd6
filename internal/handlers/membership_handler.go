package handlers

import (
	"starbook/internal/middleware"
	"starbook/internal/services"
	"starbook/internal/utils"
	"starbook/internal/validators"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	membershipService services.MembershipService
}

func NewMembershipHandler(membershipService services.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

// Subscribe purchases a membership plan from the user's balance.
func (h *MembershipHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.SubscribeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		respondError(c, errs)
		return
	}

	membership, err := h.membershipService.Subscribe(c.Request.Context(), userID, &request)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Membership activated successfully", membership)
}

// GetActive returns the authenticated user's active membership.
func (h *MembershipHandler) GetActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	membership, err := h.membershipService.GetActive(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Membership retrieved successfully", membership)
}

// GetHistory lists the authenticated user's past and current memberships.
func (h *MembershipHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	memberships, total, err := h.membershipService.GetHistory(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Memberships retrieved successfully", memberships, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

// ExpireOverdue sweeps active memberships past their expiry.
func (h *MembershipHandler) ExpireOverdue(c *gin.Context) {
	expired, err := h.membershipService.ExpireOverdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Overdue memberships expired successfully", gin.H{"expired": expired})
}

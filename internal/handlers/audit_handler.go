package handlers

import (
	"time"

	"starbook/internal/models"
	"starbook/internal/services"
	"starbook/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditHandler struct {
	auditService services.AuditService
}

func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// Get returns a single audit log entry.
func (h *AuditHandler) Get(c *gin.Context) {
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditService.GetLog(c.Request.Context(), logID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Audit log retrieved successfully", auditLog)
}

// List returns audit logs filtered by actor, action, or date range.
func (h *AuditHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	ctx := c.Request.Context()

	if actorStr := c.Query("actor_id"); actorStr != "" {
		actorID, err := primitive.ObjectIDFromHex(actorStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid actor ID")
			return
		}
		logs, total, err := h.auditService.ListByActor(ctx, actorID, params)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessResponseWithMeta(c, "Audit logs retrieved successfully", logs, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
		return
	}

	if actionStr := c.Query("action"); actionStr != "" {
		logs, total, err := h.auditService.ListByAction(ctx, models.AuditAction(actionStr), params)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessResponseWithMeta(c, "Audit logs retrieved successfully", logs, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
		return
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid start_date")
			return
		}
		end := time.Now()
		if endStr := c.Query("end_date"); endStr != "" {
			end, err = time.Parse(time.RFC3339, endStr)
			if err != nil {
				utils.BadRequestResponse(c, "Invalid end_date")
				return
			}
		}
		logs, total, err := h.auditService.ListByDateRange(ctx, start, end, params)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessResponseWithMeta(c, "Audit logs retrieved successfully", logs, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
		return
	}

	utils.BadRequestResponse(c, "One of actor_id, action or start_date is required")
}

// GetResourceHistory returns the audit trail of one resource.
func (h *AuditHandler) GetResourceHistory(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.auditService.GetResourceHistory(c.Request.Context(), c.Param("resource"), c.Param("id"), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Audit logs retrieved successfully", logs, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

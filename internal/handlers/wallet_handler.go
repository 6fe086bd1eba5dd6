package handlers

import (
	"time"

	"starbook/internal/middleware"
	"starbook/internal/models"
	"starbook/internal/services"
	"starbook/internal/utils"
	"starbook/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WalletHandler struct {
	ledgerService services.LedgerService
}

func NewWalletHandler(ledgerService services.LedgerService) *WalletHandler {
	return &WalletHandler{
		ledgerService: ledgerService,
	}
}

// GetBalance returns the authenticated user's current balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Balance retrieved successfully", gin.H{
		"balance":  balance,
		"currency": utils.DefaultCurrency,
	})
}

// GetStatement returns the authenticated user's transaction history.
func (h *WalletHandler) GetStatement(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)

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

		transactions, total, err := h.ledgerService.GetStatementByDateRange(c.Request.Context(), userID, start, end, params)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessResponseWithMeta(c, "Statement retrieved successfully", transactions, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
		return
	}

	transactions, total, err := h.ledgerService.GetStatement(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Statement retrieved successfully", transactions, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

// GetTransaction returns a single ledger entry owned by the user.
func (h *WalletHandler) GetTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	txnID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transaction ID")
		return
	}

	txn, err := h.ledgerService.GetEntry(c.Request.Context(), txnID)
	if err != nil {
		respondError(c, err)
		return
	}
	if txn.UserID != userID {
		utils.NotFoundResponse(c, "transaction")
		return
	}

	utils.SuccessResponse(c, "Transaction retrieved successfully", txn)
}

type adjustBalanceRequest struct {
	UserID primitive.ObjectID `json:"user_id" validate:"required,object_id"`
	Amount float64            `json:"amount" validate:"required"`
	Reason string             `json:"reason" validate:"required,min=3,max=500"`
}

// AdjustBalance applies a signed admin correction to a user's balance.
func (h *WalletHandler) AdjustBalance(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request adjustBalanceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		respondError(c, errs)
		return
	}

	txn, err := h.ledgerService.Adjust(c.Request.Context(), adminID, request.UserID, request.Amount, request.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Balance adjusted successfully", txn)
}

// ListByPurpose returns ledger entries of one purpose across all users.
func (h *WalletHandler) ListByPurpose(c *gin.Context) {
	purpose := models.TransactionPurpose(c.Param("purpose"))
	params := utils.GetPaginationParams(c)

	transactions, total, err := h.ledgerService.GetByPurpose(c.Request.Context(), purpose, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Transactions retrieved successfully", transactions, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

// ListByRelated returns the ledger entries recorded against one record.
func (h *WalletHandler) ListByRelated(c *gin.Context) {
	relatedID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid related ID")
		return
	}

	transactions, err := h.ledgerService.GetByRelated(c.Request.Context(), c.Param("model"), relatedID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Transactions retrieved successfully", transactions)
}

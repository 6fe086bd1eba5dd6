package handlers

import (
	"starbook/internal/middleware"
	"starbook/internal/services"
	"starbook/internal/utils"
	"starbook/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketHandler struct {
	ticketService services.TicketService
}

func NewTicketHandler(ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// Buy purchases event tickets from the user's balance.
func (h *TicketHandler) Buy(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.BuyTicketRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		respondError(c, errs)
		return
	}

	ticket, err := h.ticketService.Buy(c.Request.Context(), userID, &request)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Tickets purchased successfully", ticket)
}

// Refund refunds an active ticket purchase in full.
func (h *TicketHandler) Refund(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	ticketID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.Refund(c.Request.Context(), ticketID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ticket refunded successfully", ticket)
}

// GetMyTickets lists the authenticated user's tickets.
func (h *TicketHandler) GetMyTickets(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	tickets, total, err := h.ticketService.GetUserTickets(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Tickets retrieved successfully", tickets, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

// Get returns one ticket owned by the authenticated user.
func (h *TicketHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	ticketID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetByID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}
	if ticket.UserID != userID {
		utils.NotFoundResponse(c, "ticket")
		return
	}

	utils.SuccessResponse(c, "Ticket retrieved successfully", ticket)
}

// GetEventTickets lists tickets sold for one event.
func (h *TicketHandler) GetEventTickets(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid event ID")
		return
	}

	params := utils.GetPaginationParams(c)
	tickets, total, err := h.ticketService.GetEventTickets(c.Request.Context(), eventID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Tickets retrieved successfully", tickets, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

package handlers

import (
	"starbook/internal/middleware"
	"starbook/internal/services"
	"starbook/internal/utils"
	"starbook/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// Book pays for a celebrity engagement from the user's balance.
func (h *BookingHandler) Book(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.BookRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		respondError(c, errs)
		return
	}

	booking, err := h.bookingService.Book(c.Request.Context(), userID, &request)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking confirmed successfully", booking)
}

// Cancel cancels a confirmed booking and refunds the payment.
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), bookingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled successfully", booking)
}

// GetMyBookings lists the authenticated user's bookings.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetUserBookings(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

// Get returns one booking owned by the authenticated user.
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	if booking.UserID != userID && booking.CelebrityID != userID {
		utils.NotFoundResponse(c, "booking")
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// GetCelebrityBookings lists bookings made against the authenticated
// celebrity.
func (h *BookingHandler) GetCelebrityBookings(c *gin.Context) {
	celebrityID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetCelebrityBookings(c.Request.Context(), celebrityID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{Pagination: utils.CreatePaginationMeta(params, total)})
}

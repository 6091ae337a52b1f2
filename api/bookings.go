package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altavia/voyager/internal/service/booking"
)

type BookingHandler struct {
	service booking.LedgerUseCase
}

type bookingRequest struct {
	Email   string   `json:"email"`
	Flights []string `json:"flights"`
}

func NewBookingHandler(service booking.LedgerUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.book)
	router.DELETE("", h.cancel)
	router.GET("/:email", h.list)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booked, err := h.service.Book(c.Request.Context(), req.Email, req.Flights)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if !booked {
		// Already booked or a leg sold out. An ordinary outcome, not a fault.
		c.JSON(http.StatusConflict, gin.H{"booked": false})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booked": true})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), req.Email, req.Flights); err != nil {
		respondBookingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) list(c *gin.Context) {
	itineraries, err := h.service.BookedItineraries(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItineraryResponses(itineraries))
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrUserNotFound), errors.Is(err, booking.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

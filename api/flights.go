package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altavia/voyager/internal/service/planner"
)

type FlightHandler struct {
	service planner.PlannerUseCase
}

func NewFlightHandler(service planner.PlannerUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/search", h.search)
}

func (h *FlightHandler) search(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	date := c.Query("date")
	if origin == "" || destination == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin, destination and date are required"})
		return
	}

	flights, err := h.service.SearchFlights(c.Request.Context(), origin, destination, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flights)
}

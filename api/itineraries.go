package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/registry"
	"github.com/altavia/voyager/internal/service/planner"
)

type ItineraryHandler struct {
	service planner.PlannerUseCase
	roster  *registry.UserRoster
}

type itineraryResponse struct {
	Flights   []string `json:"flights"`
	TotalCost string   `json:"total_cost"`
	Duration  string   `json:"duration"`
	Text      string   `json:"text"`
}

func NewItineraryHandler(service planner.PlannerUseCase, roster *registry.UserRoster) *ItineraryHandler {
	return &ItineraryHandler{service: service, roster: roster}
}

func (h *ItineraryHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
}

// list runs the discovery pipeline. sort=cost|time orders the result; an
// email query parameter attaches the results to that user's transient list.
func (h *ItineraryHandler) list(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	date := c.Query("date")
	if origin == "" || destination == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin, destination and date are required"})
		return
	}

	var user *domain.User
	if email := c.Query("email"); email != "" {
		u, ok := h.roster.UserByEmail(email)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		user = u
	}

	itineraries, err := h.service.Itineraries(c.Request.Context(), user, date, origin, destination)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimestamp) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch c.Query("sort") {
	case "cost":
		itineraries = h.service.SortByCost(user, itineraries)
	case "time":
		itineraries = h.service.SortByTime(user, itineraries)
	}

	c.JSON(http.StatusOK, toItineraryResponses(itineraries))
}

func toItineraryResponses(itineraries []domain.Itinerary) []itineraryResponse {
	out := make([]itineraryResponse, 0, len(itineraries))
	for _, it := range itineraries {
		out = append(out, itineraryResponse{
			Flights:   it.FlightNumbers(),
			TotalCost: it.CostText(),
			Duration:  it.DurationText(),
			Text:      it.String(),
		})
	}
	return out
}

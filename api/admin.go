package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altavia/voyager/internal/domain"
	"github.com/altavia/voyager/internal/ingest"
	"github.com/altavia/voyager/internal/registry"
)

// AdminHandler serves bulk CSV uploads. Callers identify themselves with the
// X-User-Email header and must hold the admin capability.
type AdminHandler struct {
	ingestor *ingest.Ingestor
	roster   *registry.UserRoster
}

func NewAdminHandler(ingestor *ingest.Ingestor, roster *registry.UserRoster) *AdminHandler {
	return &AdminHandler{ingestor: ingestor, roster: roster}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.POST("/flights/upload", h.uploadFlights)
	router.POST("/users/upload", h.uploadUsers)
}

func (h *AdminHandler) uploadFlights(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	flights, err := h.ingestor.UploadFlights(c.Request.Context(), c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"uploaded": len(flights)})
}

// uploadUsers ingests client rows by default; role=admin uploads admins.
func (h *AdminHandler) uploadUsers(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	role := domain.RoleClient
	if c.Query("role") == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	users, err := h.ingestor.UploadUsers(c.Request.Context(), c.Request.Body, role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"uploaded": len(users)})
}

func (h *AdminHandler) authorize(c *gin.Context) bool {
	email := c.GetHeader("X-User-Email")
	user, ok := h.roster.UserByEmail(email)
	if !ok || !user.Role.Can(domain.CapAdminOps) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin capability required"})
		return false
	}
	return true
}

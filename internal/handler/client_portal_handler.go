package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/services"
	"repair-app/internal/utils"
)

// ClientPortalHandler serves the customer-facing surface: account lifecycle,
// service requests and the technician directory.
type ClientPortalHandler struct {
	auth *services.ClientAuthService
	crm  *services.CRMService
	tech *services.TechService
}

func NewClientPortalHandler(auth *services.ClientAuthService, crm *services.CRMService, tech *services.TechService) *ClientPortalHandler {
	return &ClientPortalHandler{auth: auth, crm: crm, tech: tech}
}

func (h *ClientPortalHandler) Signup(c *gin.Context) {
	var req models.ClientSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	client, err := h.auth.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account created successfully", "client_id": client.ID.Hex()})
}

func (h *ClientPortalHandler) Login(c *gin.Context) {
	var req models.ClientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	client, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.SetCookie(utils.SessionCookieName, token, int(utils.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"client":  gin.H{"id": client.ID.Hex(), "name": client.Name, "email": client.Email},
	})
}

func (h *ClientPortalHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(utils.SessionCookieName); err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
	}
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *ClientPortalHandler) Profile(c *gin.Context) {
	p, _ := utils.GetPrincipal(c)
	client, err := h.auth.Profile(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientPortalHandler) MyServiceRequests(c *gin.Context) {
	p, _ := utils.GetPrincipal(c)
	requests, err := h.crm.ServiceRequestsForClient(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get service requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// CreateServiceRequest always files the request under the logged-in client
// with status pending, whatever the body says.
func (h *ClientPortalHandler) CreateServiceRequest(c *gin.Context) {
	p, _ := utils.GetPrincipal(c)
	var req struct {
		ServiceType string `json:"service_type" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	request := &models.ServiceRequest{
		ClientID:    p.ID,
		ServiceType: req.ServiceType,
		Description: req.Description,
		Status:      models.RequestPending,
	}
	if err := h.crm.CreateServiceRequest(c.Request.Context(), request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service request"})
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *ClientPortalHandler) TechByID(c *gin.Context) {
	p, _ := utils.GetPrincipal(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	tech, err := h.tech.TechForClient(c.Request.Context(), id, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tech"})
		return
	}
	if tech == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tech not found"})
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *ClientPortalHandler) AvailableTechs(c *gin.Context) {
	p, _ := utils.GetPrincipal(c)
	techs, err := h.tech.AvailableTechs(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get available techs"})
		return
	}
	c.JSON(http.StatusOK, techs)
}

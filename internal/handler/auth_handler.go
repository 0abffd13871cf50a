package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-app/internal/services"
	"repair-app/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GoogleLogin exchanges a Google ID token for a service JWT.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req struct {
		IDToken string `json:"id_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	token, user, err := h.authService.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Validate lets other parties confirm a staff token.
func (h *AuthHandler) Validate(c *gin.Context) {
	p, ok := utils.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": p.ID, "email": p.Email})
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	p, _ := utils.GetPrincipal(c)
	user, err := h.authService.GetUser(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

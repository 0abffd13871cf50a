package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/services"
	"repair-app/internal/utils"
)

type TechHandler struct {
	service *services.TechService
}

func NewTechHandler(service *services.TechService) *TechHandler {
	return &TechHandler{service: service}
}

func (h *TechHandler) GetProfile(c *gin.Context) {
	p, _ := utils.GetPrincipal(c)
	profile, err := h.service.ProfileForUser(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tech profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertProfile creates or replaces the profile of the logged-in staff user.
// The user id comes from the principal, never from the body.
func (h *TechHandler) UpsertProfile(c *gin.Context) {
	p, _ := utils.GetPrincipal(c)
	var profile models.TechProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	profile.UserID = p.ID

	saved, err := h.service.UpsertProfile(c.Request.Context(), &profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tech profile"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteProfile removes a profile together with its certifications and
// skills. Completion history stays for bookkeeping.
func (h *TechHandler) DeleteProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.service.DeleteProfile(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tech profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tech profile deleted successfully"})
}

// Certifications

func (h *TechHandler) GetCertifications(c *gin.Context) {
	certs, err := h.service.Certifications(c.Request.Context(), c.Param("techProfileId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch certifications"})
		return
	}
	c.JSON(http.StatusOK, certs)
}

func (h *TechHandler) CreateCertification(c *gin.Context) {
	var cert models.TechCertification
	if err := c.ShouldBindJSON(&cert); err != nil || cert.TechProfileID == "" || cert.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.CreateCertification(c.Request.Context(), &cert); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create certification"})
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *TechHandler) UpdateCertification(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	cert, err := h.service.UpdateCertification(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update certification"})
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *TechHandler) DeleteCertification(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.service.DeleteCertification(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete certification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certification deleted successfully"})
}

// Skills

func (h *TechHandler) GetSkills(c *gin.Context) {
	skills, err := h.service.Skills(c.Request.Context(), c.Param("techProfileId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch skills"})
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *TechHandler) CreateSkill(c *gin.Context) {
	var skill models.TechSkill
	if err := c.ShouldBindJSON(&skill); err != nil || skill.TechProfileID == "" || skill.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.CreateSkill(c.Request.Context(), &skill); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create skill"})
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h *TechHandler) UpdateSkill(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	skill, err := h.service.UpdateSkill(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update skill"})
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h *TechHandler) DeleteSkill(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.service.DeleteSkill(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete skill"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted successfully"})
}

// Service completions

func (h *TechHandler) GetCompletions(c *gin.Context) {
	completions, err := h.service.Completions(c.Request.Context(), c.Param("techProfileId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch completions"})
		return
	}
	c.JSON(http.StatusOK, completions)
}

func (h *TechHandler) CreateCompletion(c *gin.Context) {
	var completion models.ServiceCompletion
	if err := c.ShouldBindJSON(&completion); err != nil || completion.TechProfileID == "" || completion.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.service.CreateCompletion(c.Request.Context(), &completion); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create completion"})
		return
	}
	c.JSON(http.StatusOK, completion)
}

func (h *TechHandler) UpdateCompletion(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	completion, err := h.service.UpdateCompletion(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update completion"})
		return
	}
	c.JSON(http.StatusOK, completion)
}

func (h *TechHandler) DeleteCompletion(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.service.DeleteCompletion(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete completion"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Completion deleted successfully"})
}

func (h *TechHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("techProfileId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tech stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
